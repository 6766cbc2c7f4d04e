package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/domain"
	"github.com/dmarovic/inflow/internal/intake"
)

const headerUserID = "X-User-ID"

type errorResponse struct {
	Error string `json:"error"`
}

type processInputRequest struct {
	Text            string              `json:"text"`
	VoiceTranscript string              `json:"voice_transcript"`
	Attachments     []domain.Attachment `json:"attachments"`
}

func (s *Server) handleProcessInput(c *gin.Context) {
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing " + headerUserID + " header"})
		return
	}

	var req processInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	turn, err := s.orch.ProcessInput(c.Request.Context(), userID, intake.InputRequest{
		Text:            req.Text,
		VoiceTranscript: req.VoiceTranscript,
		Attachments:     req.Attachments,
	})
	if err != nil {
		if errors.Is(err, intake.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, turn)
}

type submitAnswersRequest struct {
	FlowID  string          `json:"flow_id"`
	Answers []intake.Answer `json:"answers"`
}

func (s *Server) handleSubmitAnswers(c *gin.Context) {
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing " + headerUserID + " header"})
		return
	}

	var req submitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	turn, err := s.orch.SubmitClarificationAnswers(
		c.Request.Context(), userID, c.Param("sessionID"), req.FlowID, req.Answers)
	if err != nil {
		s.writeIntakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, turn)
}

type confirmAlternativeRequest struct {
	Accepted bool `json:"accepted"`
}

func (s *Server) handleConfirmAlternative(c *gin.Context) {
	var req confirmAlternativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	turn, err := s.orch.ConfirmAlternative(c.Request.Context(), c.Param("sessionID"), req.Accepted)
	if err != nil {
		s.writeIntakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, turn)
}

type applyDraftRequest struct {
	Action        string        `json:"action"`
	ModifiedDraft *domain.Draft `json:"modified_draft,omitempty"`
}

func (s *Server) handleApplyDraft(c *gin.Context) {
	if s.approval == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "draft approval is not configured"})
		return
	}
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing " + headerUserID + " header"})
		return
	}

	var req applyDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	res, err := s.approval.Apply(c.Request.Context(), userID, c.Param("draftID"),
		approval.Action(req.Action), req.ModifiedDraft)
	if err != nil {
		switch {
		case errors.Is(err, approval.ErrNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		case errors.Is(err, approval.ErrNotOwner):
			c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
		case errors.Is(err, approval.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) writeIntakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, intake.ErrFlowMismatch):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
