package intake

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dmarovic/inflow/internal/domain"
	"github.com/google/uuid"
)

// Config holds the orchestrator tunables.
type Config struct {
	// QuestionBudget is the maximum number of clarification questions ever
	// shown across one session's lifetime.
	QuestionBudget int

	// SessionTTL bounds how long an unanswered session stays retrievable.
	SessionTTL time.Duration
}

// DefaultOrchestratorConfig returns the standard budget and TTL.
func DefaultOrchestratorConfig() Config {
	return Config{
		QuestionBudget: 5,
		SessionTTL:     time.Hour,
	}
}

// LoadOrchestratorConfig reads orchestrator tunables from the environment.
func LoadOrchestratorConfig() Config {
	cfg := DefaultOrchestratorConfig()
	if v := os.Getenv("INFLOW_QUESTION_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuestionBudget = n
		}
	}
	if v := os.Getenv("INFLOW_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTL = time.Duration(n) * time.Minute
		}
	}
	return cfg
}

// DraftRecorder registers a finalized draft so the approval service can
// later resolve it by id and enforce ownership.
type DraftRecorder interface {
	Record(ctx context.Context, userID, draftID string, d domain.Draft) error
}

// InputRequest is the payload of a fresh intake turn.
type InputRequest struct {
	Text            string
	VoiceTranscript string
	Attachments     []domain.Attachment
}

// Orchestrator drives the intake protocol: it interprets fresh input,
// issues clarification flows under the question budget, merges answers, and
// finalizes drafts. It exclusively owns session lifecycle.
type Orchestrator struct {
	interp   *Interpreter
	sessions SessionStore
	drafts   DraftRecorder
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

// NewOrchestrator wires an orchestrator. drafts may be nil when no durable
// draft registry is configured; finalized turns then carry a draft id that
// only lives in the response.
func NewOrchestrator(interp *Interpreter, sessions SessionStore, drafts DraftRecorder, cfg Config, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		interp:   interp,
		sessions: sessions,
		drafts:   drafts,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// ProcessInput starts a fresh intake turn. A new session id is always
// generated; a session is persisted only when the turn needs another
// exchange (clarification or alternative confirmation).
func (o *Orchestrator) ProcessInput(ctx context.Context, userID string, req InputRequest) (*Turn, error) {
	in := domain.OriginalInput{
		Text:            req.Text,
		VoiceTranscript: req.VoiceTranscript,
		Attachments:     SummarizeAll(req.Attachments),
	}
	if in.IsEmpty() {
		return nil, ErrEmptyInput
	}

	sessionID := uuid.NewString()
	it := o.interp.Interpret(ctx, in)

	switch it.Status {
	case StatusNeedsClarification:
		missing := MissingCriticalFields(it.Draft)
		flow := GenerateFollowUp(it.Draft, missing, 0, o.cfg.QuestionBudget)
		if flow == nil {
			// Nothing actionable to ask: treat as complete.
			return o.finalize(ctx, userID, sessionID, it.IntentType, it.Draft, it, in), nil
		}
		sess := o.newSession(sessionID, userID, it, in)
		sess.Flow = flow
		sess.QuestionsAsked = len(flow.Questions)
		o.sessions.Put(sess)
		o.log.Info("intake_clarification",
			"session_id", sessionID, "intent", string(it.IntentType),
			"questions", len(flow.Questions))
		return o.pendingTurn(sess, StatusNeedsClarification, it), nil

	case StatusSuggestAlternative:
		sess := o.newSession(sessionID, userID, it, in)
		sess.OriginalIntent = it.OriginalIntent
		sess.Flow = alternativeFlow(it, o.cfg.QuestionBudget)
		sess.QuestionsAsked = 1
		o.sessions.Put(sess)
		o.log.Info("intake_alternative",
			"session_id", sessionID,
			"requested", string(it.OriginalIntent), "suggested", string(it.IntentType))
		return o.pendingTurn(sess, StatusSuggestAlternative, it), nil

	default:
		return o.finalize(ctx, userID, sessionID, it.IntentType, it.Draft, it, in), nil
	}
}

// SubmitClarificationAnswers merges answers into the session's partial
// draft and either issues another flow or finalizes. The session must exist
// and be unexpired; flowID must match the outstanding flow.
func (o *Orchestrator) SubmitClarificationAnswers(ctx context.Context, userID, sessionID, flowID string, answers []Answer) (*Turn, error) {
	sess, ok := o.sessions.Get(sessionID)
	if !ok || sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	if sess.Flow == nil || (flowID != "" && sess.Flow.FlowID != flowID) {
		return nil, ErrFlowMismatch
	}

	merged := ApplyAnswers(sess.PartialDraft, sess.Flow, answers)
	missing := MissingCriticalFields(merged)

	if len(missing) > 0 {
		if flow := GenerateFollowUp(merged, missing, sess.QuestionsAsked, o.cfg.QuestionBudget); flow != nil {
			next := *sess
			next.PartialDraft = merged
			next.Flow = flow
			next.QuestionsAsked = sess.QuestionsAsked + len(flow.Questions)
			o.sessions.Put(&next)
			it := &InterpretedTurn{
				Status:     StatusNeedsClarification,
				IntentType: sess.IntentType,
				Draft:      merged,
				Confidence: sess.Confidence,
				Reasoning:  sess.Reasoning,
			}
			return o.pendingTurn(&next, StatusNeedsClarification, it), nil
		}
		// Budget exhausted: finalize with whatever was gathered rather
		// than deadlock the user.
		o.log.Info("intake_budget_exhausted",
			"session_id", sessionID, "asked", sess.QuestionsAsked,
			"still_missing", len(missing))
	}

	if !o.sessions.Remove(sessionID) {
		// A racing submit already finalized this session.
		return nil, ErrSessionNotFound
	}
	it := &InterpretedTurn{
		Status:      StatusReady,
		IntentType:  sess.IntentType,
		Draft:       merged,
		Confidence:  sess.Confidence,
		Reasoning:   sess.Reasoning,
		Suggestions: nil,
	}
	return o.finalize(ctx, userID, sessionID, sess.IntentType, merged, it, sess.OriginalInput), nil
}

// ConfirmAlternative resolves a suggest_alternative session. Accepting
// finalizes the suggested draft; declining finalizes a minimal draft of the
// kind the user originally asked for. The session is cleared either way.
func (o *Orchestrator) ConfirmAlternative(ctx context.Context, sessionID string, accepted bool) (*Turn, error) {
	sess, ok := o.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !o.sessions.Remove(sessionID) {
		return nil, ErrSessionNotFound
	}

	intent := sess.IntentType
	draft := sess.PartialDraft
	reasoning := sess.Reasoning
	if !accepted {
		intent = sess.OriginalIntent
		draft = MinimalDraft(intent, sess.OriginalInput)
		reasoning = "Created as originally requested."
	}

	it := &InterpretedTurn{
		Status:     StatusReady,
		IntentType: intent,
		Draft:      draft,
		Confidence: sess.Confidence,
		Reasoning:  reasoning,
	}
	return o.finalize(ctx, sess.UserID, sessionID, intent, draft, it, sess.OriginalInput), nil
}

func (o *Orchestrator) newSession(sessionID, userID string, it *InterpretedTurn, in domain.OriginalInput) *ConversationSession {
	now := o.now()
	return &ConversationSession{
		SessionID:      sessionID,
		UserID:         userID,
		IntentType:     it.IntentType,
		OriginalIntent: it.IntentType,
		PartialDraft:   it.Draft,
		OriginalInput:  in,
		Confidence:     it.Confidence,
		Reasoning:      it.Reasoning,
		CreatedAt:      now,
		ExpiresAt:      now.Add(o.cfg.SessionTTL),
	}
}

func (o *Orchestrator) pendingTurn(sess *ConversationSession, status Status, it *InterpretedTurn) *Turn {
	expires := sess.ExpiresAt
	draft := sess.PartialDraft
	return &Turn{
		SessionID:         sess.SessionID,
		Status:            status,
		IntentType:        sess.IntentType,
		Confidence:        sess.Confidence,
		Draft:             &draft,
		Reasoning:         it.Reasoning,
		Suggestions:       it.Suggestions,
		ClarificationFlow: sess.Flow,
		OriginalInput:     sess.OriginalInput,
		Timestamp:         o.now(),
		ExpiresAt:         &expires,
	}
}

// finalize registers the draft and builds the terminal READY turn. No
// session survives finalization.
func (o *Orchestrator) finalize(ctx context.Context, userID, sessionID string, intent domain.IntentType, draft domain.Draft, it *InterpretedTurn, in domain.OriginalInput) *Turn {
	draftID := uuid.NewString()
	if o.drafts != nil {
		if err := o.drafts.Record(ctx, userID, draftID, draft); err != nil {
			// The turn still succeeds; approval will report the missing
			// registration if the caller tries to apply it.
			o.log.Error("draft_record_failed", "draft_id", draftID, "error", err)
		}
	}
	o.log.Info("intake_finalized",
		"session_id", sessionID, "draft_id", draftID,
		"intent", string(intent), "confidence", it.Confidence)
	return &Turn{
		SessionID:     sessionID,
		DraftID:       draftID,
		Status:        StatusReady,
		IntentType:    intent,
		Confidence:    it.Confidence,
		Draft:         &draft,
		Reasoning:     it.Reasoning,
		Suggestions:   it.Suggestions,
		OriginalInput: in,
		Timestamp:     o.now(),
	}
}

// alternativeFlow builds the single yes/no confirmation issued on a
// suggest_alternative turn.
func alternativeFlow(it *InterpretedTurn, budget int) *ClarificationFlow {
	return &ClarificationFlow{
		FlowID:      uuid.NewString(),
		Title:       "Did you mean a " + string(it.IntentType) + "?",
		Description: it.Reasoning,
		TotalBudget: budget,
		Questions: []ClarificationQuestion{{
			ID:          uuid.NewString(),
			Prompt:      "Create this as a " + string(it.IntentType) + " instead of a " + string(it.OriginalIntent) + "?",
			Kind:        QuestionYesNo,
			TargetField: FieldAcceptAlternative,
			Required:    true,
		}},
	}
}
