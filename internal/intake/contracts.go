package intake

import (
	"time"

	"github.com/dmarovic/inflow/internal/domain"
)

// Status describes the protocol state a turn leaves the conversation in.
type Status string

const (
	// StatusReady means the draft is complete and awaiting approval.
	StatusReady Status = "ready"

	// StatusNeedsClarification means required fields are missing and a
	// clarification flow was issued.
	StatusNeedsClarification Status = "needs_clarification"

	// StatusSuggestAlternative means the model proposes a different entity
	// kind than the one the user seemed to ask for.
	StatusSuggestAlternative Status = "suggest_alternative"
)

// QuestionKind enumerates how a clarification question is answered.
type QuestionKind string

const (
	QuestionSingleChoice QuestionKind = "single_choice"
	QuestionMultiChoice  QuestionKind = "multi_choice"
	QuestionYesNo        QuestionKind = "yes_no"
	QuestionFreeText     QuestionKind = "free_text"
)

// ClarificationQuestion is one question issued to resolve a missing field.
type ClarificationQuestion struct {
	ID           string       `json:"id"`
	Prompt       string       `json:"prompt"`
	Kind         QuestionKind `json:"kind"`
	Options      []string     `json:"options,omitempty"`
	TargetField  string       `json:"target_field"`
	Required     bool         `json:"required"`
	DefaultValue string       `json:"default_value,omitempty"`
}

// ClarificationFlow is an ordered batch of questions issued in one turn.
type ClarificationFlow struct {
	FlowID       string                  `json:"flow_id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Questions    []ClarificationQuestion `json:"questions"`
	CurrentIndex int                     `json:"current_index"`
	TotalBudget  int                     `json:"total_budget"`
}

// QuestionByID returns the question with the given id, if present.
func (f *ClarificationFlow) QuestionByID(id string) (ClarificationQuestion, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return ClarificationQuestion{}, false
}

// Answer is a single user response to a clarification question. Values is
// set for multi-choice questions, Value for everything else.
type Answer struct {
	QuestionID string            `json:"question_id"`
	Value      string            `json:"value"`
	Values     []string          `json:"values,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Turn is one request/response exchange in the intake protocol.
type Turn struct {
	SessionID         string               `json:"session_id"`
	DraftID           string               `json:"draft_id,omitempty"`
	Status            Status               `json:"status"`
	IntentType        domain.IntentType    `json:"intent_type"`
	Confidence        float64              `json:"confidence"`
	Draft             *domain.Draft        `json:"draft,omitempty"`
	Reasoning         string               `json:"reasoning,omitempty"`
	Suggestions       []string             `json:"suggestions,omitempty"`
	ClarificationFlow *ClarificationFlow   `json:"clarification_flow,omitempty"`
	OriginalInput     domain.OriginalInput `json:"original_input"`
	Timestamp         time.Time            `json:"timestamp"`
	ExpiresAt         *time.Time           `json:"expires_at,omitempty"`
}

// InterpretedTurn is the structured result of interpreting raw model output.
type InterpretedTurn struct {
	Status         Status
	IntentType     domain.IntentType
	OriginalIntent domain.IntentType // set when Status is suggest_alternative
	Draft          domain.Draft
	Confidence     float64
	Reasoning      string
	Suggestions    []string
}

// ConversationSession holds the in-flight state of a multi-turn intake
// conversation. Sessions are owned and mutated exclusively by the
// Orchestrator.
type ConversationSession struct {
	SessionID      string
	UserID         string
	IntentType     domain.IntentType
	OriginalIntent domain.IntentType // requested kind, kept for alternative rejection
	PartialDraft   domain.Draft
	OriginalInput  domain.OriginalInput
	Flow           *ClarificationFlow
	QuestionsAsked int
	Confidence     float64
	Reasoning      string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Expired reports whether the session is past its TTL at the given instant.
func (s *ConversationSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
