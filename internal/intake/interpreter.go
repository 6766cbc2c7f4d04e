package intake

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dmarovic/inflow/internal/domain"
	"github.com/dmarovic/inflow/internal/llm"
)

// FallbackConfidence is reported on turns that degraded to the note
// fallback because the model output (or the model itself) was unusable.
const FallbackConfidence = 0.3

// Interpreter turns raw user input into a structured InterpretedTurn by way
// of a model call. It never fails: any model or parse failure degrades to a
// terminal note draft carrying the original text.
type Interpreter struct {
	client llm.Client
}

// NewInterpreter creates an Interpreter backed by a model client.
func NewInterpreter(client llm.Client) *Interpreter {
	return &Interpreter{client: client}
}

// Interpret calls the model with the combined input and parses its output.
// Model failures and timeouts are recovered locally; the returned turn is
// always usable.
func (it *Interpreter) Interpret(ctx context.Context, in domain.OriginalInput) *InterpretedTurn {
	resp, err := it.client.Complete(ctx, llm.CompleteRequest{
		Task:         llm.TaskInterpret,
		SystemPrompt: interpretSystemPrompt,
		UserPrompt:   buildInterpretUserPrompt(in),
	})
	if err != nil {
		return fallbackTurn(in, "The assistant was unavailable, so your input was saved as a note.")
	}
	return ParseModelOutput(resp.Text, in)
}

// modelResponse is the tolerant top-level wire record for model output.
// Every field is optional; absent or malformed fields fall back to
// documented defaults rather than failing the turn.
type modelResponse struct {
	Status            string          `json:"status"`
	Intent            string          `json:"intent"`
	Confidence        *float64        `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
	Suggestions       []string        `json:"suggestions"`
	Draft             json.RawMessage `json:"draft"`
	MissingFields     []string        `json:"missing_fields"`
	OriginalIntent    string          `json:"original_intent"`
	AlternativeReason string          `json:"alternative_reason"`
}

// ParseModelOutput parses raw model text into an InterpretedTurn. Total
// parse failure degrades to the note fallback; field-level failures use
// per-field defaults so the caller never observes a partially built draft.
func ParseModelOutput(raw string, in domain.OriginalInput) *InterpretedTurn {
	resp, err := llm.ExtractJSON[modelResponse](raw, nil)
	if err != nil {
		return fallbackTurn(in, "Your input could not be interpreted, so it was saved as a note.")
	}

	intent := domain.IntentType(resp.Intent)
	if !domain.IsValidIntent(intent) {
		intent = domain.IntentNote
	}

	status := parseStatus(resp.Status)
	originalIntent := intent
	if status == StatusSuggestAlternative {
		if alt := domain.IntentType(resp.OriginalIntent); domain.IsValidIntent(alt) {
			originalIntent = alt
		}
	}

	confidence := 0.5
	if resp.Confidence != nil && *resp.Confidence >= 0 && *resp.Confidence <= 1 {
		confidence = *resp.Confidence
	}

	reasoning := resp.Reasoning
	if status == StatusSuggestAlternative && resp.AlternativeReason != "" {
		reasoning = resp.AlternativeReason
	}

	draft := DecodeDraft(intent, resp.Draft, in)

	return &InterpretedTurn{
		Status:         status,
		IntentType:     intent,
		OriginalIntent: originalIntent,
		Draft:          draft,
		Confidence:     confidence,
		Reasoning:      reasoning,
		Suggestions:    resp.Suggestions,
	}
}

func parseStatus(s string) Status {
	switch Status(s) {
	case StatusNeedsClarification:
		return StatusNeedsClarification
	case StatusSuggestAlternative:
		return StatusSuggestAlternative
	default:
		return StatusReady
	}
}

// fallbackTurn builds the degraded terminal turn used for unusable model
// output. The user's input is never dropped: it becomes the note content.
func fallbackTurn(in domain.OriginalInput, explanation string) *InterpretedTurn {
	text := in.CombinedText()
	if text == "" {
		for _, att := range in.Attachments {
			if att.ExtractedText != "" {
				text = att.ExtractedText
				break
			}
		}
	}

	return &InterpretedTurn{
		Status:     StatusReady,
		IntentType: domain.IntentNote,
		Draft: domain.Draft{
			Kind: domain.IntentNote,
			Note: &domain.NoteDraft{
				Title:    noteTitleFrom(text),
				Content:  text,
				LifeArea: domain.AreaPersonal,
				Tags:     []string{},
			},
		},
		Confidence: FallbackConfidence,
		Reasoning:  explanation,
		Suggestions: []string{
			"Edit the note to add more detail",
			"Try rephrasing your request",
		},
	}
}

// noteTitleFrom derives a short title from free text.
func noteTitleFrom(text string) string {
	t := strings.TrimSpace(text)
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[:i]
	}
	if len(t) > 60 {
		t = strings.TrimSpace(t[:60])
	}
	if t == "" {
		t = "Untitled note"
	}
	return t
}
