package intake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarovic/inflow/internal/domain"
	"github.com/dmarovic/inflow/internal/llm"
)

// mockModelClient returns canned text, or a canned error, without touching
// the network.
type mockModelClient struct {
	response string
	err      error
	calls    int
}

func (m *mockModelClient) Complete(_ context.Context, _ llm.CompleteRequest) (*llm.CompleteResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompleteResponse{Text: m.response, Model: "mock"}, nil
}

func (m *mockModelClient) Available(context.Context) bool { return m.err == nil }

func textInput(text string) domain.OriginalInput {
	return domain.OriginalInput{Text: text}
}

func TestParseModelOutput_ReadyBill(t *testing.T) {
	raw := `{
		"status": "ready",
		"intent": "bill",
		"confidence": 0.92,
		"reasoning": "Clear bill with amount and due date.",
		"draft": {
			"title": "Electricity bill",
			"vendor": "City Power",
			"amount": 120,
			"due_date": "2025-03-03"
		}
	}`

	it := ParseModelOutput(raw, textInput("electricity bill $120 due March 3rd"))

	assert.Equal(t, StatusReady, it.Status)
	assert.Equal(t, domain.IntentBill, it.IntentType)
	assert.Equal(t, 0.92, it.Confidence)
	require.NotNil(t, it.Draft.Bill)
	assert.Equal(t, "Electricity bill", it.Draft.Bill.Title)
	assert.Equal(t, 120.0, it.Draft.Bill.Amount)
	require.NotNil(t, it.Draft.Bill.DueDate)
	assert.Equal(t, "2025-03-03", *it.Draft.Bill.DueDate)
	// Defaults for absent fields.
	assert.Equal(t, "USD", it.Draft.Bill.Currency)
	assert.Equal(t, 3, it.Draft.Bill.ReminderDaysBefore)
}

func TestParseModelOutput_GarbageFallsBackToNote(t *testing.T) {
	it := ParseModelOutput("asdf{not json", textInput("asdf{not json"))

	assert.Equal(t, StatusReady, it.Status)
	assert.Equal(t, domain.IntentNote, it.IntentType)
	assert.LessOrEqual(t, it.Confidence, 0.5)
	require.NotNil(t, it.Draft.Note)
	assert.Equal(t, "asdf{not json", it.Draft.Note.Content)
	assert.NotEmpty(t, it.Suggestions)
}

func TestParseModelOutput_UnknownIntentBecomesNote(t *testing.T) {
	raw := `{"status": "ready", "intent": "meeting", "confidence": 0.8, "draft": {"title": "Standup"}}`

	it := ParseModelOutput(raw, textInput("standup tomorrow"))

	assert.Equal(t, domain.IntentNote, it.IntentType)
	require.NotNil(t, it.Draft.Note)
	assert.Equal(t, "Standup", it.Draft.Note.Title)
}

func TestParseModelOutput_MissingConfidenceDefaults(t *testing.T) {
	raw := `{"status": "ready", "intent": "note", "draft": {"title": "t", "content": "c"}}`

	it := ParseModelOutput(raw, textInput("c"))
	assert.Equal(t, 0.5, it.Confidence)
}

func TestParseModelOutput_OutOfRangeConfidenceDefaults(t *testing.T) {
	raw := `{"status": "ready", "intent": "note", "confidence": 7.5, "draft": {"content": "c"}}`

	it := ParseModelOutput(raw, textInput("c"))
	assert.Equal(t, 0.5, it.Confidence)
}

func TestParseModelOutput_UnknownStatusDefaultsToReady(t *testing.T) {
	raw := `{"status": "thinking", "intent": "task", "confidence": 0.9, "draft": {"title": "Buy milk", "life_area": "personal"}}`

	it := ParseModelOutput(raw, textInput("buy milk"))
	assert.Equal(t, StatusReady, it.Status)
}

func TestParseModelOutput_NeedsClarification(t *testing.T) {
	raw := `{
		"status": "needs_clarification",
		"intent": "task",
		"confidence": 0.6,
		"draft": {"title": "Finish report"},
		"missing_fields": ["life_area"]
	}`

	it := ParseModelOutput(raw, textInput("finish the report"))

	assert.Equal(t, StatusNeedsClarification, it.Status)
	require.NotNil(t, it.Draft.Task)
	assert.Equal(t, "Finish report", it.Draft.Task.Title)
	// Missing life_area stays empty so the clarification engine asks for it.
	assert.Empty(t, string(it.Draft.Task.LifeArea))
	// Absent fields got defaults.
	assert.Equal(t, domain.PriorityMedium, it.Draft.Task.Priority)
	assert.Equal(t, 30, it.Draft.Task.EstimatedMinutes)
}

func TestParseModelOutput_SuggestAlternative(t *testing.T) {
	raw := `{
		"status": "suggest_alternative",
		"intent": "challenge",
		"original_intent": "task",
		"confidence": 0.7,
		"alternative_reason": "Daily repetition fits a habit challenge better.",
		"draft": {"title": "Run every morning", "challenge_kind": "build_habit"}
	}`

	it := ParseModelOutput(raw, textInput("task: run every morning for a month"))

	assert.Equal(t, StatusSuggestAlternative, it.Status)
	assert.Equal(t, domain.IntentChallenge, it.IntentType)
	assert.Equal(t, domain.IntentTask, it.OriginalIntent)
	assert.Equal(t, "Daily repetition fits a habit challenge better.", it.Reasoning)
	require.NotNil(t, it.Draft.Challenge)
	assert.Equal(t, domain.ChallengeBuildHabit, it.Draft.Challenge.ChallengeKind)
}

func TestParseModelOutput_CodeFencedResponse(t *testing.T) {
	raw := "```json\n{\"status\": \"ready\", \"intent\": \"note\", \"confidence\": 0.9, \"draft\": {\"title\": \"Idea\", \"content\": \"ship it\"}}\n```"

	it := ParseModelOutput(raw, textInput("ship it"))

	assert.Equal(t, StatusReady, it.Status)
	require.NotNil(t, it.Draft.Note)
	assert.Equal(t, "Idea", it.Draft.Note.Title)
}

func TestInterpret_ModelUnavailableFallsBack(t *testing.T) {
	client := &mockModelClient{err: llm.ErrUnavailable}
	interp := NewInterpreter(client)

	it := interp.Interpret(context.Background(), textInput("remember to call mom"))

	assert.Equal(t, StatusReady, it.Status)
	assert.Equal(t, domain.IntentNote, it.IntentType)
	assert.Equal(t, FallbackConfidence, it.Confidence)
	require.NotNil(t, it.Draft.Note)
	assert.Equal(t, "remember to call mom", it.Draft.Note.Content)
}

func TestInterpret_VoiceTranscriptPreferred(t *testing.T) {
	client := &mockModelClient{err: llm.ErrTimeout}
	interp := NewInterpreter(client)

	in := domain.OriginalInput{
		Text:            "short",
		VoiceTranscript: "the full spoken version",
	}
	it := interp.Interpret(context.Background(), in)

	require.NotNil(t, it.Draft.Note)
	assert.Equal(t, "the full spoken version", it.Draft.Note.Content)
}

func TestNoteTitleFrom(t *testing.T) {
	assert.Equal(t, "first line", noteTitleFrom("first line\nsecond line"))
	assert.Equal(t, "Untitled note", noteTitleFrom("   "))

	long := "this is a very long single line of text that keeps going well past sixty characters total"
	title := noteTitleFrom(long)
	assert.LessOrEqual(t, len(title), 60)
}
