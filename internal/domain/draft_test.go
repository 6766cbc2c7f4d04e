package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftClone_DeepCopiesTask(t *testing.T) {
	due := "2025-04-01"
	orig := Draft{
		Kind: IntentTask,
		Task: &TaskDraft{
			Title:    "Finish report",
			LifeArea: AreaCareer,
			DueDate:  &due,
			Labels:   []string{"work"},
		},
	}

	clone := orig.Clone()
	require.NotNil(t, clone.Task)

	clone.Task.Title = "Changed"
	*clone.Task.DueDate = "2025-05-01"
	clone.Task.Labels[0] = "other"

	assert.Equal(t, "Finish report", orig.Task.Title)
	assert.Equal(t, "2025-04-01", *orig.Task.DueDate)
	assert.Equal(t, []string{"work"}, orig.Task.Labels)
}

func TestDraftClone_DeepCopiesBillRecurrence(t *testing.T) {
	freq := RecurMonthly
	orig := Draft{
		Kind: IntentBill,
		Bill: &BillDraft{Title: "Rent", Amount: 1200, RecurrenceFrequency: &freq},
	}

	clone := orig.Clone()
	*clone.Bill.RecurrenceFrequency = RecurYearly

	assert.Equal(t, RecurMonthly, *orig.Bill.RecurrenceFrequency)
}

func TestDraftDisplayTitle(t *testing.T) {
	assert.Equal(t, "Run daily", Draft{
		Kind:      IntentChallenge,
		Challenge: &ChallengeDraft{Title: "Run daily"},
	}.DisplayTitle())

	// Kind set but variant missing yields empty, not a panic.
	assert.Empty(t, Draft{Kind: IntentEvent}.DisplayTitle())
}

func TestDraftIsZero(t *testing.T) {
	assert.True(t, Draft{Kind: IntentTask}.IsZero())
	assert.False(t, Draft{Kind: IntentNote, Note: &NoteDraft{}}.IsZero())
}

func TestIsValidIntent(t *testing.T) {
	assert.True(t, IsValidIntent(IntentBill))
	assert.False(t, IsValidIntent(IntentType("meeting")))
}
