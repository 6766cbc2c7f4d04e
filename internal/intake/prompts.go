package intake

import (
	"strings"

	"github.com/dmarovic/inflow/internal/domain"
)

// interpretSystemPrompt instructs the model to convert free-form input into
// a structured draft response.
const interpretSystemPrompt = `You are the intake interpreter for a personal productivity platform called Inflow.
Your task is to convert unstructured user input into a structured JSON draft.

You must output ONLY a JSON object with these exact fields:
- status: "ready", "needs_clarification", or "suggest_alternative"
- intent: one of [task, epic, challenge, event, bill, note]
- confidence: number 0 to 1 (how sure you are of the interpretation)
- reasoning: brief explanation of your interpretation
- suggestions: array of short follow-up suggestions for the user (may be empty)
- draft: object with intent-specific fields (see below)
- missing_fields: array of field names you could not determine (empty when status is "ready")
- original_intent: only when status is "suggest_alternative", the intent the user literally asked for
- alternative_reason: only when status is "suggest_alternative", why the suggested intent fits better

Draft field schemas:
- task: { title, description, priority: "low"|"medium"|"high"|"urgent", life_area, quadrant, due_date?: "YYYY-MM-DD", epic_ref?, labels: string[], estimated_minutes: number }
- epic: { title, description, life_area, quadrant, start_date?, target_date?, labels: string[], target_percentage: number }
- challenge: { title, description, challenge_kind: "build_habit"|"break_habit"|"time_bound", life_area, duration_days: number, start_date?, daily_target: number, daily_target_unit, labels: string[], reminder_time: "HH:MM" }
- event: { title, description, life_area, start_date_time?: RFC3339, end_date_time?, location?, attendees: string[], is_all_day: boolean, reminder_minutes_before: number, recurrence_rule? }
- bill: { title, description, vendor, amount: number, currency, due_date?, is_recurring: boolean, recurrence_frequency?: "weekly"|"monthly"|"quarterly"|"yearly", category, autopay: boolean, reminder_days_before: number }
- note: { title, content, life_area, tags: string[], linked_entity_ref?, linked_entity_kind?, is_pinned: boolean }

life_area is one of: career, health, relationships, finance, learning, leisure, personal
quadrant is one of: urgent_important, not_urgent_important, urgent_not_important, not_urgent_not_important

CRITICAL RULES:
1. Use status "needs_clarification" when a required field (title, life_area, start time, amount) cannot be inferred
2. Use status "suggest_alternative" only when the input clearly describes a different entity kind than the user named
3. Never invent amounts, dates or names that are not in the input
4. Use strict JSON numeric literals (e.g., 0.85, never .85)
5. Output ONLY the JSON object, no markdown, no explanation`

// buildInterpretUserPrompt flattens the original input into a single prompt.
// Attachment text is appended after the typed text so the model sees
// everything the user provided.
func buildInterpretUserPrompt(in domain.OriginalInput) string {
	var b strings.Builder

	if in.Text != "" {
		b.WriteString(in.Text)
	}
	if in.VoiceTranscript != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Voice transcript: ")
		b.WriteString(in.VoiceTranscript)
	}
	for _, att := range in.Attachments {
		if att.ExtractedText == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Attachment ")
		b.WriteString(att.Name)
		b.WriteString(": ")
		b.WriteString(att.ExtractedText)
	}

	return b.String()
}
