package intake

import (
	"strconv"
	"strings"

	"github.com/dmarovic/inflow/internal/domain"
	"github.com/google/uuid"
)

// Canonical field targets used by clarification questions. Answers are
// merged by target field, so question ids stay opaque to clients.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldLifeArea      = "life_area"
	FieldPriority      = "priority"
	FieldQuadrant      = "quadrant"
	FieldDueDate       = "due_date"
	FieldStartDateTime = "start_date_time"
	FieldChallengeKind = "challenge_kind"
	FieldDurationDays  = "duration_days"
	FieldDailyTarget   = "daily_target"
	FieldVendor        = "vendor"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldCategory      = "category"
	FieldLocation      = "location"
	FieldIsAllDay      = "is_all_day"
	FieldIsRecurring   = "is_recurring"
	FieldAutopay       = "autopay"
	FieldLabels        = "labels"
	FieldTags          = "tags"
	FieldContent       = "content"

	// FieldAcceptAlternative is the synthetic target of the yes/no question
	// issued on a suggest_alternative turn.
	FieldAcceptAlternative = "accept_alternative"
)

// MissingCriticalFields returns the fields that must be resolved before the
// draft can finalize, per variant. Epics and notes have no hard
// requirements.
func MissingCriticalFields(d domain.Draft) []string {
	var missing []string
	switch {
	case d.Task != nil:
		if d.Task.Title == "" {
			missing = append(missing, FieldTitle)
		}
		if d.Task.LifeArea == "" {
			missing = append(missing, FieldLifeArea)
		}
	case d.Event != nil:
		if d.Event.Title == "" {
			missing = append(missing, FieldTitle)
		}
		if !d.Event.IsAllDay && (d.Event.StartDateTime == nil || *d.Event.StartDateTime == "") {
			missing = append(missing, FieldStartDateTime)
		}
	case d.Challenge != nil:
		if d.Challenge.Title == "" {
			missing = append(missing, FieldTitle)
		}
		if d.Challenge.ChallengeKind == "" {
			missing = append(missing, FieldChallengeKind)
		}
	case d.Bill != nil:
		if d.Bill.Title == "" {
			missing = append(missing, FieldTitle)
		}
		if d.Bill.Amount <= 0 {
			missing = append(missing, FieldAmount)
		}
	}
	return missing
}

// questionTemplate is the static shape of a clarification question for one
// field target.
type questionTemplate struct {
	Prompt       string
	Kind         QuestionKind
	Options      []string
	Required     bool
	DefaultValue string
}

var questionTemplates = map[string]questionTemplate{
	FieldTitle: {
		Prompt:   "What should this be called?",
		Kind:     QuestionFreeText,
		Required: true,
	},
	FieldLifeArea: {
		Prompt:       "Which life area does this belong to?",
		Kind:         QuestionSingleChoice,
		Options:      []string{"career", "health", "relationships", "finance", "learning", "leisure", "personal"},
		Required:     true,
		DefaultValue: "personal",
	},
	FieldPriority: {
		Prompt:       "How urgent is this?",
		Kind:         QuestionSingleChoice,
		Options:      []string{"low", "medium", "high", "urgent"},
		DefaultValue: "medium",
	},
	FieldQuadrant: {
		Prompt:  "Where does this fall on the urgent/important matrix?",
		Kind:    QuestionSingleChoice,
		Options: []string{"urgent_important", "not_urgent_important", "urgent_not_important", "not_urgent_not_important"},
	},
	FieldStartDateTime: {
		Prompt:   "When does it start? (e.g. 2025-03-03T18:00:00Z)",
		Kind:     QuestionFreeText,
		Required: true,
	},
	FieldDueDate: {
		Prompt: "When is it due? (YYYY-MM-DD, blank for none)",
		Kind:   QuestionFreeText,
	},
	FieldChallengeKind: {
		Prompt:   "What kind of challenge is this?",
		Kind:     QuestionSingleChoice,
		Options:  []string{"build_habit", "break_habit", "time_bound"},
		Required: true,
	},
	FieldAmount: {
		Prompt:   "How much is the bill for?",
		Kind:     QuestionFreeText,
		Required: true,
	},
	FieldVendor: {
		Prompt: "Who is the bill from?",
		Kind:   QuestionFreeText,
	},
	FieldIsAllDay: {
		Prompt: "Is this an all-day event?",
		Kind:   QuestionYesNo,
	},
	FieldIsRecurring: {
		Prompt: "Does this bill repeat?",
		Kind:   QuestionYesNo,
	},
	FieldLabels: {
		Prompt: "Any labels to apply? (comma separated)",
		Kind:   QuestionMultiChoice,
	},
}

// GenerateFollowUp produces a clarification flow asking at most
// min(len(missing), budget-asked) questions, one per missing field in
// order. Returns nil when no budget remains or nothing is missing.
func GenerateFollowUp(d domain.Draft, missing []string, asked, budget int) *ClarificationFlow {
	remaining := budget - asked
	if remaining <= 0 || len(missing) == 0 {
		return nil
	}
	if len(missing) > remaining {
		missing = missing[:remaining]
	}

	flow := &ClarificationFlow{
		FlowID:      uuid.NewString(),
		Title:       "A few more details",
		Description: "Answer these to finish creating your " + string(d.Kind) + ".",
		TotalBudget: budget,
	}
	for _, field := range missing {
		tmpl, ok := questionTemplates[field]
		if !ok {
			tmpl = questionTemplate{
				Prompt: "What is the " + strings.ReplaceAll(field, "_", " ") + "?",
				Kind:   QuestionFreeText,
			}
		}
		flow.Questions = append(flow.Questions, ClarificationQuestion{
			ID:           uuid.NewString(),
			Prompt:       tmpl.Prompt,
			Kind:         tmpl.Kind,
			Options:      tmpl.Options,
			TargetField:  field,
			Required:     tmpl.Required,
			DefaultValue: tmpl.DefaultValue,
		})
	}
	return flow
}

// ApplyAnswers merges clarification answers into a new draft value. Answers
// referencing unknown question ids, or fields the active variant does not
// carry, are silently ignored. Independent fields merge associatively:
// answer order never changes the result.
func ApplyAnswers(d domain.Draft, flow *ClarificationFlow, answers []Answer) domain.Draft {
	out := d.Clone()
	if flow == nil {
		return out
	}
	for _, ans := range answers {
		q, ok := flow.QuestionByID(ans.QuestionID)
		if !ok {
			continue
		}
		applyField(&out, q, ans)
	}
	return out
}

func applyField(d *domain.Draft, q ClarificationQuestion, ans Answer) {
	value := strings.TrimSpace(ans.Value)
	values := ans.Values
	if q.Kind == QuestionMultiChoice && len(values) == 0 && value != "" {
		values = splitList(value)
	}

	switch {
	case d.Task != nil:
		applyTaskField(d.Task, q.TargetField, value, values)
	case d.Epic != nil:
		applyEpicField(d.Epic, q.TargetField, value, values)
	case d.Challenge != nil:
		applyChallengeField(d.Challenge, q.TargetField, value, values)
	case d.Event != nil:
		applyEventField(d.Event, q.TargetField, value, values)
	case d.Bill != nil:
		applyBillField(d.Bill, q.TargetField, value)
	case d.Note != nil:
		applyNoteField(d.Note, q.TargetField, value, values)
	}
}

func applyTaskField(t *domain.TaskDraft, field, value string, values []string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&t.Title, value)
	case FieldDescription:
		setNonEmpty(&t.Description, value)
	case FieldLifeArea:
		if domain.ValidLifeAreas[value] {
			t.LifeArea = domain.LifeArea(value)
		}
	case FieldPriority:
		if domain.ValidPriorities[value] {
			t.Priority = domain.Priority(value)
		}
	case FieldQuadrant:
		if domain.ValidQuadrants[value] {
			t.Quadrant = domain.Quadrant(value)
		}
	case FieldDueDate:
		if value != "" {
			t.DueDate = &value
		}
	case FieldLabels:
		if len(values) > 0 {
			t.Labels = values
		}
	case "estimated_minutes":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			t.EstimatedMinutes = n
		}
	}
}

func applyEpicField(e *domain.EpicDraft, field, value string, values []string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&e.Title, value)
	case FieldDescription:
		setNonEmpty(&e.Description, value)
	case FieldLifeArea:
		if domain.ValidLifeAreas[value] {
			e.LifeArea = domain.LifeArea(value)
		}
	case FieldQuadrant:
		if domain.ValidQuadrants[value] {
			e.Quadrant = domain.Quadrant(value)
		}
	case "start_date":
		if value != "" {
			e.StartDate = &value
		}
	case "target_date":
		if value != "" {
			e.TargetDate = &value
		}
	case FieldLabels:
		if len(values) > 0 {
			e.Labels = values
		}
	}
}

func applyChallengeField(c *domain.ChallengeDraft, field, value string, values []string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&c.Title, value)
	case FieldDescription:
		setNonEmpty(&c.Description, value)
	case FieldChallengeKind:
		if domain.ValidChallengeKinds[value] {
			c.ChallengeKind = domain.ChallengeKind(value)
		}
	case FieldLifeArea:
		if domain.ValidLifeAreas[value] {
			c.LifeArea = domain.LifeArea(value)
		}
	case FieldDurationDays:
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			c.DurationDays = n
		}
	case FieldDailyTarget:
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			c.DailyTarget = n
		}
	case FieldLabels:
		if len(values) > 0 {
			c.Labels = values
		}
	}
}

func applyEventField(e *domain.EventDraft, field, value string, values []string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&e.Title, value)
	case FieldDescription:
		setNonEmpty(&e.Description, value)
	case FieldLifeArea:
		if domain.ValidLifeAreas[value] {
			e.LifeArea = domain.LifeArea(value)
		}
	case FieldStartDateTime:
		if value != "" {
			e.StartDateTime = &value
		}
	case "end_date_time":
		if value != "" {
			e.EndDateTime = &value
		}
	case FieldLocation:
		if value != "" {
			e.Location = &value
		}
	case "attendees":
		if len(values) > 0 {
			e.Attendees = values
		}
	case FieldIsAllDay:
		e.IsAllDay = parseYes(value)
	}
}

func applyBillField(b *domain.BillDraft, field, value string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&b.Title, value)
	case FieldDescription:
		setNonEmpty(&b.Description, value)
	case FieldVendor:
		setNonEmpty(&b.Vendor, value)
	case FieldAmount:
		if f, err := strconv.ParseFloat(strings.TrimPrefix(value, "$"), 64); err == nil && f > 0 {
			b.Amount = f
		}
	case FieldCurrency:
		setNonEmpty(&b.Currency, value)
	case FieldDueDate:
		if value != "" {
			b.DueDate = &value
		}
	case FieldCategory:
		setNonEmpty(&b.Category, value)
	case FieldIsRecurring:
		b.IsRecurring = parseYes(value)
	case FieldAutopay:
		b.Autopay = parseYes(value)
	}
}

func applyNoteField(n *domain.NoteDraft, field, value string, values []string) {
	switch field {
	case FieldTitle:
		setNonEmpty(&n.Title, value)
	case FieldContent:
		setNonEmpty(&n.Content, value)
	case FieldLifeArea:
		if domain.ValidLifeAreas[value] {
			n.LifeArea = domain.LifeArea(value)
		}
	case FieldTags:
		if len(values) > 0 {
			n.Tags = values
		}
	case "is_pinned":
		n.IsPinned = parseYes(value)
	}
}

func setNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func parseYes(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
