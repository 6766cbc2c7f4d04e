package intake

import (
	"encoding/json"

	"github.com/dmarovic/inflow/internal/domain"
)

// Wire records decode the model's draft object with every field optional.
// Decoding into pointer types first, then running an explicit defaulting
// pass, keeps "absent" distinguishable from "present but malformed": the
// tolerant decoder drops malformed fields to nil and both cases end up on
// the documented default.

type taskWire struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	Priority         *string  `json:"priority"`
	LifeArea         *string  `json:"life_area"`
	Quadrant         *string  `json:"quadrant"`
	DueDate          *string  `json:"due_date"`
	EpicRef          *string  `json:"epic_ref"`
	Labels           []string `json:"labels"`
	EstimatedMinutes *int     `json:"estimated_minutes"`
}

type epicWire struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	LifeArea         *string  `json:"life_area"`
	Quadrant         *string  `json:"quadrant"`
	StartDate        *string  `json:"start_date"`
	TargetDate       *string  `json:"target_date"`
	Labels           []string `json:"labels"`
	TargetPercentage *int     `json:"target_percentage"`
}

type challengeWire struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	ChallengeKind   *string  `json:"challenge_kind"`
	LifeArea        *string  `json:"life_area"`
	DurationDays    *int     `json:"duration_days"`
	StartDate       *string  `json:"start_date"`
	DailyTarget     *int     `json:"daily_target"`
	DailyTargetUnit *string  `json:"daily_target_unit"`
	Labels          []string `json:"labels"`
	ReminderTime    *string  `json:"reminder_time"`
}

type eventWire struct {
	Title                 *string  `json:"title"`
	Description           *string  `json:"description"`
	LifeArea              *string  `json:"life_area"`
	StartDateTime         *string  `json:"start_date_time"`
	EndDateTime           *string  `json:"end_date_time"`
	Location              *string  `json:"location"`
	Attendees             []string `json:"attendees"`
	IsAllDay              *bool    `json:"is_all_day"`
	ReminderMinutesBefore *int     `json:"reminder_minutes_before"`
	RecurrenceRule        *string  `json:"recurrence_rule"`
}

type billWire struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	Vendor              *string  `json:"vendor"`
	Amount              *float64 `json:"amount"`
	Currency            *string  `json:"currency"`
	DueDate             *string  `json:"due_date"`
	IsRecurring         *bool    `json:"is_recurring"`
	RecurrenceFrequency *string  `json:"recurrence_frequency"`
	Category            *string  `json:"category"`
	Autopay             *bool    `json:"autopay"`
	ReminderDaysBefore  *int     `json:"reminder_days_before"`
}

type noteWire struct {
	Title            *string  `json:"title"`
	Content          *string  `json:"content"`
	LifeArea         *string  `json:"life_area"`
	Tags             []string `json:"tags"`
	LinkedEntityRef  *string  `json:"linked_entity_ref"`
	LinkedEntityKind *string  `json:"linked_entity_kind"`
	IsPinned         *bool    `json:"is_pinned"`
}

// DecodeDraft decodes the model's draft object into the variant selected by
// intent, filling every absent or malformed field with its documented
// default. The result is always a fully populated variant.
func DecodeDraft(intent domain.IntentType, raw json.RawMessage, in domain.OriginalInput) domain.Draft {
	switch intent {
	case domain.IntentTask:
		return decodeTask(raw)
	case domain.IntentEpic:
		return decodeEpic(raw)
	case domain.IntentChallenge:
		return decodeChallenge(raw)
	case domain.IntentEvent:
		return decodeEvent(raw)
	case domain.IntentBill:
		return decodeBill(raw)
	default:
		return decodeNote(raw, in)
	}
}

func decodeTask(raw json.RawMessage) domain.Draft {
	var w taskWire
	unmarshalLenient(raw, &w)
	return domain.Draft{
		Kind: domain.IntentTask,
		Task: &domain.TaskDraft{
			Title:            strOr(w.Title, ""),
			Description:      strOr(w.Description, ""),
			Priority:         domain.Priority(enumOr(w.Priority, domain.ValidPriorities, string(domain.PriorityMedium))),
			LifeArea:         lifeAreaOr(w.LifeArea, ""),
			Quadrant:         domain.Quadrant(enumOr(w.Quadrant, domain.ValidQuadrants, string(domain.QuadrantSchedule))),
			DueDate:          w.DueDate,
			EpicRef:          w.EpicRef,
			Labels:           listOr(w.Labels),
			EstimatedMinutes: intOr(w.EstimatedMinutes, 30),
		},
	}
}

func decodeEpic(raw json.RawMessage) domain.Draft {
	var w epicWire
	unmarshalLenient(raw, &w)
	return domain.Draft{
		Kind: domain.IntentEpic,
		Epic: &domain.EpicDraft{
			Title:            strOr(w.Title, ""),
			Description:      strOr(w.Description, ""),
			LifeArea:         lifeAreaOr(w.LifeArea, string(domain.AreaPersonal)),
			Quadrant:         domain.Quadrant(enumOr(w.Quadrant, domain.ValidQuadrants, string(domain.QuadrantSchedule))),
			StartDate:        w.StartDate,
			TargetDate:       w.TargetDate,
			Labels:           listOr(w.Labels),
			TargetPercentage: intOr(w.TargetPercentage, 100),
		},
	}
}

func decodeChallenge(raw json.RawMessage) domain.Draft {
	var w challengeWire
	unmarshalLenient(raw, &w)
	return domain.Draft{
		Kind: domain.IntentChallenge,
		Challenge: &domain.ChallengeDraft{
			Title:           strOr(w.Title, ""),
			Description:     strOr(w.Description, ""),
			ChallengeKind:   domain.ChallengeKind(enumOr(w.ChallengeKind, domain.ValidChallengeKinds, "")),
			LifeArea:        lifeAreaOr(w.LifeArea, string(domain.AreaPersonal)),
			DurationDays:    intOr(w.DurationDays, 30),
			StartDate:       w.StartDate,
			DailyTarget:     intOr(w.DailyTarget, 1),
			DailyTargetUnit: strOr(w.DailyTargetUnit, "times"),
			Labels:          listOr(w.Labels),
			ReminderTime:    strOr(w.ReminderTime, "09:00"),
		},
	}
}

func decodeEvent(raw json.RawMessage) domain.Draft {
	var w eventWire
	unmarshalLenient(raw, &w)
	return domain.Draft{
		Kind: domain.IntentEvent,
		Event: &domain.EventDraft{
			Title:                 strOr(w.Title, ""),
			Description:           strOr(w.Description, ""),
			LifeArea:              lifeAreaOr(w.LifeArea, string(domain.AreaPersonal)),
			StartDateTime:         w.StartDateTime,
			EndDateTime:           w.EndDateTime,
			Location:              w.Location,
			Attendees:             listOr(w.Attendees),
			IsAllDay:              boolOr(w.IsAllDay, false),
			ReminderMinutesBefore: intOr(w.ReminderMinutesBefore, 30),
			RecurrenceRule:        w.RecurrenceRule,
		},
	}
}

func decodeBill(raw json.RawMessage) domain.Draft {
	var w billWire
	unmarshalLenient(raw, &w)
	var freq *domain.RecurrenceFrequency
	if w.RecurrenceFrequency != nil && domain.ValidRecurrenceFrequencies[*w.RecurrenceFrequency] {
		f := domain.RecurrenceFrequency(*w.RecurrenceFrequency)
		freq = &f
	}
	return domain.Draft{
		Kind: domain.IntentBill,
		Bill: &domain.BillDraft{
			Title:               strOr(w.Title, ""),
			Description:         strOr(w.Description, ""),
			Vendor:              strOr(w.Vendor, ""),
			Amount:              floatOr(w.Amount, 0),
			Currency:            strOr(w.Currency, "USD"),
			DueDate:             w.DueDate,
			IsRecurring:         boolOr(w.IsRecurring, false),
			RecurrenceFrequency: freq,
			Category:            strOr(w.Category, "general"),
			Autopay:             boolOr(w.Autopay, false),
			ReminderDaysBefore:  intOr(w.ReminderDaysBefore, 3),
		},
	}
}

func decodeNote(raw json.RawMessage, in domain.OriginalInput) domain.Draft {
	var w noteWire
	unmarshalLenient(raw, &w)
	content := strOr(w.Content, "")
	if content == "" {
		content = in.CombinedText()
	}
	var linkedKind *domain.IntentType
	if w.LinkedEntityKind != nil && domain.IsValidIntent(domain.IntentType(*w.LinkedEntityKind)) {
		k := domain.IntentType(*w.LinkedEntityKind)
		linkedKind = &k
	}
	return domain.Draft{
		Kind: domain.IntentNote,
		Note: &domain.NoteDraft{
			Title:            strOr(w.Title, noteTitleFrom(content)),
			Content:          content,
			LifeArea:         lifeAreaOr(w.LifeArea, string(domain.AreaPersonal)),
			Tags:             listOr(w.Tags),
			LinkedEntityRef:  w.LinkedEntityRef,
			LinkedEntityKind: linkedKind,
			IsPinned:         boolOr(w.IsPinned, false),
		},
	}
}

// MinimalDraft builds a best-effort draft of the given kind from the
// original input alone. Used when the user rejects a suggested alternative:
// they get the kind they asked for, seeded from their own words.
func MinimalDraft(intent domain.IntentType, in domain.OriginalInput) domain.Draft {
	d := DecodeDraft(intent, nil, in)
	title := noteTitleFrom(in.CombinedText())
	switch {
	case d.Task != nil:
		setNonEmpty(&d.Task.Title, title)
		if d.Task.LifeArea == "" {
			d.Task.LifeArea = domain.AreaPersonal
		}
	case d.Epic != nil:
		setNonEmpty(&d.Epic.Title, title)
	case d.Challenge != nil:
		setNonEmpty(&d.Challenge.Title, title)
		if d.Challenge.ChallengeKind == "" {
			d.Challenge.ChallengeKind = domain.ChallengeBuildHabit
		}
	case d.Event != nil:
		setNonEmpty(&d.Event.Title, title)
	case d.Bill != nil:
		setNonEmpty(&d.Bill.Title, title)
	case d.Note != nil:
		setNonEmpty(&d.Note.Title, title)
	}
	return d
}

// unmarshalLenient decodes raw into v, ignoring total failure: the zero wire
// record then defaults every field.
func unmarshalLenient(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func intOr(n *int, def int) int {
	if n == nil || *n < 0 {
		return def
	}
	return *n
}

func floatOr(f *float64, def float64) float64 {
	if f == nil || *f < 0 {
		return def
	}
	return *f
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func listOr(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// enumOr returns *s when it is a member of valid, otherwise def. An empty
// def marks the field as still missing so the clarification engine can ask
// for it.
func enumOr(s *string, valid map[string]bool, def string) string {
	if s != nil && valid[*s] {
		return *s
	}
	return def
}

func lifeAreaOr(s *string, def string) domain.LifeArea {
	return domain.LifeArea(enumOr(s, domain.ValidLifeAreas, def))
}
