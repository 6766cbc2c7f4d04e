package domain

// Draft is a proposed-but-unpersisted entity awaiting user approval.
// Exactly one variant pointer is non-nil, selected by Kind. Draft values are
// treated as immutable per turn: merging clarification answers produces a new
// value via Clone, never an in-place mutation.
type Draft struct {
	Kind      IntentType      `json:"kind"`
	Task      *TaskDraft      `json:"task,omitempty"`
	Epic      *EpicDraft      `json:"epic,omitempty"`
	Challenge *ChallengeDraft `json:"challenge,omitempty"`
	Event     *EventDraft     `json:"event,omitempty"`
	Bill      *BillDraft      `json:"bill,omitempty"`
	Note      *NoteDraft      `json:"note,omitempty"`
}

type TaskDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Priority         Priority `json:"priority"`
	LifeArea         LifeArea `json:"life_area"`
	Quadrant         Quadrant `json:"quadrant"`
	DueDate          *string  `json:"due_date,omitempty"` // YYYY-MM-DD
	EpicRef          *string  `json:"epic_ref,omitempty"`
	Labels           []string `json:"labels"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

type EpicDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	LifeArea         LifeArea `json:"life_area"`
	Quadrant         Quadrant `json:"quadrant"`
	StartDate        *string  `json:"start_date,omitempty"`
	TargetDate       *string  `json:"target_date,omitempty"`
	Labels           []string `json:"labels"`
	TargetPercentage int      `json:"target_percentage"`
}

type ChallengeDraft struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	ChallengeKind   ChallengeKind `json:"challenge_kind"`
	LifeArea        LifeArea      `json:"life_area"`
	DurationDays    int           `json:"duration_days"`
	StartDate       *string       `json:"start_date,omitempty"`
	DailyTarget     int           `json:"daily_target"`
	DailyTargetUnit string        `json:"daily_target_unit"`
	Labels          []string      `json:"labels"`
	ReminderTime    string        `json:"reminder_time"` // HH:MM
}

type EventDraft struct {
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	LifeArea              LifeArea `json:"life_area"`
	StartDateTime         *string  `json:"start_date_time,omitempty"` // RFC 3339
	EndDateTime           *string  `json:"end_date_time,omitempty"`
	Location              *string  `json:"location,omitempty"`
	Attendees             []string `json:"attendees"`
	IsAllDay              bool     `json:"is_all_day"`
	ReminderMinutesBefore int      `json:"reminder_minutes_before"`
	RecurrenceRule        *string  `json:"recurrence_rule,omitempty"`
}

type BillDraft struct {
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Vendor              string               `json:"vendor"`
	Amount              float64              `json:"amount"`
	Currency            string               `json:"currency"`
	DueDate             *string              `json:"due_date,omitempty"`
	IsRecurring         bool                 `json:"is_recurring"`
	RecurrenceFrequency *RecurrenceFrequency `json:"recurrence_frequency,omitempty"`
	Category            string               `json:"category"`
	Autopay             bool                 `json:"autopay"`
	ReminderDaysBefore  int                  `json:"reminder_days_before"`
}

type NoteDraft struct {
	Title            string      `json:"title"`
	Content          string      `json:"content"`
	LifeArea         LifeArea    `json:"life_area"`
	Tags             []string    `json:"tags"`
	LinkedEntityRef  *string     `json:"linked_entity_ref,omitempty"`
	LinkedEntityKind *IntentType `json:"linked_entity_kind,omitempty"`
	IsPinned         bool        `json:"is_pinned"`
}

// DisplayTitle returns the human-facing title of the active variant.
func (d Draft) DisplayTitle() string {
	switch d.Kind {
	case IntentTask:
		if d.Task != nil {
			return d.Task.Title
		}
	case IntentEpic:
		if d.Epic != nil {
			return d.Epic.Title
		}
	case IntentChallenge:
		if d.Challenge != nil {
			return d.Challenge.Title
		}
	case IntentEvent:
		if d.Event != nil {
			return d.Event.Title
		}
	case IntentBill:
		if d.Bill != nil {
			return d.Bill.Title
		}
	case IntentNote:
		if d.Note != nil {
			return d.Note.Title
		}
	}
	return ""
}

// IsZero reports whether no variant is populated.
func (d Draft) IsZero() bool {
	return d.Task == nil && d.Epic == nil && d.Challenge == nil &&
		d.Event == nil && d.Bill == nil && d.Note == nil
}

// Clone returns a deep copy of the draft. Merging answers always goes through
// Clone so the caller's value is never mutated.
func (d Draft) Clone() Draft {
	out := Draft{Kind: d.Kind}
	switch {
	case d.Task != nil:
		t := *d.Task
		t.DueDate = cloneStringPtr(d.Task.DueDate)
		t.EpicRef = cloneStringPtr(d.Task.EpicRef)
		t.Labels = cloneStrings(d.Task.Labels)
		out.Task = &t
	case d.Epic != nil:
		e := *d.Epic
		e.StartDate = cloneStringPtr(d.Epic.StartDate)
		e.TargetDate = cloneStringPtr(d.Epic.TargetDate)
		e.Labels = cloneStrings(d.Epic.Labels)
		out.Epic = &e
	case d.Challenge != nil:
		c := *d.Challenge
		c.StartDate = cloneStringPtr(d.Challenge.StartDate)
		c.Labels = cloneStrings(d.Challenge.Labels)
		out.Challenge = &c
	case d.Event != nil:
		ev := *d.Event
		ev.StartDateTime = cloneStringPtr(d.Event.StartDateTime)
		ev.EndDateTime = cloneStringPtr(d.Event.EndDateTime)
		ev.Location = cloneStringPtr(d.Event.Location)
		ev.RecurrenceRule = cloneStringPtr(d.Event.RecurrenceRule)
		ev.Attendees = cloneStrings(d.Event.Attendees)
		out.Event = &ev
	case d.Bill != nil:
		b := *d.Bill
		b.DueDate = cloneStringPtr(d.Bill.DueDate)
		if d.Bill.RecurrenceFrequency != nil {
			f := *d.Bill.RecurrenceFrequency
			b.RecurrenceFrequency = &f
		}
		out.Bill = &b
	case d.Note != nil:
		n := *d.Note
		n.LinkedEntityRef = cloneStringPtr(d.Note.LinkedEntityRef)
		if d.Note.LinkedEntityKind != nil {
			k := *d.Note.LinkedEntityKind
			n.LinkedEntityKind = &k
		}
		n.Tags = cloneStrings(d.Note.Tags)
		out.Note = &n
	}
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
