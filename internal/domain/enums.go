package domain

// IntentType identifies which draft variant an input resolved to.
type IntentType string

const (
	IntentTask      IntentType = "task"
	IntentEpic      IntentType = "epic"
	IntentChallenge IntentType = "challenge"
	IntentEvent     IntentType = "event"
	IntentBill      IntentType = "bill"
	IntentNote      IntentType = "note"
)

// validIntents is the set of known intent types for validation.
var validIntents = map[IntentType]bool{
	IntentTask: true, IntentEpic: true, IntentChallenge: true,
	IntentEvent: true, IntentBill: true, IntentNote: true,
}

// IsValidIntent returns true if the given value is a known intent type.
func IsValidIntent(t IntentType) bool {
	return validIntents[t]
}

type LifeArea string

const (
	AreaCareer        LifeArea = "career"
	AreaHealth        LifeArea = "health"
	AreaRelationships LifeArea = "relationships"
	AreaFinance       LifeArea = "finance"
	AreaLearning      LifeArea = "learning"
	AreaLeisure       LifeArea = "leisure"
	AreaPersonal      LifeArea = "personal"
)

// ValidLifeAreas is the canonical set of accepted life area strings.
var ValidLifeAreas = map[string]bool{
	"career": true, "health": true, "relationships": true,
	"finance": true, "learning": true, "leisure": true, "personal": true,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

// Quadrant places work on the urgent/important matrix.
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "urgent_important"
	QuadrantSchedule  Quadrant = "not_urgent_important"
	QuadrantDelegate  Quadrant = "urgent_not_important"
	QuadrantEliminate Quadrant = "not_urgent_not_important"
)

var ValidQuadrants = map[string]bool{
	"urgent_important": true, "not_urgent_important": true,
	"urgent_not_important": true, "not_urgent_not_important": true,
}

type ChallengeKind string

const (
	ChallengeBuildHabit ChallengeKind = "build_habit"
	ChallengeBreakHabit ChallengeKind = "break_habit"
	ChallengeTimeBound  ChallengeKind = "time_bound"
)

var ValidChallengeKinds = map[string]bool{
	"build_habit": true, "break_habit": true, "time_bound": true,
}

// RecurrenceFrequency is used by recurring bills.
type RecurrenceFrequency string

const (
	RecurWeekly    RecurrenceFrequency = "weekly"
	RecurMonthly   RecurrenceFrequency = "monthly"
	RecurQuarterly RecurrenceFrequency = "quarterly"
	RecurYearly    RecurrenceFrequency = "yearly"
)

var ValidRecurrenceFrequencies = map[string]bool{
	"weekly": true, "monthly": true, "quarterly": true, "yearly": true,
}

// AttachmentKind classifies an uploaded attachment.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentPDF   AttachmentKind = "pdf"
	AttachmentAudio AttachmentKind = "audio"
	AttachmentOther AttachmentKind = "other"
)
