package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmarovic/inflow/internal/domain"
	"github.com/dmarovic/inflow/internal/intake"
)

var (
	styleHeader = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	styleValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374")).Italic(true)
)

// renderTurn formats a turn header: status, intent and confidence.
func renderTurn(t *intake.Turn) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("[%s] %s", t.Status, t.IntentType)))
	b.WriteString(styleDim.Render(fmt.Sprintf("  (confidence %.0f%%)", t.Confidence*100)))
	if t.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(styleDim.Render(t.Reasoning))
	}
	return b.String()
}

// renderDraft formats the active variant as label/value lines.
func renderDraft(d domain.Draft) string {
	var rows [][2]string
	switch {
	case d.Task != nil:
		t := d.Task
		rows = append(rows,
			[2]string{"Title", t.Title},
			[2]string{"Priority", string(t.Priority)},
			[2]string{"Life area", string(t.LifeArea)},
			[2]string{"Quadrant", string(t.Quadrant)},
			[2]string{"Due", strOrDash(t.DueDate)},
			[2]string{"Estimate", fmt.Sprintf("%d min", t.EstimatedMinutes)},
			[2]string{"Labels", strings.Join(t.Labels, ", ")},
		)
	case d.Epic != nil:
		e := d.Epic
		rows = append(rows,
			[2]string{"Title", e.Title},
			[2]string{"Life area", string(e.LifeArea)},
			[2]string{"Start", strOrDash(e.StartDate)},
			[2]string{"Target", strOrDash(e.TargetDate)},
			[2]string{"Target %", fmt.Sprintf("%d", e.TargetPercentage)},
		)
	case d.Challenge != nil:
		c := d.Challenge
		rows = append(rows,
			[2]string{"Title", c.Title},
			[2]string{"Kind", string(c.ChallengeKind)},
			[2]string{"Life area", string(c.LifeArea)},
			[2]string{"Duration", fmt.Sprintf("%d days", c.DurationDays)},
			[2]string{"Daily target", fmt.Sprintf("%d %s", c.DailyTarget, c.DailyTargetUnit)},
			[2]string{"Reminder", c.ReminderTime},
		)
	case d.Event != nil:
		ev := d.Event
		rows = append(rows,
			[2]string{"Title", ev.Title},
			[2]string{"Starts", strOrDash(ev.StartDateTime)},
			[2]string{"Ends", strOrDash(ev.EndDateTime)},
			[2]string{"Location", strOrDash(ev.Location)},
			[2]string{"All day", yesNo(ev.IsAllDay)},
			[2]string{"Attendees", strings.Join(ev.Attendees, ", ")},
		)
	case d.Bill != nil:
		bl := d.Bill
		rows = append(rows,
			[2]string{"Title", bl.Title},
			[2]string{"Vendor", bl.Vendor},
			[2]string{"Amount", fmt.Sprintf("%.2f %s", bl.Amount, bl.Currency)},
			[2]string{"Due", strOrDash(bl.DueDate)},
			[2]string{"Recurring", yesNo(bl.IsRecurring)},
			[2]string{"Category", bl.Category},
		)
	case d.Note != nil:
		n := d.Note
		rows = append(rows,
			[2]string{"Title", n.Title},
			[2]string{"Life area", string(n.LifeArea)},
			[2]string{"Tags", strings.Join(n.Tags, ", ")},
			[2]string{"Pinned", yesNo(n.IsPinned)},
			[2]string{"Content", n.Content},
		)
	}

	var b strings.Builder
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-12s", row[0])))
		b.WriteString(styleValue.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
