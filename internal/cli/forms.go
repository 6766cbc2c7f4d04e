package cli

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dmarovic/inflow/internal/intake"
)

// answerCollector binds huh form fields to clarification questions and
// assembles the answers after the form runs.
type answerCollector struct {
	texts   map[string]*string
	choices map[string]*string
	multis  map[string]*[]string
	bools   map[string]*bool
}

// buildFlowForm renders a clarification flow as a single huh form, one
// field per question.
func buildFlowForm(flow *intake.ClarificationFlow) (*huh.Form, *answerCollector) {
	col := &answerCollector{
		texts:   map[string]*string{},
		choices: map[string]*string{},
		multis:  map[string]*[]string{},
		bools:   map[string]*bool{},
	}

	fields := make([]huh.Field, 0, len(flow.Questions))
	for _, q := range flow.Questions {
		switch q.Kind {
		case intake.QuestionSingleChoice:
			v := new(string)
			*v = q.DefaultValue
			col.choices[q.ID] = v
			opts := make([]huh.Option[string], 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o, o))
			}
			fields = append(fields, huh.NewSelect[string]().
				Title(q.Prompt).
				Options(opts...).
				Value(v))

		case intake.QuestionMultiChoice:
			if len(q.Options) == 0 {
				// No enumerable options: fall back to comma-separated input.
				v := new(string)
				col.texts[q.ID] = v
				fields = append(fields, huh.NewInput().
					Title(q.Prompt).
					Value(v))
				continue
			}
			v := new([]string)
			col.multis[q.ID] = v
			opts := make([]huh.Option[string], 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o, o))
			}
			fields = append(fields, huh.NewMultiSelect[string]().
				Title(q.Prompt).
				Options(opts...).
				Value(v))

		case intake.QuestionYesNo:
			v := new(bool)
			col.bools[q.ID] = v
			fields = append(fields, huh.NewConfirm().
				Title(q.Prompt).
				Value(v))

		default:
			v := new(string)
			col.texts[q.ID] = v
			fields = append(fields, huh.NewInput().
				Title(q.Prompt).
				Value(v))
		}
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false)
	return form, col
}

// Answers converts the collected field values into intake answers.
func (c *answerCollector) Answers() []intake.Answer {
	var out []intake.Answer
	for id, v := range c.texts {
		if s := strings.TrimSpace(*v); s != "" {
			out = append(out, intake.Answer{QuestionID: id, Value: s})
		}
	}
	for id, v := range c.choices {
		if *v != "" {
			out = append(out, intake.Answer{QuestionID: id, Value: *v})
		}
	}
	for id, v := range c.multis {
		if len(*v) > 0 {
			out = append(out, intake.Answer{QuestionID: id, Values: *v})
		}
	}
	for id, v := range c.bools {
		val := "no"
		if *v {
			val = "yes"
		}
		out = append(out, intake.Answer{QuestionID: id, Value: val})
	}
	return out
}
