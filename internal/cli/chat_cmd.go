package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/intake"
)

func newChatCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat [text...]",
		Short: "Interpret input locally and walk through clarification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("chat requires an interactive terminal")
			}

			text := strings.Join(args, " ")
			if text == "" {
				if err := huh.NewForm(huh.NewGroup(
					huh.NewText().
						Title("What's on your mind?").
						Value(&text),
				)).WithShowHelp(false).Run(); err != nil {
					return err
				}
			}

			return runChat(cmd.Context(), app, userID, text)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user id to act as")
	return cmd
}

func runChat(ctx context.Context, app *App, userID, text string) error {
	turn, err := app.Orchestrator.ProcessInput(ctx, userID, intake.InputRequest{Text: text})
	if err != nil {
		return err
	}

	for turn.Status != intake.StatusReady {
		fmt.Println(renderTurn(turn))
		if turn.Draft != nil {
			fmt.Print(renderDraft(*turn.Draft))
		}

		switch turn.Status {
		case intake.StatusSuggestAlternative:
			accepted := true
			prompt := "Create this instead?"
			if turn.ClarificationFlow != nil && len(turn.ClarificationFlow.Questions) > 0 {
				prompt = turn.ClarificationFlow.Questions[0].Prompt
			}
			if err := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().Title(prompt).Value(&accepted),
			)).WithShowHelp(false).Run(); err != nil {
				return err
			}
			turn, err = app.Orchestrator.ConfirmAlternative(ctx, turn.SessionID, accepted)
			if err != nil {
				return err
			}

		case intake.StatusNeedsClarification:
			form, col := buildFlowForm(turn.ClarificationFlow)
			if err := form.Run(); err != nil {
				return err
			}
			turn, err = app.Orchestrator.SubmitClarificationAnswers(
				ctx, userID, turn.SessionID, turn.ClarificationFlow.FlowID, col.Answers())
			if err != nil {
				if errors.Is(err, intake.ErrSessionNotFound) {
					return fmt.Errorf("session expired, start over: %w", err)
				}
				return err
			}
		}
	}

	fmt.Println(renderTurn(turn))
	if turn.Draft != nil {
		fmt.Print(renderDraft(*turn.Draft))
	}

	if app.Approval == nil {
		return nil
	}

	create := true
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Create it?").Value(&create),
	)).WithShowHelp(false).Run(); err != nil {
		return err
	}

	action := approval.ActionApprove
	if !create {
		action = approval.ActionReject
	}
	res, err := app.Approval.Apply(ctx, userID, turn.DraftID, action, nil)
	if err != nil {
		return err
	}
	if res.Success && res.CreatedEntityID != "" {
		fmt.Printf("Created %s %s\n", res.CreatedEntityKind, res.CreatedEntityID)
	} else {
		fmt.Println("Discarded.")
	}
	return nil
}
