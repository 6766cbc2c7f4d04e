// Package cli wires the inflow commands: a long-running API server and an
// interactive local intake chat.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/intake"
)

// App holds the wired services CLI commands run against.
type App struct {
	Orchestrator *intake.Orchestrator
	Approval     *approval.Service
	HTTPAddr     string
}

// NewRootCmd creates the top-level "inflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "inflow",
		Short: "AI-assisted intake for tasks, events, bills, notes and more",
	}

	root.AddCommand(
		newServeCmd(app),
		newChatCmd(app),
	)

	return root
}
