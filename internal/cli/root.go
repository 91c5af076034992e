// Package cli provides the moodflow command tree: an interactive chat
// loop for planning turns, a read-only schedule viewer, and the HTTP
// server entrypoint.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ameliedv/moodflow/internal/llm"
	"github.com/ameliedv/moodflow/internal/planner"
)

// App holds the wired services CLI commands run against.
type App struct {
	Planner *planner.Service
	Oracle  llm.Client
	Logger  *slog.Logger

	// IsInteractive reports whether stdin is a terminal; the chat
	// command falls back to single-shot mode when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "moodflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "moodflow",
		Short: "Mood-aware day planner",
		Long:  "MoodFlow plans your day around how you feel: tell it your tasks and your mood, and it proposes a schedule inside your work window.",
	}

	root.AddCommand(
		newChatCmd(app),
		newShowCmd(app),
		newServeCmd(app),
	)

	return root
}
