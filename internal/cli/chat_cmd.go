package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ameliedv/moodflow/internal/cli/formatter"
	"github.com/ameliedv/moodflow/internal/planner"
	"github.com/ameliedv/moodflow/internal/session"
)

func newChatCmd(app *App) *cobra.Command {
	var (
		dateFlag  string
		startFlag string
		endFlag   string
		userID    string
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Plan your day in conversation",
		Long: "Chat sends planning turns for one date. With a message argument it runs a single turn;\n" +
			"without one it opens an interactive loop (or reads one message from stdin when piped).",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolvePlanDate(dateFlag)
			if err != nil {
				return err
			}
			annotation := planAnnotation(date, startFlag, endFlag)
			if sessionID == "" {
				sessionID = session.NewSessionID()
			}

			turn := func(text string) error {
				return runTurn(cmd, app, sessionID, userID, text+" "+annotation)
			}

			if len(args) > 0 {
				return turn(strings.Join(args, " "))
			}

			if app.IsInteractive == nil || !app.IsInteractive() {
				// Piped input: one message, one turn.
				text, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading message: %w", err)
				}
				msg := strings.TrimSpace(string(text))
				if msg == "" {
					return fmt.Errorf("no message provided")
				}
				return turn(msg)
			}

			return chatLoop(cmd, app, turn, sessionID, date)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date to plan for, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&startFlag, "start", "9:00 AM", "Start of the work window")
	cmd.Flags().StringVar(&endFlag, "end", "5:00 PM", "End of the work window")
	cmd.Flags().StringVar(&userID, "user", "", "User the schedule belongs to")
	cmd.Flags().StringVar(&sessionID, "session", "", "Conversation session ID (default a fresh one)")

	return cmd
}

// chatLoop reads turns from the terminal until EOF or /quit.
func chatLoop(cmd *cobra.Command, app *App, turn func(string) error, sessionID string, date time.Time) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Planning for %s. How are you feeling, and what's on your plate?\n", date.Format("Monday, January 2"))
	fmt.Fprintln(out, formatter.Dim("Commands: /reset clears the conversation, /quit exits."))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit", line == "/exit":
			return nil
		case line == "/reset":
			app.Planner.ResetSession(sessionID)
			fmt.Fprintln(out, formatter.Dim("Conversation cleared."))
			continue
		}
		if err := turn(line); err != nil {
			fmt.Fprintln(out, formatter.StyleRed.Render("Error: "+err.Error()))
		}
	}
}

func runTurn(cmd *cobra.Command, app *App, sessionID, userID, message string) error {
	stop := formatter.StartSpinner("Thinking through your day...")
	resp, err := app.Planner.Plan(cmd.Context(), planner.PlanRequest{
		SessionID: sessionID,
		UserID:    userID,
		Message:   message,
	})
	stop()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTurn(resp))
	return nil
}

// resolvePlanDate parses --date, defaulting to today.
func resolvePlanDate(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", flag)
	}
	return date, nil
}

// planAnnotation stamps the planning context the resolver expects onto
// an outgoing message.
func planAnnotation(date time.Time, start, end string) string {
	return fmt.Sprintf("[Planning for %s | Start: %s | End by: %s]",
		date.Format("Monday, January 2, 2006"), start, end)
}
