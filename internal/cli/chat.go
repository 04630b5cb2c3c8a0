package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"invoiceflow/internal/pricing"
	"invoiceflow/internal/service"
)

var farewellWords = map[string]bool{
	"quit": true,
	"exit": true,
	"bye":  true,
}

func newChatCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the invoice assistant in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, ok := cmd.InOrStdin().(interface{ Fd() uintptr })
			interactive := ok && (isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()))
			return runChat(app, cmd.InOrStdin(), cmd.OutOrStdout(), userID, interactive)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "cli-user", "user identifier for created invoices")
	return cmd
}

func runChat(app *App, in io.Reader, out io.Writer, userID string, interactive bool) error {
	ctx := context.Background()

	fmt.Fprintln(out, styleHeader.Render("Invoice Assistant"))
	fmt.Fprintln(out, "Tell me about the invoice you want to create. I need the customer's")
	fmt.Fprintln(out, "name and email, a description of the work, the amount, and a due date.")
	fmt.Fprintln(out, styleDim.Render("Commands: usage, reset, quit"))
	fmt.Fprintln(out)

	if !app.AgentAvailable {
		fmt.Fprintln(out, styleNotice.Render("Note: no API key configured; field extraction is disabled."))
		fmt.Fprintln(out)
	}

	var sessionID string
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, "You: ")
		}
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "usage":
			printUsage(ctx, out, app, sessionID)
			continue
		case "reset":
			if sessionID != "" {
				if err := app.Sessions.Reset(ctx, sessionID); err != nil {
					fmt.Fprintln(out, styleError.Render("Could not reset the session: "+err.Error()))
					continue
				}
			}
			fmt.Fprintln(out, styleSuccess.Render("Started over. Tell me about the new invoice."))
			fmt.Fprintln(out)
			continue
		}
		if farewellWords[strings.ToLower(input)] {
			fmt.Fprintln(out, styleAssistant.Render("Goodbye!"))
			return scanner.Err()
		}

		result, err := app.Conversations.HandleTurn(ctx, input, sessionID, userID)
		if err != nil {
			fmt.Fprintln(out, styleError.Render("Something went wrong: "+err.Error()))
			continue
		}
		sessionID = result.SessionID
		printTurn(out, result)
	}

	return scanner.Err()
}

func printTurn(out io.Writer, result *service.TurnResult) {
	for _, n := range result.Response.Notices {
		fmt.Fprintln(out, styleNotice.Render("! "+n.Message))
	}

	fmt.Fprintln(out, styleAssistant.Render("Assistant: ")+result.Response.Message)

	if result.Preview != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, result.Preview)
	}

	if inv := result.Response.Invoice; inv != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styleSuccess.Render(fmt.Sprintf("Invoice %s created.", inv.Number)))
		fmt.Fprintf(out, "  Preview: %s\n", inv.PreviewURL)
		fmt.Fprintf(out, "  PDF:     %s\n", inv.PDFURL)
	}
	fmt.Fprintln(out)
}

func printUsage(ctx context.Context, out io.Writer, app *App, sessionID string) {
	if sessionID == "" {
		fmt.Fprintln(out, styleDim.Render("No API calls yet."))
		fmt.Fprintln(out)
		return
	}
	info, err := app.Sessions.Info(ctx, sessionID)
	if err != nil {
		fmt.Fprintln(out, styleError.Render("Could not load usage: "+err.Error()))
		return
	}
	renderUsage(out, info.Usage)
}

func renderUsage(out io.Writer, u pricing.SessionUsage) {
	fmt.Fprintln(out, styleHeader.Render("Session Usage"))
	fmt.Fprintf(out, "  API calls:     %d\n", u.TotalCalls)
	fmt.Fprintf(out, "  Input tokens:  %d\n", u.TotalInputTokens)
	fmt.Fprintf(out, "  Output tokens: %d\n", u.TotalOutputTokens)
	fmt.Fprintf(out, "  Total cost:    $%.4f\n", u.TotalCostUSD)
	fmt.Fprintf(out, "  Avg cost/call: $%.4f\n", u.AvgCostPerCall())
	fmt.Fprintf(out, "  Avg latency:   %.0f ms\n", u.AvgResponseTimeMs())
	fmt.Fprintln(out)
}
