// Package cli wires the cobra command tree: "serve" runs the HTTP API
// and "chat" runs an interactive terminal session against the same
// services.
package cli

import (
	"github.com/spf13/cobra"

	"invoiceflow/internal/config"
	"invoiceflow/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Config        *config.Config
	Conversations service.ConversationService
	Invoices      service.InvoiceService
	Sessions      service.SessionService

	// AgentAvailable reports whether a model-backed extractor is wired.
	// Without one the assistant still runs but extracts nothing.
	AgentAvailable bool
}

// NewRootCmd creates the top-level "invoiceflow" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:     "invoiceflow",
		Short:   "Conversational invoice creation assistant",
		Version: config.Version,
	}

	root.AddCommand(
		newServeCmd(app),
		newChatCmd(app),
	)

	return root
}
