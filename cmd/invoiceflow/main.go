package main

import (
	"fmt"
	"os"

	"invoiceflow/internal/agent"
	"invoiceflow/internal/cli"
	"invoiceflow/internal/config"
	"invoiceflow/internal/extract"
	"invoiceflow/internal/llm"
	"invoiceflow/internal/pricing"
	"invoiceflow/internal/repository"
	"invoiceflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Without an API key the assistant still runs, backed by an
	// extractor that never finds fields.
	var extractor extract.Extractor = extract.NewStatic()
	agentAvailable := false
	if cfg.LLM.APIKey != "" {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewClient(cfg.LLM, observer)
		extractor = extract.NewModelExtractor(client, pricing.DefaultTable())
		agentAvailable = true
	}

	sessions := repository.NewMemorySessionStore()
	invoices := repository.NewMemoryInvoiceStore(cfg.BaseURL)

	registry := service.NewAgentRegistry(func(userID string) *agent.Agent {
		return agent.New(extractor, invoices, userID, nil)
	})

	app := &cli.App{
		Config:         cfg,
		Conversations:  service.NewConversationService(sessions, registry),
		Invoices:       service.NewInvoiceService(sessions, invoices, registry),
		Sessions:       service.NewSessionService(sessions, registry),
		AgentAvailable: agentAvailable,
	}

	return cli.NewRootCmd(app).Execute()
}
