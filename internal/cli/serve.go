package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"invoiceflow/internal/config"
	"invoiceflow/internal/handler"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = app.Config.RunAddress
			}
			return runServer(app, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from INVOICEFLOW_RUN_ADDRESS)")
	return cmd
}

// NewRouter builds the chi router with the full API surface. Exposed so
// tests can drive the routes without binding a listener.
func NewRouter(app *App) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/api/conversation", handler.ConversationHandler(app.Conversations))
	r.Post("/api/invoice/approve", handler.ApproveInvoiceHandler(app.Invoices))
	r.Get("/api/session/{sessionID}", handler.SessionInfoHandler(app.Sessions))
	r.Post("/api/session/{sessionID}/reset", handler.ResetSessionHandler(app.Sessions))
	r.Get("/api/health", handler.HealthHandler(config.Version, app.AgentAvailable))

	return r
}

func runServer(app *App, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      NewRouter(app),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", addr, "agent_available", app.AgentAvailable)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
