package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/memoria/internal/llm"
	"github.com/lazypower/memoria/internal/logging"
	"github.com/lazypower/memoria/internal/server"
	"github.com/lazypower/memoria/internal/suggest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and serve the editor/viewer UI",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Logging)

	// Suggestions degrade to the fallback text when no provider is usable.
	var sessions *suggest.Sessions
	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logger.Warn().Err(err).Msg("LLM not configured, suggestions will use the fallback text")
	} else {
		sessions = suggest.NewSessions(suggest.NewGenerator(llmClient, cfg.LLM.Timeout, logger))
		logger.Info().Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("llm configured")
	}

	srv := server.New(cfg, sessions, logger, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Suggestions may take up to the LLM timeout.
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("public_url", cfg.Server.PublicURL).Msg("memoria serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return err
	}
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
