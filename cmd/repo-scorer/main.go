package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reposcorer/internal/analyzer"
	"reposcorer/internal/config"
	"reposcorer/internal/github"
	"reposcorer/internal/llm"
	"reposcorer/internal/report"
	"reposcorer/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:   "repo-scorer",
		Short: "GitHub repository quality reports, scored by an AI coding mentor",
	}

	root.AddCommand(serveCmd(), analyzeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newService builds the one analysis service shared by both commands. The
// LLM client is constructed exactly once here; a missing API key already
// failed config.Load, so construction cannot be half-configured.
func newService(cfg *config.Config) *analyzer.Service {
	fetcher := github.NewClient(cfg.GitHubToken)
	evaluator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	return analyzer.NewService(fetcher, evaluator)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the single-page analysis report UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			handler := server.NewAnalysisHandler(newService(cfg))
			router := server.NewRouter(handler)

			// No WriteTimeout: the LLM call is allowed to block until the
			// provider answers, and a write deadline would cut it off.
			srv := &http.Server{
				Addr:        cfg.ServerAddress(),
				Handler:     router,
				ReadTimeout: 30 * time.Second,
			}

			go func() {
				log.Printf("Server starting on %s", cfg.ServerAddress())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			log.Println("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			log.Println("Server exited")
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [repository URL]",
		Short: "Analyze one repository and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			svc := newService(cfg)

			fmt.Println("Fetching data and analyzing repository...")
			analysis, err := svc.Analyze(context.Background(), args[0])
			if err != nil {
				var formatErr *llm.ResponseFormatError
				if errors.As(err, &formatErr) {
					fmt.Fprintf(os.Stderr, "Raw model output:\n%s\n", formatErr.Raw)
				}
				return err
			}

			fmt.Println()
			fmt.Print(report.Render(*analysis))
			return nil
		},
	}
}
