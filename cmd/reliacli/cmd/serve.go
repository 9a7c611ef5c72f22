package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Temi-Tory/IPM-Working-sub011/reliability"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve precomputed reachability belief over HTTP",
	Long: `serve loads a graph file once at startup, runs exact belief
propagation, and exposes the result read-only on GET /belief. There are
no mutation endpoints: the graph and its belief are fixed for the life
of the process.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	result, err := reliability.Propagate(context.Background(), g, reliability.WithLogger(Logger()))
	if err != nil {
		return fmt.Errorf("initial propagation: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/belief", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})

	Logger().Info().Str("addr", serveAddr).Msg("serving belief map")

	return http.ListenAndServe(serveAddr, r)
}
