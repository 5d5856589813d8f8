package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bizapi/config"
	"github.com/shashiranjanraj/bizapi/internal/kernel"
	"github.com/shashiranjanraj/bizapi/internal/server"
	"github.com/shashiranjanraj/bizapi/pkg/cache"
	"github.com/shashiranjanraj/bizapi/pkg/database"
	"github.com/shashiranjanraj/bizapi/pkg/logger"
)

// bizapi serve: start the HTTP server.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootDB()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	store, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("read cache disabled", "error", err)
	}

	k := kernel.NewHTTPKernel(db, store)
	return server.Start(ctx, ":"+config.AppPort(), k.Handler(), config.ShutdownTimeout())
}

// bizapi route:list: print all registered routes.
func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}

			k := kernel.NewHTTPKernel(nil, nil)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range k.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
