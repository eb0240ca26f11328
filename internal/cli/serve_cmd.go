package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
	"github.com/alexanderramin/throughput/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, watchDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API over HTTP",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := server.Options{
				Metrics: app.Metrics,
				Logger:  app.logger(),
			}
			gin.SetMode(gin.ReleaseMode)
			if app.Config != nil {
				if app.Config.LogLevel == "debug" {
					gin.SetMode(gin.DebugMode)
				}
				opts.MaxUploadBytes = app.Config.MaxUploadBytes
				opts.CORSOrigins = app.Config.CORSOrigins
				if addr == "" {
					addr = app.Config.HTTPAddr
				}
			}
			if addr == "" {
				addr = ":8080"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watchDir != "" {
				if fi, err := os.Stat(watchDir); err != nil || !fi.IsDir() {
					return withCode(ExitUsage, fmt.Errorf("not a directory: %s", watchDir))
				}
			}

			out := cmd.OutOrStdout()
			srv := server.New(app.Imports, app.Projects, opts)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(ctx, addr)
			})
			if watchDir != "" {
				g.Go(func() error {
					return app.newWatcher(watchDir, out).Run(ctx)
				})
				fmt.Fprintln(out, formatter.Dim("Watching "+watchDir))
			}
			fmt.Fprintln(out, formatter.Success("Listening on "+addr))
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from THROUGHPUT_HTTP_ADDR)")
	cmd.Flags().StringVar(&watchDir, "watch", "", "Also import CSV files dropped into this directory")

	return cmd
}
