package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/throughput/internal/cli/formatter"
	"github.com/alexanderramin/throughput/internal/watch"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Import every CSV file dropped into DIR",
		Long: "Imports CSV files already in DIR, then keeps watching it. Imported files\n" +
			"move to DIR/processed, rejected ones to DIR/failed next to a .error file.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
				return withCode(ExitUsage, fmt.Errorf("not a directory: %s", dir))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim("Watching "+dir+" (Ctrl+C to stop)"))
			return app.newWatcher(dir, out).Run(ctx)
		},
	}
}

// newWatcher builds a watcher that prints each result to out.
func (a *App) newWatcher(dir string, out io.Writer) *watch.Watcher {
	opts := watch.Options{
		Logger:   a.logger(),
		OnResult: printWatchResult(out),
	}
	if a.Config != nil {
		opts.Debounce = a.Config.WatchDebounce
	}
	return watch.New(dir, a.Imports, opts)
}

func printWatchResult(out io.Writer) func(watch.Result) {
	var mu sync.Mutex
	return func(r watch.Result) {
		mu.Lock()
		defer mu.Unlock()
		name := filepath.Base(r.Path)
		if r.Err != nil {
			fmt.Fprintln(out, formatter.Error(name+": "+r.Err.Error()))
			return
		}
		fmt.Fprintln(out, formatter.Bold(name))
		fmt.Fprintln(out, formatter.FormatImportResult(r.Import))
	}
}
