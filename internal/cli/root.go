package cli

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/config"
	"github.com/alexanderramin/throughput/internal/service"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Imports  service.ImportService
	Projects service.ProjectService
	Config   *config.Config
	Logger   *zap.Logger
	// Metrics is mounted on /metrics by serve when non-nil.
	Metrics http.Handler

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title, description string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title, description string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}
	return confirmForm(title, description)
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "throughput" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "throughput",
		Short:         "Delivery-metrics CSV importer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetGlobalNormalizationFunc(normalizeFlagName)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withCode(ExitUsage, err)
	})

	root.AddCommand(
		newImportCmd(app),
		newProjectCmd(app),
		newRunsCmd(app),
		newServeCmd(app),
		newBrowseCmd(app),
		newTemplateCmd(),
		newWatchCmd(app),
	)

	return root
}

// normalizeFlagName accepts --dry_run for --dry-run.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}
