package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/shelf/internal/config"
	"github.com/idilsaglam/shelf/internal/listview"
	"github.com/idilsaglam/shelf/internal/liststore"
	"github.com/idilsaglam/shelf/internal/log"
	"github.com/idilsaglam/shelf/internal/persist"
	"github.com/idilsaglam/shelf/internal/store"
	"github.com/idilsaglam/shelf/internal/ui"
)

// Exit codes: 0 ok, 1 runtime error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// exitError carries an exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, a...)}
}

// App is shared by every subcommand.
type App struct {
	Config config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{Config: config.Default()}

	cmd := &cobra.Command{
		Use:           "shelf",
		Short:         "A shopping list and an image gallery for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive shopping list
  shelf

  # Scriptable commands
  shelf add "Buy milk"
  shelf ls
  shelf done 1712345678901
  shelf rm 1712345678901

  # Browse galleries
  shelf gallery holiday.json pets.json
`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErr("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ui.SetTheme(app.Config.Theme)
		ui.SetColor(app.Config.Color)
		log.Setup(log.Options{
			Level:  app.Config.LogLevel,
			Format: app.Config.LogFormat,
			Out:    cmd.ErrOrStderr(),
		})
		log.Debug().
			Str("command", cmd.CommandPath()).
			Str("store", app.Config.Store).
			Str("theme", app.Config.Theme).
			Msg("config resolved")
		return nil
	}

	f := cmd.PersistentFlags()
	f.StringVar(&app.Config.Store, "store", app.Config.Store, "Store DSN: file:<path>, sqlite:<path>, redis://host:port/db or memory: (env "+config.EnvStore+")")
	f.StringVar(&app.Config.LogLevel, "log-level", app.Config.LogLevel, "Log level: debug|info|warn|error (env "+config.EnvLogLevel+")")
	f.StringVar(&app.Config.LogFormat, "log-format", app.Config.LogFormat, "Log format: console|json (env "+config.EnvLogFormat+")")
	f.StringVar(&app.Config.LogFile, "log-file", app.Config.LogFile, "Log file used while a TUI is running (env "+config.EnvLogFile+")")
	f.StringVar(&app.Config.Theme, "theme", app.Config.Theme, "Theme: classic|neon|mono (env "+config.EnvTheme+")")
	f.StringVar(&app.Config.Color, "color", app.Config.Color, "Color: auto|always|never (env "+config.EnvColor+")")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newGalleryCmd(app))
	cmd.AddCommand(newAuthCmd(app))

	return cmd
}

// Execute runs the root command and maps the outcome to an exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(args, os.Stdin, stdout, stderr)
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: ExitUsage, err: err}
	})
	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

// session is an open shopping list: store, view and persistence wired in
// the order render-then-persist.
type session struct {
	kv      store.KV
	list    *liststore.Store
	view    *listview.View
	persist *persist.Adapter
}

func (s *session) Close() error { return s.kv.Close() }

func openSession(ctx context.Context, app *App, logger zerolog.Logger) (*session, error) {
	password, err := config.Password()
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(ctx, app.Config.Store, store.Options{Password: password, Logger: logger.With().Str("component", "store").Logger()})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	list := liststore.New(liststore.WithLogger(logger.With().Str("component", "liststore").Logger()))
	view := listview.New(list, logger.With().Str("component", "listview").Logger())
	adapter := persist.New(kv, logger.With().Str("component", "persist").Logger())
	adapter.Attach(ctx, list)
	if _, err := adapter.Restore(ctx, list); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &session{kv: kv, list: list, view: view, persist: adapter}, nil
}

// tuiLogger redirects logging to the configured file so the alternate
// screen is not scribbled over. The returned func releases the file.
func tuiLogger(app *App) (closeLog func()) {
	if app.Config.LogFile == "" {
		log.Setup(log.Options{Level: "off"})
		return func() {}
	}
	f, err := log.OpenFile(app.Config.LogFile)
	if err != nil {
		log.Warn().Err(err).Msg("logging disabled")
		log.Setup(log.Options{Level: "off"})
		return func() {}
	}
	log.Setup(log.Options{Level: app.Config.LogLevel, Format: "json", Out: f})
	log.Info().Str("file", app.Config.LogFile).Msg("tui session started")
	return func() { _ = f.Close() }
}
