package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/auth"
	"github.com/desertthunder/spotter/internal/repositories"
	"github.com/desertthunder/spotter/internal/services"
	"github.com/desertthunder/spotter/internal/shared"
	"github.com/desertthunder/spotter/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	store      auth.Store
	gateway    *auth.Gateway
	spotter    *services.SpotterService
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      auth.Store
	Transport  http.RoundTripper
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// Without a Store the session lives in an in-memory database and is lost on exit.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Store == nil {
		db, err := shared.OpenStorage(shared.StorageConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			panic(fmt.Sprintf("failed to open in-memory storage: %v", err))
		}
		opts.Store = repositories.NewLocalStorage(db)
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	r.gateway = auth.NewGateway(opts.Store, auth.GatewayOpts{
		BaseURL:           opts.Config.API.BaseURL,
		Navigator:         auth.NavigatorFunc(r.redirectToLogin),
		Logger:            shared.WithLogger(opts.Logger, "component", "auth"),
		Transport:         opts.Transport,
		Timeout:           time.Duration(opts.Config.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: opts.Config.API.RequestsPerSecond,
	})
	r.spotter = r.gateway.Spotter()
	return r
}

// SetLogger replaces the logger used by the runner's own output.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, workoutCommand, recipeCommand, classCommand, challengeCommand,
		profileCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// redirectToLogin is the CLI's login page: it tells the user how to sign in.
func (r *Runner) redirectToLogin() {
	hint := r.config.Auth.LoginHint
	if hint == "" {
		hint = "spotter auth login"
	}
	r.writePlain("Please sign in first: %s\n", hint)
}

// protected gates an action behind a verified session when auth.require is set.
func (r *Runner) protected(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if !r.config.Auth.Require {
			return action(ctx, cmd)
		}
		if ok, err := r.gateway.RequireAuth(ctx); !ok {
			return err
		}
		return action(ctx, cmd)
	}
}

// finderOpts wires a progress channel that is logged at debug level. stop must be called once the work is done.
func (r *Runner) finderOpts() (opts tasks.FinderOpts, stop func()) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	opts = tasks.FinderOpts{Logger: r.logger, Progress: progressCh}
	return opts, func() {
		close(progressCh)
		wg.Wait()
	}
}

// emit writes a result as JSON (--json), an HTML fragment (--html) or terminal text.
func (r *Runner) emit(cmd *cli.Command, payload any, text func() string, html func() (string, error)) error {
	switch {
	case cmd.Bool("json"):
		return r.writeJSON(payload, true)
	case cmd.Bool("html"):
		fragment, err := html()
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", fragment)
	default:
		return r.writePlain("%s", text())
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
