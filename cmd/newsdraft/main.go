package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"

	"github.com/aipostbot/newsdraft/pkg/config"
	"github.com/aipostbot/newsdraft/pkg/domain"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`

	Generate GenerateCmd `command:"generate" description:"fetch news, draft posts and send them for review"`
	Publish  struct{}    `command:"publish" description:"apply review decisions and publish approved drafts"`
	Schedule struct{}    `command:"schedule" description:"run generate and publish periodically with a status server"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// GenerateCmd holds options of the generate command
type GenerateCmd struct {
	Sources     []string `long:"sources" value-name:"NAME" description:"restrict to named sources, can be repeated"`
	ListSources bool     `long:"list-sources" description:"print configured sources and exit"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)
	lgr.Printf("[DEBUG] starting newsdraft version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, parser.Active.Name, os.Stdout)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}
}

// run loads configuration and executes the command
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLog(opts.Debug, secrets(cfg)...)

	if command == "generate" && opts.Generate.ListSources {
		listSources(out, cfg)
		return nil
	}

	sources := cfg.Sources
	if command == "generate" && len(opts.Generate.Sources) > 0 {
		if sources, err = selectSources(cfg, opts.Generate.Sources); err != nil {
			return err
		}
	}

	unlock, err := lockState(cfg.State.Path)
	if err != nil {
		return err
	}
	defer unlock()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch command {
	case "generate":
		return a.generate(ctx, sources)
	case "publish":
		return a.publish(ctx)
	case "schedule":
		return a.schedule(ctx, revision, opts.Debug)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// listSources prints configured sources with category and weight
func listSources(out io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(out, "Available sources:")
	for _, s := range cfg.Sources {
		_, _ = fmt.Fprintf(out, "  %q  [%s, weight=%g]\n", s.Name, s.Category, s.Weight)
	}
}

// selectSources resolves requested source names, unknown names are ignored with a warning
func selectSources(cfg *config.Config, names []string) ([]domain.Source, error) {
	matched, unknown := cfg.FilterSources(names)
	if len(unknown) > 0 {
		lgr.Printf("[WARN] unknown source names (ignored): %v", unknown)
	}
	if len(matched) == 0 {
		return nil, errors.New("no valid sources matched, use --list-sources to see available names")
	}
	lgr.Printf("[INFO] filtering to %d sources", len(matched))
	return matched, nil
}

// lockState takes an exclusive lock next to the state file for the lifetime of a command
func lockState(statePath string) (unlock func(), err error) {
	if err := os.MkdirAll(filepath.Dir(statePath), 0o750); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	lock := flock.New(statePath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire state lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another newsdraft job holds %s", lock.Path())
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			lgr.Printf("[WARN] failed to release state lock: %v", err)
		}
	}, nil
}

// secrets returns configured credentials to mask in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Telegram.Token, cfg.Twitter.ConsumerKey, cfg.Twitter.ConsumerSecret,
		cfg.Twitter.AccessToken, cfg.Twitter.AccessTokenSecret} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
