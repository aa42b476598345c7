// Package main is the entry point for the spellscan checker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/spellscan/internal/app"
	"github.com/dshills/spellscan/internal/config"
	"github.com/dshills/spellscan/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	exitClean      = 0
	exitMisspelled = 1
	exitError      = 2
)

const watchPollPeriod = 250 * time.Millisecond

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	dictionary string
	personal   string
	luaChecker string
	logLevel   string
	watch      bool
	timeout    time.Duration
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("spellscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.dictionary, "dict", "", "Word list or hunspell .dic file")
	fs.StringVar(&opts.personal, "personal", "", "Personal dictionary (YAML)")
	fs.StringVar(&opts.luaChecker, "lua", "", "Lua script defining check_word")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.watch, "watch", false, "Keep running and recheck when the dictionary changes")
	fs.DurationVar(&opts.timeout, "timeout", time.Minute, "Give up if checking takes longer")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "spellscan - incremental spell checker\n\n")
		fmt.Fprintf(stderr, "Usage: spellscan [options] files...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  spellscan -dict /usr/share/hunspell/en_US.dic README.md\n")
		fmt.Fprintf(stderr, "  spellscan -c spellscan.toml -watch docs/*.txt\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if showVersion {
		fmt.Fprintf(stderr, "spellscan %s (%s)\n", version, commit)
		return opts, flag.ErrHelp
	}
	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return opts, errors.New("no files given")
	}
	return opts, nil
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.dictionary != "" {
		cfg.Spell.Dictionary = opts.dictionary
	}
	if opts.personal != "" {
		cfg.Spell.PersonalDictionary = opts.personal
	}
	if opts.luaChecker != "" {
		cfg.Spell.LuaChecker = opts.luaChecker
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.watch {
		cfg.Spell.WatchDictionary = true
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitClean
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Output = stderr
	log := logging.New(logCfg)

	checker, err := app.BuildChecker(cfg.Spell, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	session := app.NewSession(app.Options{Spell: cfg.Spell, Checker: checker, Logger: log})
	defer session.Shutdown()

	for _, path := range opts.files {
		if _, err := session.Open(path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	err = session.Wait(waitCtx)
	cancel()
	if err != nil {
		fmt.Fprintf(stderr, "Error: checking did not finish: %v\n", err)
		return exitError
	}

	report, count, err := buildReport(session)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	io.WriteString(stdout, report)

	if cfg.Spell.WatchDictionary {
		if err := session.WatchDictionary(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		log.Info("watching dictionary, press Ctrl-C to stop")
		watch(ctx, session, report, stdout, log)
		return exitClean
	}

	if count > 0 {
		return exitMisspelled
	}
	return exitClean
}

// buildReport formats every misspelling as path:line:col: word.
func buildReport(session *app.Session) (string, int, error) {
	var sb strings.Builder
	count := 0
	for _, doc := range session.Documents() {
		found, err := session.Misspellings(doc)
		if err != nil {
			return "", 0, err
		}
		for _, m := range found {
			fmt.Fprintf(&sb, "%s:%d:%d: %s\n", doc.Path, m.Line, m.Column, m.Word)
		}
		count += len(found)
	}
	return sb.String(), count, nil
}

// watch prints a fresh report each time the results change, until ctx is
// done.
func watch(ctx context.Context, session *app.Session, last string, stdout io.Writer, log *logging.Logger) {
	ticker := time.NewTicker(watchPollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := session.Wait(ctx); err != nil {
			return
		}
		report, count, err := buildReport(session)
		if err != nil {
			log.Warn("building report: %v", err)
			continue
		}
		if report == last {
			continue
		}
		last = report
		fmt.Fprintf(stdout, "-- %d misspelled\n%s", count, report)
	}
}
