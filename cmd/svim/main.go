// Package main is the entry point for the svim editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JackWReid/svim/internal/buffer"
	"github.com/JackWReid/svim/internal/config"
	"github.com/JackWReid/svim/internal/editor"
	"github.com/JackWReid/svim/internal/terminal"
	"github.com/JackWReid/svim/internal/vfs"
)

// Version is set via ldflags during build.
var Version = "dev"

var errUsage = errors.New("usage: svim [options] <file>")

type options struct {
	configPath  string
	logLevel    string
	showVersion bool
	path        string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "svim: %v\n", err)
		return 2
	}
	if opts.showVersion {
		fmt.Printf("svim %s\n", Version)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svim: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "svim: %v\n", err)
			return 2
		}
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "svim: %v\n", err)
		return 1
	}
	defer closeLog()

	if !terminal.IsTerminal() {
		fmt.Fprintln(os.Stderr, "svim: stdin and stdout must be a terminal")
		return 1
	}
	term, err := terminal.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "svim: failed to set up terminal: %v\n", err)
		return 1
	}
	defer term.Restore()
	logger.Debug("terminal ready", "width", term.Width(), "height", term.Height())

	var alloc buffer.Allocator
	if cfg.HeapBytes > 0 {
		alloc = buffer.NewHeap(cfg.HeapBytes)
	}

	session, err := editor.NewSession(editor.Options{
		Path:            opts.path,
		Transport:       term,
		FS:              vfs.NewOSFS(),
		Allocator:       alloc,
		LoadCapacity:    cfg.LoadCapacity,
		CommandCapacity: cfg.CommandCapacity,
		Logger:          logger,
	})
	if err != nil {
		term.Restore()
		logger.Error("open failed", "err", err)
		fmt.Fprintf(os.Stderr, "svim: %v\n", err)
		return 1
	}

	if err := session.Run(); err != nil {
		term.Restore()
		logger.Error("session aborted", "err", err)
		fmt.Fprintf(os.Stderr, "svim: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags reads the command line. Exactly one file path is required.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("svim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%v\n\nOptions:\n", errUsage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showVersion {
		return opts, nil
	}
	if fs.NArg() != 1 {
		return opts, errUsage
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

// openLog returns a logger writing to the configured log file. Logging never
// goes to the terminal, which belongs to the editor.
func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.LogPath()
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { f.Close() }, nil
}
