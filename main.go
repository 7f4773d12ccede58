// hardware-report is a one-shot hardware telemetry snapshot tool.
//
// It collects CPU, memory, GPU, disk, and network details from the local
// host — trying a native library first and falling back to OS-specific
// tools per sub-topic — and writes a single self-contained HTML report.
//
// Usage:
//
//	hardware-report [flags]
//
// Flags:
//
//	-output string  Output basename without extension (default "hardware_report")
//	-no-open        Don't open the report in a browser
//	-config string  Path to configuration file (default: ~/.config/hardware-report/config.toml)
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/hardware-report/pkg/collect"
	"gitlab.com/tinyland/lab/hardware-report/pkg/config"
	"gitlab.com/tinyland/lab/hardware-report/pkg/probe"
	"gitlab.com/tinyland/lab/hardware-report/pkg/render"
	"gitlab.com/tinyland/lab/hardware-report/pkg/report"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var (
	styleStep = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDone = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		output      = flag.String("output", "", "Output basename without extension")
		noOpen      = flag.Bool("no-open", false, "Don't open the report in a browser")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hardware-report %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		styleStep = lipgloss.NewStyle()
		styleWarn = lipgloss.NewStyle()
		styleDone = lipgloss.NewStyle()
	}

	cfg := loadConfig(*configPath)
	setupLogging(cfg, *verbose)
	if *output != "" {
		cfg.General.OutputName = *output
	}
	if *noOpen {
		cfg.General.OpenViewer = false
	}

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("report generation failed", "error", err)
		os.Exit(1)
	}
}

// run executes the full pipeline: resolve capabilities, collect every
// domain, assemble, render, write, open. Probe failures never reach here;
// only the final file write can fail the run.
func run(ctx context.Context, cfg *config.Config) error {
	fmt.Println("Collecting hardware information...")

	caps := probe.Resolve(collect.Capabilities())
	missing := collect.MissingDeps(caps)
	for _, dep := range missing {
		fmt.Println(styleWarn.Render(fmt.Sprintf("  ⚠ %s: %s", dep.Name, dep.Guidance)))
	}

	env := collect.NewEnv(caps, cfg)
	snapshots := collect.Domains(ctx, env, func(step int, domain string) {
		fmt.Println(styleStep.Render(fmt.Sprintf("  [%d/%d] %s...", step, collect.DomainCount, domain)))
	})

	model := report.Assemble(collect.HostIdentity(ctx), snapshots, missing)

	doc, err := render.Render(model)
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	path := filepath.Join(home, cfg.General.OutputName+".html")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Println(styleDone.Render("✓ Report saved to: " + path))

	if cfg.General.OpenViewer {
		if err := openViewer(path); err != nil {
			slog.Debug("could not open viewer", "error", err)
			fmt.Println("  Open the file manually in your browser.")
		}
	}
	return nil
}

// loadConfig loads the given file or falls back to the standard search
// paths; a broken config file logs a warning and uses defaults.
func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config load failed (%v), using defaults\n", err)
		return config.Default()
	}
	return cfg
}

// setupLogging installs a text slog handler; -verbose wins over the
// configured level.
func setupLogging(cfg *config.Config, verbose bool) {
	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openViewer launches the platform's default handler for the report file.
func openViewer(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
