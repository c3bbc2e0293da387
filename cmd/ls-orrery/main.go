// Command ls-orrery generates a procedural galaxy and solar system and
// previews it in the terminal or exports it as point clouds.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags
var (
	configPath   string
	envFile      string
	seed         uint64
	workers      int
	logLevel     string
	quality      float64
	focus        string
	summaryMode  bool
	snapshotPath string
	plyDir       string
	printConfig  bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&envFile, "env-file", "", "Load environment from this file instead of .env")
	flag.Uint64Var(&seed, "seed", 0, "Generation seed (0 picks one at random)")
	flag.IntVar(&workers, "workers", 0, "Galaxy generation workers (0 uses every CPU)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Float64Var(&quality, "quality", 1, "Scale every body's particle budget")
	flag.StringVar(&focus, "focus", "", "Body to focus on start (e.g. Earth)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON summary to file (use - for stdout)")
	flag.StringVar(&plyDir, "ply-dir", "", "Write one PLY file per point cloud into this directory")
	flag.BoolVar(&printConfig, "print-config", false, "Print the effective config as YAML and exit")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if printConfig {
		if err := writeConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sceneCfg, err := cfg.Scene(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	headless := summaryMode || snapshotPath != "" || plyDir != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		if err := runHeadless(ctx, cfg, sceneCfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The alternate screen owns the terminal while the TUI runs.
	logger.SetOutput(io.Discard)

	stateMgr := state.NewManager(state.DefaultConfig())
	if cfg.Focus != "" {
		if err := stateMgr.SetFocus(cfg.Focus); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(ui.New(stateMgr), tea.WithAltScreen())

	go func() {
		cat, err := cfg.Catalog()
		if err != nil {
			stateMgr.SetError(err)
			return
		}
		sc, err := scene.Build(ctx, sceneCfg, cat)
		if err != nil {
			stateMgr.SetError(err)
			return
		}
		stateMgr.SetScene(sc)
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the environment, and flags,
// in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := cfg.ApplyEnv(envFiles...); err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "workers":
			cfg.Workers = workers
		case "log-level":
			cfg.LogLevel = logLevel
		case "quality":
			cfg.Quality = quality
		case "focus":
			cfg.Focus = focus
		}
	})

	if cfg.Seed == 0 {
		cfg.Seed = entropy.RandomSeed()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runHeadless builds the scene once and writes every requested output. With
// no output flag it prints the summary table.
func runHeadless(ctx context.Context, cfg *config.Config, sceneCfg scene.Config, logger *logging.Logger) error {
	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	sc, err := scene.Build(ctx, sceneCfg, cat)
	if err != nil {
		return err
	}

	if snapshotPath != "" {
		exp := export.ExportScene(sc)
		if snapshotPath == "-" {
			if err := exp.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := exp.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if plyDir != "" {
		paths, err := export.WritePLYDir(plyDir, sc)
		if err != nil {
			return err
		}
		logger.Info("Wrote %d PLY files to %s", len(paths), plyDir)
	}

	if summaryMode || (snapshotPath == "" && plyDir == "") {
		export.WriteSummaryTable(summaryWriter(snapshotPath, os.Stdout, os.Stderr), sc)
	}
	return nil
}

// summaryWriter picks where the summary table goes. When the JSON snapshot
// owns stdout the table moves to stderr so the JSON stays parseable.
func summaryWriter(snapshotPath string, stdout, stderr io.Writer) io.Writer {
	if snapshotPath == "-" {
		return stderr
	}
	return stdout
}

// writeConfig prints the effective config, seed included, as YAML.
func writeConfig(w io.Writer, cfg *config.Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
