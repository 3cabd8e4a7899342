package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"

	"github.com/jask/regform/internal/config"
	"github.com/jask/regform/internal/register"
	"github.com/jask/regform/internal/tracing"
	"github.com/jask/regform/internal/tui"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("regform", pflag.ContinueOnError)
	initConfig := flags.Bool("init-config", false, "write the effective configuration to the config file and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if *initConfig {
		return writeConfig(cfg, stdout)
	}

	closeLog, err := setupLog(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer closeLog()

	shutdown, err := tracing.Init(ctx, cfg.Trace)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	client := register.New(cfg.API.Endpoint, register.WithTimeout(cfg.API.Timeout))
	log.Printf("regform starting: endpoint=%s", client.Endpoint())

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(tui.New(ctx, client, tui.Options{AlertDuration: cfg.UI.AlertDuration}), opts...)
	_, err = p.Run()
	return err
}

// writeConfig saves cfg to the config path. An existing file is left alone.
func writeConfig(cfg config.Config, stdout io.Writer) error {
	path := config.Path()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}

// setupLog points the standard logger at path. Logging to the terminal would
// tear the form, so an empty path discards output instead.
func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "regform")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
