package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whaeuser/splitflap/internal/audio"
	"github.com/whaeuser/splitflap/internal/flap"
	"github.com/whaeuser/splitflap/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var serverURL string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/splitflap/config.yml)")
	flag.StringVar(&serverURL, "server", "", "override websocket URL of the splitflap service")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Splitflap Viewer\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	clicker := audio.NewClicker()
	if err := clicker.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v (running silent)\n", err)
	}
	defer clicker.Cleanup()
	clicker.SetMuted(cfg.Muted)

	m := tui.NewModel(clicker)
	p := tea.NewProgram(m, tea.WithAltScreen())

	fwd := tui.NewForwarder(p, clicker)
	defer fwd.Close()

	opts := []flap.Option{flap.WithListener(fwd)}
	if cfg.ScenesPath != "" {
		scenes, err := flap.LoadScenes(cfg.ScenesPath)
		if err != nil {
			return fmt.Errorf("loading scenes from %s: %w", cfg.ScenesPath, err)
		}
		opts = append(opts, flap.WithScenes(scenes))
	}

	display := flap.New(opts...)
	defer display.Close()
	m.AttachDisplay(display)

	client := tui.Dial(cfg.ServerURL, p)
	defer client.Close()
	m.AttachClient(client)

	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
