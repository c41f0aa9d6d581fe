package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"memorg/internal/app"
	"memorg/internal/config"
	"memorg/internal/domain"
	appErrors "memorg/internal/errors"
	"memorg/internal/infra/exif"
	"memorg/internal/infra/fs"
	"memorg/internal/logging"
	"memorg/internal/manifest"
	"memorg/internal/presentation"
	"memorg/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:           "memorg",
		Short:         "Organize an exported memories folder into date-based directories",
		Long:          "memorg reads the HTML manifest of a local media export, resolves a capture date for every referenced file and copies it into <output>/<YYYY>/<YYYY-MM>/.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.ManifestPath, "manifest", "m", "", "Path to the manifest HTML file")
	cmd.Flags().StringVarP(&cfg.OutputRoot, "output", "o", "", "Output root directory")
	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Plan placements without copying")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&cfg.Plain, "plain", false, "Line-oriented output instead of the TUI")
	cmd.Flags().BoolVar(&cfg.UseExif, "use-exif", false, "Consult EXIF data before falling back to file timestamps")
	cmd.Flags().StringVar(&cfg.Tags.Primary, "tag-original", "", "Name tag for primary files (default original)")
	cmd.Flags().StringVar(&cfg.Tags.Clip, "tag-clip", "", "Name tag for paired clips (default clip)")

	return cmd
}

func run(cfg config.Config) error {
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
	}

	logger := logging.New(os.Stderr, cfg.Verbose)
	filesystem := fs.OSFS{}

	runner := &app.Runner{
		FS:      filesystem,
		Entries: manifest.Scanner{},
		Resolver: &app.Resolver{
			FS:      filesystem,
			Exif:    exif.Reader{},
			UseExif: cfg.UseExif,
		},
		Planner: &app.Planner{FS: filesystem, Tags: cfg.Tags},
		Logger:  logger,
		DryRun:  cfg.DryRun,
	}

	if cfg.Plain {
		return runPlain(runner, cfg)
	}
	return runTUI(runner, cfg)
}

func runPlain(runner *app.Runner, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	runner.OnEvent = printer.PrintEvent

	summary, err := runner.Run(ctx, cfg.ManifestPath, cfg.OutputRoot)
	if err != nil {
		return err
	}
	printer.PrintSummary(summary, cfg.OutputRoot)
	return nil
}

func runTUI(runner *app.Runner, cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan tea.Msg, 16)
	runner.OnEvent = func(e domain.Event) {
		events <- tui.EventMsg{Event: e}
	}

	go func() {
		summary, err := runner.Run(ctx, cfg.ManifestPath, cfg.OutputRoot)
		events <- tui.DoneMsg{Summary: summary, Err: err}
		close(events)
	}()

	model := tui.NewModel(tui.Config{
		ManifestPath: cfg.ManifestPath,
		OutputRoot:   cfg.OutputRoot,
		DryRun:       cfg.DryRun,
		Verbose:      cfg.Verbose,
		Events:       events,
		Cancel:       cancel,
	})

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return m.Err
	}
	return nil
}
