package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/Keatongull/wackywidget/internal/config"
	"github.com/Keatongull/wackywidget/internal/metrics"
	"github.com/Keatongull/wackywidget/internal/shell"
	"github.com/Keatongull/wackywidget/internal/tui"
)

// runSession drives one interpreter until EXIT or end of input, serving
// metrics alongside it when an address is configured.
func runSession(ctx context.Context, cfg *config.Config, sh *shell.Shell, rec *metrics.Recorder, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	if addr := cfg.MetricsAddr(); addr != "" {
		ln, err := metrics.Listen(addr)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return rec.ServeListener(gCtx, ln)
		})
	}

	g.Go(func() error {
		defer cancel()
		if useTUI(cfg.Mode(), in) {
			return runTUI(gCtx, cfg, sh, in, out)
		}
		return sh.Run(gCtx, in, out)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func runTUI(ctx context.Context, cfg *config.Config, sh *shell.Shell, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		tui.NewApp(sh, tui.WithJournalTail(cfg.JournalTail())),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// useTUI resolves the configured mode. auto picks the TUI only when input
// is an interactive terminal, so piped scripts always get plain output.
func useTUI(mode string, in io.Reader) bool {
	switch mode {
	case config.ModeTUI:
		return true
	case config.ModeLine:
		return false
	}
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
