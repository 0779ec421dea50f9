package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vencode/internal/logging"
	"vencode/internal/tui"
)

var errNoTerminal = errors.New("interactive mode requires a terminal; use `vencode run [files...]` to encode headlessly")

func runInteractive(cmd *cobra.Command, ctx *commandContext, files []string) error {
	if !isTerminal(cmd.InOrStdin()) || !isTerminal(cmd.OutOrStdout()) {
		return errNoTerminal
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(false)
	if err != nil {
		return err
	}
	lock, err := acquireSessionLock(cfg)
	if err != nil {
		return err
	}
	defer lock.Release()

	s := newSession(cfg, logger, files, cfg.DefaultParameters())
	model := tui.New(s, tui.WithPollInterval(cfg.PollInterval()))

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(runCtx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, runErr := program.Run()

	if err := s.Close(context.Background()); err != nil {
		logging.WarnWithContext(logger, "session close incomplete", "session_close",
			logging.Error(err),
			logging.String(logging.FieldImpact, "an ffmpeg process may still be running"),
		)
		fmt.Fprintln(os.Stderr, err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && runCtx.Err() == nil {
		return fmt.Errorf("terminal ui: %w", runErr)
	}
	return nil
}
