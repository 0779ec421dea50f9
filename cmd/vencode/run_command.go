package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"vencode/internal/batch"
	"vencode/internal/services"
	"vencode/internal/settings"
)

type runFlags struct {
	encoder      string
	container    string
	quantizer    int
	frameRate    string
	audioBitrate string
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Encode files without the terminal UI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			params := cfg.DefaultParameters()
			applyRunFlags(cmd, flags, &params)
			if err := params.Validate(settings.DefaultOptions()); err != nil {
				return services.Wrap(services.ErrValidation, "run", "flags", "invalid encoding parameters", err)
			}

			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}
			lock, err := acquireSessionLock(cfg)
			if err != nil {
				return err
			}
			defer lock.Release()

			out := cmd.OutOrStdout()
			s := newSession(cfg, logger, args, params)
			summary, runErr := batch.Run(cmd.Context(), s, out, batch.Options{
				Interval:     cfg.PollInterval(),
				CloseTimeout: cfg.ShutdownTimeout(),
			})
			printRunSummary(out, newStatusPrinter(out), summary, runErr)
			return runErr
		},
	}

	cmd.Flags().StringVar(&flags.encoder, "encoder", "", "Video encoder (default from config)")
	cmd.Flags().StringVar(&flags.container, "container", "", "Output container extension (default from config)")
	cmd.Flags().IntVar(&flags.quantizer, "quantizer", 0, "Quality/quantizer value 0-53 (default from config)")
	cmd.Flags().StringVar(&flags.frameRate, "fps", "", "Output frame rate or Same (default from config)")
	cmd.Flags().StringVar(&flags.audioBitrate, "audio-bitrate", "", "Audio bitrate (default from config)")
	return cmd
}

func applyRunFlags(cmd *cobra.Command, flags runFlags, params *settings.EncodingParameters) {
	set := cmd.Flags().Changed
	if set("encoder") {
		params.Encoder = flags.encoder
	}
	if set("container") {
		params.Container = flags.container
	}
	if set("quantizer") {
		params.Quantizer = flags.quantizer
	}
	if set("fps") {
		params.FrameRate = flags.frameRate
		if params.FrameRate == "same" {
			params.FrameRate = settings.FrameRateSame
		}
	}
	if set("audio-bitrate") {
		params.AudioBitrate = flags.audioBitrate
	}
}

func printRunSummary(out io.Writer, p statusPrinter, summary batch.Summary, err error) {
	fmt.Fprintln(out)
	for _, line := range p.section("Summary") {
		fmt.Fprintln(out, line)
	}
	elapsed := summary.Elapsed.Round(time.Second)
	progress := fmt.Sprintf("%d/%d files in %s", summary.Completed, summary.Jobs, elapsed)

	kind := statusOK
	switch {
	case err == nil:
	case errors.Is(err, services.ErrValidation):
		kind = statusWarn
	default:
		kind = statusError
	}
	fmt.Fprintln(out, p.line("Encoded", kind, progress))
	if err != nil {
		reason := services.Kind(err)
		if errors.Is(err, context.Canceled) {
			reason = "cancelled"
		}
		fmt.Fprintln(out, p.line("Failure", kind, reason))
	}
}
