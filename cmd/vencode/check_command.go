package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vencode/internal/deps"
	"vencode/internal/services"
	"vencode/internal/settings"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe and the available encoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			statuses := deps.CheckBinaries(cmd.Context(), deps.FFmpegRequirements(cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary))
			fmt.Fprintln(out, dependencyTable(statuses))

			var encoders map[string]bool
			var encoderErr error
			if len(statuses) > 0 && statuses[0].Available {
				encoders, encoderErr = deps.VideoEncoders(cmd.Context(), statuses[0].Path)
				if encoderErr == nil {
					fmt.Fprintln(out, encoderTable(settings.DefaultOptions().Encoders, encoders))
				}
			}

			for _, line := range dependencySummary(newStatusPrinter(out), statuses, encoderErr) {
				fmt.Fprintln(out, line)
			}
			if missing := missingRequired(statuses); len(missing) > 0 {
				return services.Wrap(services.ErrConfiguration, "check", "dependencies",
					"missing required binaries: "+strings.Join(missing, ", "), nil)
			}
			return nil
		},
	}
}

func dependencyTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "ready"
		if !s.Available {
			state = "missing"
		}
		if s.Detail != "" {
			state += " (" + s.Detail + ")"
		}
		command := s.Path
		if command == "" {
			command = s.Command
		}
		rows = append(rows, []string{s.Name, command, valueOrDash(s.Version), yesNo(s.Optional), state})
	}
	return tableSpec{
		title:   "Dependencies",
		headers: []string{"Name", "Command", "Version", "Optional", "Status"},
	}.render(rows)
}

func encoderTable(names []string, available map[string]bool) string {
	rows := make([][]string, 0, len(names))
	ready := 0
	for _, name := range names {
		if available[name] {
			ready++
		}
		rows = append(rows, []string{name, yesNo(available[name])})
	}
	return tableSpec{
		title:   "Encoders",
		headers: []string{"Encoder", "Available"},
		aligns:  []columnAlignment{alignLeft, alignCenter},
		footer:  []string{"Total", fmt.Sprintf("%d/%d", ready, len(names))},
	}.render(rows)
}

func dependencySummary(p statusPrinter, statuses []deps.Status, encoderErr error) []string {
	lines := make([]string, 0, len(statuses)+2)
	missing := missingRequired(statuses)
	if len(missing) == 0 {
		lines = append(lines, p.line("Summary", statusOK, "all required dependencies available"))
	} else {
		lines = append(lines, p.line("Summary", statusError, fmt.Sprintf("%d required dependencies missing", len(missing))))
	}
	for _, s := range statuses {
		switch {
		case s.Available && s.Detail == "":
			lines = append(lines, p.line(s.Name, statusOK, "Ready "+s.Version))
		case s.Available:
			lines = append(lines, p.line(s.Name, statusWarn, s.Detail))
		case s.Optional:
			lines = append(lines, p.line(s.Name, statusWarn, s.Detail))
		default:
			lines = append(lines, p.line(s.Name, statusError, s.Detail))
		}
	}
	if encoderErr != nil {
		lines = append(lines, p.line("Encoders", statusWarn, encoderErr.Error()))
	}
	return lines
}

func missingRequired(statuses []deps.Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
