package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vencode/internal/testsupport"
)

const stubFFmpeg = `#!/bin/sh
case "$*" in
  *-version*) echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers"; exit 0 ;;
  *-encoders*) printf 'Encoders:\n V..... = Video\n ------\n V....D libx264    H.264\n V....D libx265    HEVC\n A....D aac        AAC\n'; exit 0 ;;
  *broken*) echo "broken.mkv: Invalid data found when processing input" >&2; exit 1 ;;
esac
printf '  Duration: 00:00:10.00, start: 0.000000, bitrate: 800 kb/s\n' >&2
printf 'frame=   10 fps=25 q=28.0 size=     1kB time=00:00:05.00 bitrate= 800.0kbits/s speed=2.00x\r' >&2
printf 'frame=   20 fps=25 q=28.0 size=     2kB time=00:00:10.00 bitrate= 800.0kbits/s speed=2.00x\n' >&2
exit 0
`

const stubFFprobe = `#!/bin/sh
case "$*" in
  *-version*) echo "ffprobe version 6.1.1 Copyright (c) 2007-2023 the FFmpeg developers"; exit 0 ;;
  *missing*) echo "missing.mkv: No such file or directory" >&2; exit 1 ;;
esac
cat <<'JSON'
{"streams":[
  {"index":0,"codec_name":"h264","codec_type":"video","width":1280,"height":720,"pix_fmt":"yuv420p","avg_frame_rate":"25/1"},
  {"index":1,"codec_name":"aac","codec_type":"audio","channels":2,"sample_rate":"48000","tags":{"language":"eng"}}
 ],
 "format":{"filename":"clip.mkv","nb_streams":2,"format_name":"matroska,webm","duration":"10.000000","size":"2097152","bit_rate":"800000"}}
JSON
`

type cliTestEnv struct {
	baseDir    string
	configPath string
	stateDir   string
	mediaDir   string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "xdg-state"))

	stubs := []testsupport.ConfigOption{
		testsupport.WithFFmpegScript(stubFFmpeg),
		testsupport.WithFFprobeScript(stubFFprobe),
	}
	cfg := testsupport.NewConfig(t, append(stubs, opts...)...)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(homeDir, ".config", "vencode", "config.toml"),
		stateDir:   cfg.Paths.StateDir,
		mediaDir:   filepath.Join(base, "media"),
	}
	testsupport.WriteConfig(t, cfg, env.configPath)
	return env
}

func (e *cliTestEnv) media(t *testing.T, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(e.mediaDir, name)
		testsupport.WriteFile(t, path, 64)
		paths = append(paths, path)
	}
	return paths
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, value, substr string) {
	t.Helper()
	if !strings.Contains(value, substr) {
		t.Fatalf("expected %q to contain %q", value, substr)
	}
}
