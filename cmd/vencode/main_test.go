package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"vencode/internal/services"
	"vencode/internal/testsupport"
)

func TestConfigInitValidateShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[defaults]")
	requireContains(t, out, "encoder = 'libx264'")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
}

func TestLogLevelOverrideIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "config", "show"}, env.configPath); err == nil {
		t.Fatal("expected invalid --log-level to fail")
	}
	out, _, err := runCLI(t, []string{"--log-level", "DEBUG", "config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "level = 'debug'")
}

func TestInteractiveRequiresTerminal(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, nil, env.configPath)
	if !errors.Is(err, errNoTerminal) {
		t.Fatalf("expected errNoTerminal, got %v", err)
	}
}

func TestRunEncodesQueue(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.media(t, "a.mkv", "b.mkv")

	out, _, err := runCLI(t, append([]string{"run", "--container", "mkv"}, files...), env.configPath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "Starting encoding: "+files[0])
	requireContains(t, out, "Starting next file: "+files[1])
	requireContains(t, out, "All files processed!")
	requireContains(t, out, "2/2 files")
	if strings.Count(out, "Encoding Finished!") != 2 {
		t.Fatalf("expected two finished runs:\n%s", out)
	}
}

func TestRunReportsMissingAndFailingFiles(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run", filepath.Join(env.mediaDir, "nope.mkv")}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, out, "File not found:")
	requireContains(t, out, "No files in queue!")

	files := env.media(t, "broken.mkv", "ok.mkv")
	out, _, err = runCLI(t, append([]string{"run"}, files...), env.configPath)
	if !errors.Is(err, services.ErrExit) {
		t.Fatalf("expected exit error, got %v", err)
	}
	requireContains(t, out, "ERROR: encoder exited with error: exit status 1")
	requireContains(t, out, "0/2 files")
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.media(t, "a.mkv")

	tests := [][]string{
		{"--encoder", "libxvid"},
		{"--container", "flv"},
		{"--quantizer", "54"},
		{"--fps", "25"},
		{"--audio-bitrate", "96k"},
	}
	for _, flags := range tests {
		t.Run(flags[0], func(t *testing.T) {
			args := append(append([]string{"run"}, flags...), files...)
			if _, _, err := runCLI(t, args, env.configPath); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation error for %v, got %v", flags, err)
			}
		})
	}
}

func TestRunHonoursSessionLock(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.media(t, "a.mkv")
	if err := os.MkdirAll(env.stateDir, 0o755); err != nil {
		t.Fatalf("mkdir state: %v", err)
	}
	lock := flock.New(filepath.Join(env.stateDir, "vencode.lock"))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	t.Cleanup(func() { _ = lock.Unlock() })

	_, _, err = runCLI(t, append([]string{"run"}, files...), env.configPath)
	if err == nil || !strings.Contains(err.Error(), "another vencode session") {
		t.Fatalf("expected lock conflict, got %v", err)
	}

	unlocked := setupCLITestEnv(t, testsupport.WithSingleInstance(false))
	files = unlocked.media(t, "b.mkv")
	if _, _, err := runCLI(t, append([]string{"run"}, files...), unlocked.configPath); err != nil {
		t.Fatalf("run without single instance: %v", err)
	}
}

func TestCheckReportsDependencies(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "6.1.1")
	requireContains(t, out, "libx264")
	requireContains(t, out, "2/7")
	requireContains(t, out, "[OK] all required dependencies available")

	missing := setupCLITestEnv(t, testsupport.WithFFmpegBinary("definitely-not-ffmpeg"))
	out, _, err = runCLI(t, []string{"check"}, missing.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, "[ERROR] 1 required dependencies missing")
}

func TestProbeSummarizesStreams(t *testing.T) {
	env := setupCLITestEnv(t)
	files := env.media(t, "clip.mkv")

	out, _, err := runCLI(t, []string{"probe", files[0]}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "matroska,webm")
	requireContains(t, out, "1280x720, 25.00 fps, yuv420p")
	requireContains(t, out, "2 ch, 48000 Hz")
	requireContains(t, out, "2.0 MiB")
	requireContains(t, out, "800.0 kb/s")
	requireContains(t, out, "English")

	_, _, err = runCLI(t, []string{"probe", filepath.Join(env.mediaDir, "missing.mkv")}, env.configPath)
	if !errors.Is(err, services.ErrExit) {
		t.Fatalf("expected ffprobe failure, got %v", err)
	}
}
