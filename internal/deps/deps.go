package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	probeTimeout = 5 * time.Second
	probeLimit   = 4
)

var commandContext = exec.CommandContext

// Requirement defines an external binary vencode relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the binary to read its version.
	VersionArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// CheckBinaries evaluates the provided requirements concurrently and reports
// availability in the order given.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeLimit)
	for i, req := range requirements {
		g.Go(func() error {
			results[i] = check(gctx, req)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func check(ctx context.Context, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Path = path
	status.Available = true
	if len(req.VersionArgs) == 0 {
		return status
	}

	version, err := readVersion(ctx, path, req.VersionArgs)
	if err != nil {
		status.Detail = fmt.Sprintf("version check failed: %v", err)
		return status
	}
	status.Version = version
	return status
}

func readVersion(ctx context.Context, path string, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	output, err := commandContext(ctx, path, args...).Output()
	if err != nil {
		return "", err
	}
	version := ParseVersion(string(output))
	if version == "" {
		return "", fmt.Errorf("unrecognized version output")
	}
	return version, nil
}
