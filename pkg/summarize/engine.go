package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"threadsum/pkg/config"
)

// ErrExternal marks failures of the generation backend: the ollama binary
// missing from PATH, a non-zero exit, or an unreachable daemon.
var ErrExternal = errors.New("external process error")

// Engine produces an analysis for a prompt with a named model.
type Engine interface {
	Summarize(ctx context.Context, model, prompt string) (string, error)
}

// NewEngine creates the engine selected by config: "cli" shells out to the
// ollama binary, "server" talks to the daemon's HTTP API.
func NewEngine(cfg *config.Config) (Engine, error) {
	switch cfg.Model.Engine {
	case "cli":
		return NewCLIEngine(), nil
	case "server":
		return NewServerEngine(ServerEngineConfig{
			BaseURL:     cfg.Model.ServerURL,
			Temperature: cfg.Model.Temperature,
			MaxTokens:   cfg.Model.MaxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported engine: %s", cfg.Model.Engine)
	}
}

// CLIEngine runs `ollama run <model> <prompt>` and captures stdout. The
// caller's context bounds the run; the configured default is five minutes.
type CLIEngine struct {
	// Binary overrides the executable name, for tests.
	Binary string
}

// NewCLIEngine creates the subprocess engine.
func NewCLIEngine() *CLIEngine {
	return &CLIEngine{Binary: "ollama"}
}

// Summarize invokes the ollama CLI once, blocking until it exits.
func (e *CLIEngine) Summarize(ctx context.Context, model, prompt string) (string, error) {
	path, err := exec.LookPath(e.Binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH", ErrExternal, e.Binary)
	}

	slog.Debug("running ollama CLI", slog.String("path", path), slog.String("model", model))

	cmd := exec.CommandContext(ctx, path, "run", model, prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: summary generation timed out", ErrExternal)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: ollama run failed: %s", ErrExternal, msg)
	}

	return stdout.String(), nil
}
