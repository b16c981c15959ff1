// Package controller provides output adapters for displaying models,
// compiled sampler programs and sampling results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "prior.dev/pkg/prior/internal/model"
)

// UI defines the interface for displaying results. Implementations can use
// different output methods (simple text, TUI).
type UI interface {
	DisplayModels(ctx context.Context, infos []m.ModelInfo) error
	DisplayProgram(ctx context.Context, lines []string) error
	SamplingStarted(ctx context.Context, model string, chains, draws int)
	Progress(ctx context.Context, ev m.SampleEvent)
	SamplingDone(ctx context.Context)
	DisplaySummary(ctx context.Context, run m.RunSummary) error
}

// NewUI selects a UI implementation: the interactive TUI when attached to a
// terminal, the plain printer otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
