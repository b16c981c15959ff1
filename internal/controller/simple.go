package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "prior.dev/pkg/prior/internal/model"
)

// progressStride controls how often SimpleUI prints chain progress.
const progressStride = 10

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayModels prints the discovered models as a table.
func (s *SimpleUI) DisplayModels(ctx context.Context, infos []m.ModelInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(infos) == 0 {
		s.printf("no models found\n")
		return nil
	}

	s.printf("\n%s", renderModelTable(infos))

	return nil
}

func renderModelTable(infos []m.ModelInfo) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Model", "File", "Params", "Random", "Assigned"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for _, info := range infos {
		random, assigned := countVars(info.Variables)

		table.Append([]string{
			info.Name,
			string(info.File),
			strings.Join(info.Params, ", "),
			fmt.Sprintf("%d", random),
			fmt.Sprintf("%d", assigned),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Models %d", len(infos)), "", "", "", ""})
	table.Render()

	return buf.String()
}

func countVars(vars []m.VarInfo) (random, assigned int) {
	for _, v := range vars {
		if v.Kind == m.VarRandom {
			random++
		} else {
			assigned++
		}
	}

	return random, assigned
}

// DisplayProgram prints a rewritten sampler program.
func (s *SimpleUI) DisplayProgram(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, line := range lines {
		s.printf("%s\n", line)
	}

	return nil
}

// SamplingStarted announces a sampling run.
func (s *SimpleUI) SamplingStarted(ctx context.Context, model string, chains, draws int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Sampling %s: %d draw(s) x %d chain(s)\n", model, draws, chains)
}

// Progress prints chain progress at coarse intervals to keep non-interactive
// logs readable.
func (s *SimpleUI) Progress(ctx context.Context, ev m.SampleEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	stride := ev.Total / progressStride
	if stride == 0 {
		stride = 1
	}

	if ev.Done%stride == 0 || ev.Done == ev.Total {
		s.printf("chain %d: %d/%d\n", ev.Chain, ev.Done, ev.Total)
	}
}

// SamplingDone finishes the progress display (no-op for SimpleUI).
func (s *SimpleUI) SamplingDone(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplaySummary prints the per-variable statistics of a run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, run m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nModel %s (%d draws, %d chains, seed %d)\n", run.Model, run.Draws, run.Chains, run.Seed)
	s.printf("%s", renderStatsTable(run.Stats))

	if run.DrawsFile != "" {
		s.printf("Raw draws: %s\n", run.DrawsFile)
	}

	return nil
}

func renderStatsTable(stats []m.VarStats) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Variable", "N", "Mean", "Std", "Min", "Max"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, st := range stats {
		table.Append([]string{
			st.Name,
			fmt.Sprintf("%d", st.Count),
			formatStat(st.Mean),
			formatStat(st.Std),
			formatStat(st.Min),
			formatStat(st.Max),
		})
	}

	table.Render()

	return buf.String()
}

func formatStat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
