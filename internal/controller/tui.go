package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "prior.dev/pkg/prior/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	chainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TUI implements UI using Bubble Tea for interactive display. Tables reuse
// the plain renderers; sampling progress gets live per-chain bars.
type TUI struct {
	cmd     *cobra.Command
	program *tea.Program
	wg      sync.WaitGroup
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplayModels shows the discovered models.
func (t *TUI) DisplayModels(ctx context.Context, infos []m.ModelInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(infos) == 0 {
		t.printf("%s\n", titleStyle.Render("no models found"))
		return nil
	}

	t.printf("%s\n%s", titleStyle.Render("Models"), renderModelTable(infos))

	return nil
}

// DisplayProgram shows a rewritten sampler program.
func (t *TUI) DisplayProgram(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(lines) > 0 {
		t.printf("%s\n", titleStyle.Render(lines[0]))
		lines = lines[1:]
	}

	for _, line := range lines {
		t.printf("%s\n", line)
	}

	return nil
}

// SamplingStarted launches the live progress display.
func (t *TUI) SamplingStarted(ctx context.Context, model string, chains, draws int) {
	if err := ctx.Err(); err != nil {
		return
	}

	sm := newSamplingModel(model, chains, draws)
	t.program = tea.NewProgram(sm, tea.WithOutput(t.cmd.OutOrStdout()))

	t.wg.Add(1)

	go func() {
		defer t.wg.Done()

		_, _ = t.program.Run()
	}()
}

// Progress forwards a chain progress event to the running display.
func (t *TUI) Progress(ctx context.Context, ev m.SampleEvent) {
	if err := ctx.Err(); err != nil {
		return
	}

	if t.program != nil {
		t.program.Send(ev)
	}
}

// SamplingDone stops the progress display and waits for it to finish.
func (t *TUI) SamplingDone(ctx context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(samplingDoneMsg{})
	t.wg.Wait()
	t.program = nil

	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplaySummary shows the per-variable statistics of a run.
func (t *TUI) DisplaySummary(ctx context.Context, run m.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := fmt.Sprintf("Model %s (%d draws, %d chains, seed %d)", run.Model, run.Draws, run.Chains, run.Seed)
	t.printf("\n%s\n%s", titleStyle.Render(header), renderStatsTable(run.Stats))

	if run.DrawsFile != "" {
		t.printf("%s\n", chainStyle.Render("Raw draws: "+run.DrawsFile))
	}

	return nil
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), format, args...)
}

// samplingDoneMsg tells the progress model to quit.
type samplingDoneMsg struct{}

// samplingModel is the Bubble Tea model rendering one progress bar per chain.
type samplingModel struct {
	model  string
	draws  int
	done   []int
	bars   []progress.Model
	width  int
	closed bool
}

func newSamplingModel(model string, chains, draws int) samplingModel {
	bars := make([]progress.Model, chains)
	for i := range bars {
		bars[i] = progress.New(progress.WithDefaultGradient())
	}

	return samplingModel{
		model: model,
		draws: draws,
		done:  make([]int, chains),
		bars:  bars,
	}
}

func (sm samplingModel) Init() tea.Cmd {
	return nil
}

func (sm samplingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.width = msg.Width

		barWidth := msg.Width - 20
		if barWidth < 10 {
			barWidth = 10
		}

		for i := range sm.bars {
			sm.bars[i].Width = barWidth
		}

		return sm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			sm.closed = true
			return sm, tea.Quit
		}

		return sm, nil

	case m.SampleEvent:
		if msg.Chain >= 0 && msg.Chain < len(sm.done) && msg.Done > sm.done[msg.Chain] {
			sm.done[msg.Chain] = msg.Done
		}

		return sm, nil

	case samplingDoneMsg:
		sm.closed = true
		return sm, tea.Quit
	}

	return sm, nil
}

func (sm samplingModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Sampling %s", sm.model)))

	for i, bar := range sm.bars {
		frac := 0.0
		if sm.draws > 0 {
			frac = float64(sm.done[i]) / float64(sm.draws)
		}

		fmt.Fprintf(&b, "%s %s %s\n",
			chainStyle.Render(fmt.Sprintf("chain %d", i)),
			bar.ViewAs(frac),
			chainStyle.Render(fmt.Sprintf("%d/%d", sm.done[i], sm.draws)))
	}

	return b.String()
}
