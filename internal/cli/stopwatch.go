package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timestudy/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

const timerTickInterval = 100 * time.Millisecond

type timerKeyMap struct {
	Lap     key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Lap:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "save trial")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart trial")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Lap, k.Restart, k.Quit}
}

// timerModel times consecutive trials. The stopwatch only drives the
// display; saved durations come from the wall clock so they do not depend
// on tick granularity.
type timerModel struct {
	watch  stopwatch.Model
	keys   timerKeyMap
	now    func() time.Time
	record func(time.Duration) error

	study, operator, target string

	lapStart time.Time
	laps     []time.Duration
	err      error
}

func newTimerModel(study, operator, target string, record func(time.Duration) error, now func() time.Time) timerModel {
	return timerModel{
		watch:    stopwatch.NewWithInterval(timerTickInterval),
		keys:     defaultTimerKeys(),
		now:      now,
		record:   record,
		study:    study,
		operator: operator,
		target:   target,
		lapStart: now(),
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.watch.Init()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Lap):
			now := m.now()
			lap := now.Sub(m.lapStart)
			if err := m.record(lap); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.laps = append(m.laps, lap)
			m.lapStart = now
			return m, m.watch.Reset()
		case key.Matches(msg, m.keys.Restart):
			m.lapStart = m.now()
			return m, m.watch.Reset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.watch, cmd = m.watch.Update(msg)
	return m, cmd
}

func (m timerModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.study))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s on %s\n\n", formatter.Bold(m.operator), formatter.Bold(m.target))
	fmt.Fprintf(&b, "  Trial %d   %s\n\n", len(m.laps)+1, formatter.StyleHeader.Render(m.watch.View()))

	start := max(0, len(m.laps)-5)
	for i := start; i < len(m.laps); i++ {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, formatter.FormatDurationMs(msOf(m.laps[i])))
	}
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("error: "+m.err.Error()) + "\n")
	}

	help := make([]string, 0, 3)
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " • ")) + "\n")
	return b.String()
}

// lapsMs returns the saved trials in milliseconds.
func (m timerModel) lapsMs() []float64 {
	out := make([]float64, len(m.laps))
	for i, d := range m.laps {
		out[i] = msOf(d)
	}
	return out
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
