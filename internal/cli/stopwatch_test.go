package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/timestudy/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(record func(time.Duration) error) (timerModel, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	return newTimerModel("Picking", "Ana", "Shelf 4", record, clock.now), clock
}

func press(t *testing.T, m timerModel, msg tea.KeyMsg) (timerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(timerModel)
	require.True(t, ok)
	return tm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTimer_LapRecordsElapsedTime(t *testing.T) {
	var recorded []time.Duration
	m, clock := newTestTimer(func(d time.Duration) error {
		recorded = append(recorded, d)
		return nil
	})

	clock.advance(1250 * time.Millisecond)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	clock.advance(900 * time.Millisecond)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, []time.Duration{1250 * time.Millisecond, 900 * time.Millisecond}, recorded)
	assert.Equal(t, []float64{1250, 900}, m.lapsMs())
}

func TestTimer_RestartDiscardsCurrentTrial(t *testing.T) {
	var recorded []time.Duration
	m, clock := newTestTimer(func(d time.Duration) error {
		recorded = append(recorded, d)
		return nil
	})

	clock.advance(5 * time.Second)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	clock.advance(700 * time.Millisecond)
	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []time.Duration{700 * time.Millisecond}, recorded)
}

func TestTimer_QuitKey(t *testing.T) {
	m, _ := newTestTimer(func(time.Duration) error { return nil })

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, isQuit(cmd))
}

func TestTimer_RecordErrorStops(t *testing.T) {
	boom := errors.New("disk full")
	m, clock := newTestTimer(func(time.Duration) error { return boom })

	clock.advance(time.Second)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.err, boom)
	assert.Empty(t, m.laps)
}

func TestTimer_View(t *testing.T) {
	m, clock := newTestTimer(func(time.Duration) error { return nil })
	clock.advance(850 * time.Millisecond)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "Picking")
	assert.Contains(t, view, "Shelf 4")
	assert.Contains(t, view, "Trial 2")
	assert.Contains(t, view, "850 ms")
	assert.Contains(t, view, "q quit")
}

func TestTimer_DrivenSession(t *testing.T) {
	var recorded []time.Duration
	m, clock := newTestTimer(func(d time.Duration) error {
		recorded = append(recorded, d)
		return nil
	})

	d := teatest.New(t, m)
	d.DrainInit()
	clock.advance(2 * time.Second)
	d.PressSpace()
	clock.advance(3 * time.Second)
	d.PressEnter()
	d.PressCtrlC()
	d.PressEnter()

	assert.True(t, d.Quitting)
	assert.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, recorded)
	assert.Equal(t, []float64{2000, 3000}, d.Model.(timerModel).lapsMs())
}
