package msa

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/timestudy/internal/domain"
)

// GroupedData maps target -> operator -> durations in input order.
// Targets and Operators are sorted so every traversal is deterministic.
type GroupedData struct {
	Targets   []string
	Operators []string
	Cells     map[string]map[string][]float64
}

// Cell returns the durations recorded by operator on target, or nil.
func (g *GroupedData) Cell(target, operator string) []float64 {
	return g.Cells[target][operator]
}

// Count returns the total number of durations.
func (g *GroupedData) Count() int {
	n := 0
	for _, ops := range g.Cells {
		for _, v := range ops {
			n += len(v)
		}
	}
	return n
}

// Values returns every duration, target-major then operator-major.
func (g *GroupedData) Values() []float64 {
	out := make([]float64, 0, g.Count())
	for _, t := range g.Targets {
		for _, o := range g.Operators {
			out = append(out, g.Cell(t, o)...)
		}
	}
	return out
}

// TargetValues returns all durations recorded on target.
func (g *GroupedData) TargetValues(target string) []float64 {
	var out []float64
	for _, o := range g.Operators {
		out = append(out, g.Cell(target, o)...)
	}
	return out
}

// OperatorValues returns all durations recorded by operator.
func (g *GroupedData) OperatorValues(operator string) []float64 {
	var out []float64
	for _, t := range g.Targets {
		out = append(out, g.Cell(t, operator)...)
	}
	return out
}

// ValidateMeasurement reports why m cannot be analysed, if at all.
func ValidateMeasurement(index int, m domain.Measurement) error {
	switch {
	case math.IsNaN(m.TimeMs) || math.IsInf(m.TimeMs, 0):
		return fmt.Errorf("record %d: time %v is not finite: %w", index, m.TimeMs, ErrInvalidRecord)
	case m.TimeMs < 0:
		return fmt.Errorf("record %d: time %v is negative: %w", index, m.TimeMs, ErrInvalidRecord)
	case strings.TrimSpace(m.Operator) == "":
		return fmt.Errorf("record %d: missing operator: %w", index, ErrInvalidRecord)
	case strings.TrimSpace(m.Target) == "":
		return fmt.Errorf("record %d: missing target: %w", index, ErrInvalidRecord)
	}
	return nil
}

// GroupMeasurements partitions ms by target and operator. A malformed record
// aborts grouping; records are never skipped.
func GroupMeasurements(ms []domain.Measurement) (*GroupedData, error) {
	g := &GroupedData{Cells: make(map[string]map[string][]float64)}
	seenOps := make(map[string]bool)

	for i, m := range ms {
		if err := ValidateMeasurement(i, m); err != nil {
			return nil, err
		}
		ops, ok := g.Cells[m.Target]
		if !ok {
			ops = make(map[string][]float64)
			g.Cells[m.Target] = ops
			g.Targets = append(g.Targets, m.Target)
		}
		ops[m.Operator] = append(ops[m.Operator], m.TimeMs)
		if !seenOps[m.Operator] {
			seenOps[m.Operator] = true
			g.Operators = append(g.Operators, m.Operator)
		}
	}

	sort.Strings(g.Targets)
	sort.Strings(g.Operators)
	return g, nil
}
