package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"hcrm/internal/logger"
)

// DefaultWindow is how long the sampler waits between the two CPU tick
// snapshots. Shorter windows degrade the utilization signal.
const DefaultWindow = 500 * time.Millisecond

// TickSnapshot is one reading of the cumulative CPU tick counters,
// summed across cores.
type TickSnapshot struct {
	Idle  float64
	Total float64
	Model string
}

// Source is the narrow capability the sampler needs from the host. It
// exists so tests can substitute deterministic counters for real hardware.
type Source interface {
	CPUTicks(ctx context.Context) (TickSnapshot, error)
	Memory(ctx context.Context) (total, free uint64, err error)
	OSDescriptor(ctx context.Context) string
}

// Stats is the derived, render-ready view of host utilization.
// Percent fields carry one fraction digit, clamped to [0, 100].
type Stats struct {
	CPUPercent string
	RAMPercent string
	CPUModel   string
	OS         string
}

// Sampler computes Stats from two time-spaced tick snapshots.
type Sampler struct {
	src    Source
	window time.Duration
	log    *logger.Logger
}

// NewSampler returns a Sampler over src using the default window.
func NewSampler(src Source) *Sampler {
	return &Sampler{
		src:    src,
		window: DefaultWindow,
		log:    logger.PackageLogger("SYSINFO", "📊 SYSINFO"),
	}
}

// Sample takes two CPU snapshots separated by the sampling window and an
// instantaneous memory reading, and derives utilization percentages.
func (s *Sampler) Sample(ctx context.Context) (Stats, error) {
	first, err := s.src.CPUTicks(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("cpu snapshot: %w", err)
	}

	select {
	case <-time.After(s.window):
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}

	second, err := s.src.CPUTicks(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("cpu snapshot: %w", err)
	}

	cpuPct := 0.0
	if totalDiff := second.Total - first.Total; totalDiff > 0 {
		idleDiff := second.Idle - first.Idle
		cpuPct = clampPercent(100 - (idleDiff/totalDiff)*100)
	} else {
		// Degenerate window: counters did not advance. Report idle
		// rather than propagating NaN into the card.
		s.log.Warn("CPU tick counters did not advance over the sample window, reporting 0%%")
	}

	total, free, err := s.src.Memory(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("memory totals: %w", err)
	}
	ramPct := 0.0
	if total > 0 {
		used := float64(total) - float64(free)
		ramPct = clampPercent(used / float64(total) * 100)
	}

	return Stats{
		CPUPercent: formatPercent(cpuPct),
		RAMPercent: formatPercent(ramPct),
		CPUModel:   first.Model,
		OS:         s.src.OSDescriptor(ctx),
	}, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
