package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// hostSource reads real counters via gopsutil.
type hostSource struct{}

// HostSource returns a Source backed by the host's own counters.
func HostSource() Source {
	return hostSource{}
}

func (hostSource) CPUTicks(ctx context.Context) (TickSnapshot, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return TickSnapshot{}, err
	}
	if len(times) == 0 {
		return TickSnapshot{}, errors.New("no cpu times reported")
	}

	var snap TickSnapshot
	for _, t := range times {
		snap.Idle += t.Idle
		snap.Total += t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snap.Model = infos[0].ModelName
	}
	return snap, nil
}

func (hostSource) Memory(ctx context.Context) (uint64, uint64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return v.Total, v.Free, nil
}

func (hostSource) OSDescriptor(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return runtime.GOOS
	}
	return fmt.Sprintf("%s %s", info.OS, info.KernelVersion)
}
