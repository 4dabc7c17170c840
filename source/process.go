package source

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/miosa/osa-grid/table"
)

// Process is one row of the process table.
type Process struct {
	PID  int32
	Name string
	CPU  float64
	RSS  uint64
}

// Processes snapshots the running processes. Processes that exit while being
// read keep whatever fields were readable.
func Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, _ := p.NameWithContext(ctx)
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memInfo, _ := p.MemoryInfoWithContext(ctx)

		var rss uint64
		if memInfo != nil {
			rss = memInfo.RSS
		}
		out = append(out, Process{PID: p.Pid, Name: name, CPU: cpuPct, RSS: rss})
	}
	return out, nil
}

// ProcessColumns are the columns of the process table.
func ProcessColumns() []table.Column[Process] {
	return []table.Column[Process]{
		{
			ID: "pid", Header: "PID", Width: 8, Align: table.AlignRight,
			Cell:    func(p Process) string { return strconv.Itoa(int(p.PID)) },
			Compare: table.CompareBy(func(p Process) int32 { return p.PID }),
		},
		{
			ID: "name", Header: "Name", Width: 24,
			Cell:    func(p Process) string { return p.Name },
			Compare: table.CompareFold(func(p Process) string { return p.Name }),
		},
		{
			ID: "cpu", Header: "CPU %", Width: 7, Align: table.AlignRight,
			Cell:      func(p Process) string { return strconv.FormatFloat(p.CPU, 'f', 1, 64) },
			Compare:   table.CompareBy(func(p Process) float64 { return p.CPU }),
			DescFirst: true,
		},
		{
			ID: "rss", Header: "RSS", Width: 9, Align: table.AlignRight,
			Cell:      func(p Process) string { return FormatBytes(p.RSS) },
			Compare:   table.CompareBy(func(p Process) uint64 { return p.RSS }),
			DescFirst: true,
		},
	}
}

// ProcessTable wraps procs in a table keyed by pid.
func ProcessTable(procs []Process, sorting table.SortingState) *table.Table[Process] {
	return table.New(procs, ProcessColumns(),
		table.WithRowID(func(p Process, _ int) string { return strconv.Itoa(int(p.PID)) }),
		table.WithSorting[Process](sorting),
	)
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
