package pyrt

import (
	"github.com/shirou/gopsutil/v4/process"
)

// Stats is a resource snapshot of the interpreter process.
type Stats struct {
	PID        int
	RSS        uint64
	CPUPercent float64
}

// ProcessStats samples memory and CPU use of pid.
func ProcessStats(pid int) (Stats, error) {
	if pid <= 0 {
		return Stats{}, ErrNotReady
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return Stats{}, err
	}
	st := Stats{PID: pid}
	if mem, err := p.MemoryInfo(); err == nil {
		st.RSS = mem.RSS
	}
	if cpu, err := p.CPUPercent(); err == nil {
		st.CPUPercent = cpu
	}
	return st, nil
}
