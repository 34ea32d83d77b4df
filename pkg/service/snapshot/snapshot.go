package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/seclens/auditdash/pkg/domain/types"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// Snapshot is one host telemetry capture fed to the AI audit prompt. A failed
// collector leaves its section nil and records the failure in Errors; a
// snapshot is always producible.
type Snapshot struct {
	ID              types.SnapshotID       `json:"id"`
	TakenAt         time.Time              `json:"taken_at"`
	Host            *host.InfoStat         `json:"host,omitempty"`
	Load            *load.AvgStat          `json:"load,omitempty"`
	Memory          *mem.VirtualMemoryStat `json:"memory,omitempty"`
	Disk            *disk.UsageStat        `json:"disk,omitempty"`
	TopProcesses    []ProcessInfo          `json:"top_processes,omitempty"`
	ConnectionCount int                    `json:"connection_count"`
	Errors          []string               `json:"errors,omitempty"`
}

// ProcessInfo is a trimmed view of one running process
type ProcessInfo struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float32 `json:"memory_percent"`
}

// CollectorConfig holds configuration for the Collector
type CollectorConfig struct {
	processLimit int
	diskPath     string
}

// CollectorOption is a functional option for configuring Collector
type CollectorOption func(*CollectorConfig)

// WithProcessLimit caps the number of processes kept in the snapshot
func WithProcessLimit(n int) CollectorOption {
	return func(c *CollectorConfig) {
		if n > 0 {
			c.processLimit = n
		}
	}
}

// WithDiskPath sets the mount point sampled for disk usage
func WithDiskPath(path string) CollectorOption {
	return func(c *CollectorConfig) {
		if path != "" {
			c.diskPath = path
		}
	}
}

// Collector gathers host telemetry via gopsutil
type Collector struct {
	config *CollectorConfig
}

// NewCollector creates a new Collector instance
func NewCollector(opts ...CollectorOption) *Collector {
	config := &CollectorConfig{
		processLimit: 25,
		diskPath:     "/",
	}
	for _, opt := range opts {
		opt(config)
	}
	return &Collector{config: config}
}

// Collect takes a snapshot. Individual collector failures are recorded, never
// fatal.
func (c *Collector) Collect(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		ID:      types.NewSnapshotID(),
		TakenAt: time.Now().UTC(),
	}

	if info, err := host.InfoWithContext(ctx); err != nil {
		snap.recordError("host", err)
	} else {
		snap.Host = info
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		snap.recordError("load", err)
	} else {
		snap.Load = avg
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		snap.recordError("memory", err)
	} else {
		snap.Memory = vm
	}

	if usage, err := disk.UsageWithContext(ctx, c.config.diskPath); err != nil {
		snap.recordError("disk", err)
	} else {
		snap.Disk = usage
	}

	if procs, err := c.collectProcesses(ctx); err != nil {
		snap.recordError("processes", err)
	} else {
		snap.TopProcesses = procs
	}

	if conns, err := gopsnet.ConnectionsWithContext(ctx, "inet"); err != nil {
		snap.recordError("connections", err)
	} else {
		snap.ConnectionCount = len(conns)
	}

	return snap
}

func (c *Collector) collectProcesses(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Process may have exited between listing and sampling
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		infos = append(infos, ProcessInfo{
			PID:           p.Pid,
			Name:          name,
			CPUPercent:    cpuPct,
			MemoryPercent: memPct,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})
	if len(infos) > c.config.processLimit {
		infos = infos[:c.config.processLimit]
	}
	return infos, nil
}

func (s *Snapshot) recordError(section string, err error) {
	s.Errors = append(s.Errors, fmt.Sprintf("%s: %v", section, err))
}
