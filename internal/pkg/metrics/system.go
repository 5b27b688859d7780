package metrics

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const DefaultSystemInterval = 5 * time.Second

var (
	HostCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "host_cpu_usage_percent",
			Help: "Host CPU usage over the last sampling window",
		},
	)

	HostMemoryUsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "host_memory_used_bytes",
			Help: "Host memory in use",
		},
	)

	ProcessResidentMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_service_resident_memory_bytes",
			Help: "Resident set size of this process",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_service_heap_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parcel_service_goroutines",
			Help: "Goroutines currently alive",
		},
	)
)

// StartSystemMetricsCollector samples host and process gauges every interval until ctx is done.
func StartSystemMetricsCollector(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSystemInterval
	}

	self, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits int32
	if err != nil {
		self = nil
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CollectSystemMetrics(ctx, self)
			}
		}
	}()
}

// CollectSystemMetrics takes one sample. self may be nil, then RSS is skipped.
func CollectSystemMetrics(ctx context.Context, self *process.Process) {
	cpuPercent, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err == nil && len(cpuPercent) > 0 {
		HostCPUUsage.Set(cpuPercent[0])
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		HostMemoryUsed.Set(float64(vmStat.Used))
	}

	if self != nil {
		if info, err := self.MemoryInfoWithContext(ctx); err == nil {
			ProcessResidentMemory.Set(float64(info.RSS))
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	HeapAlloc.Set(float64(m.Alloc))
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
