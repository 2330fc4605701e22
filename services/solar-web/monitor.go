package main

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemStats je snímek stavu hostitele a našeho procesu pro /health.
type SystemStats struct {
	CPULoad float64 `json:"cpu_load"` // % (průměr přes všechna jádra)

	RamUsedMB  float64 `json:"ram_used_mb"` // Total - Available (bez diskové cache)
	RamTotalMB float64 `json:"ram_total_mb"`

	// AppRamUsedMB: RSS tohoto procesu.
	AppRamUsedMB float64 `json:"app_ram_used_mb"`

	Goroutines    int     `json:"goroutines"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

var startedAt = time.Now()

// CollectStats sesbírá statistiky. Chyba jednoho měření nezastaví ostatní,
// jen se zaloguje a hodnota zůstane 0.
func CollectStats(logger *slog.Logger) *SystemStats {
	stats := &SystemStats{
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: time.Since(startedAt).Seconds(),
	}

	// interval 0 = neblokuje, porovnává s předchozím voláním
	percentages, err := cpu.Percent(0, false)
	if err == nil && len(percentages) > 0 {
		stats.CPULoad = percentages[0]
	} else if err != nil {
		logger.Warn("Chyba při čtení CPU statistik", "error", err)
	}

	vMem, err := mem.VirtualMemory()
	if err == nil {
		stats.RamUsedMB = float64(vMem.Total-vMem.Available) / 1024.0 / 1024.0
		stats.RamTotalMB = float64(vMem.Total) / 1024.0 / 1024.0
	} else {
		logger.Warn("Chyba při čtení RAM statistik", "error", err)
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil {
			stats.AppRamUsedMB = float64(memInfo.RSS) / 1024.0 / 1024.0
		} else {
			logger.Warn("Chyba při čtení paměti procesu", "error", err)
		}
	} else {
		logger.Warn("Nelze otevřít vlastní proces", "error", err)
	}

	return stats
}
