package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/fundscope/internal/clientdata"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	cache       *clientdata.Repository
	startupTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cache *clientdata.Repository) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		cache:       cache,
		startupTime: time.Now(),
	}
}

// HandleStatus returns process, host and cache statistics.
// GET /api/system/status
func (h *SystemHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuPct, ramPct := h.hostStats()

	cacheCounts := make(map[string]int, len(clientdata.AllTables))
	for _, table := range clientdata.AllTables {
		count, err := h.cache.Count(table)
		if err != nil {
			h.log.Warn().Err(err).Str("table", table).Msg("Failed to count cache entries")
			continue
		}
		cacheCounts[table] = count
	}

	response := map[string]interface{}{
		"status":         "running",
		"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
		"host": map[string]interface{}{
			"cpu_percent": cpuPct,
			"ram_percent": ramPct,
		},
		"runtime": map[string]interface{}{
			"alloc_mb":   m.Alloc / 1024 / 1024,
			"sys_mb":     m.Sys / 1024 / 1024,
			"num_gc":     m.NumGC,
			"goroutines": runtime.NumGoroutine(),
		},
		"cache": cacheCounts,
	}

	h.writeJSON(w, response)
}

// hostStats samples host CPU and memory usage.
func (h *SystemHandlers) hostStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
