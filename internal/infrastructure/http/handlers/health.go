package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/pkg/logger"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps      map[string]Pinger
	log       *logger.Logger
	startTime time.Time
}

// NewHealthHandler checks every named dependency on each request; nil entries
// are skipped so optional backends can be passed unconditionally.
func NewHealthHandler(deps map[string]Pinger, log *logger.Logger) *HealthHandler {
	live := make(map[string]Pinger, len(deps))
	for name, p := range deps {
		if p != nil {
			live[name] = p
		}
	}
	return &HealthHandler{
		deps:      live,
		log:       log,
		startTime: time.Now().UTC(),
	}
}

type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type HealthData struct {
	Status         string            `json:"status"`
	ServicesStatus map[string]string `json:"services_status"`
	Uptime         string            `json:"uptime"`
	Memory         MemoryMetrics     `json:"memory"`
	Goroutines     int               `json:"goroutines"`
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	data := HealthData{
		Status:         statusUp,
		ServicesStatus: map[string]string{"app": statusUp},
		Uptime:         time.Since(h.startTime).String(),
		Goroutines:     runtime.NumGoroutine(),
	}

	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.log.Warn("Health check failed", "service", name, "error", err)
			data.ServicesStatus[name] = statusDown
			data.Status = statusDown
			continue
		}
		data.ServicesStatus[name] = statusUp
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	data.Memory = MemoryMetrics{
		Alloc:      mem.Alloc,
		TotalAlloc: mem.TotalAlloc,
		Sys:        mem.Sys,
		NumGC:      mem.NumGC,
	}

	statusCode := http.StatusOK
	if data.Status == statusDown {
		statusCode = http.StatusServiceUnavailable
	}
	response.WriteJSON(w, statusCode, response.Success(data))
}
