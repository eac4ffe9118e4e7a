package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"

	"docCrackerBackend/internal/core/domain"
)

// Collector samples host resource usage for every running recovery job and
// folds in the attempt counters reported by the search engine's progress
// events.
type Collector struct {
	mu             sync.RWMutex
	metrics        map[string]*domain.ResourceMetrics
	updateInterval time.Duration
}

func NewCollector(interval time.Duration) *Collector {
	return &Collector{
		metrics:        make(map[string]*domain.ResourceMetrics),
		updateInterval: interval,
	}
}

func (c *Collector) StartCollection(jobID string) {
	c.mu.Lock()
	c.metrics[jobID] = &domain.ResourceMetrics{
		LastUpdated: time.Now(),
	}
	c.mu.Unlock()

	go c.collect(jobID)
}

func (c *Collector) StopCollection(jobID string) {
	c.mu.Lock()
	delete(c.metrics, jobID)
	c.mu.Unlock()
}

func (c *Collector) GetMetrics(jobID string) (domain.ResourceMetrics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m, exists := c.metrics[jobID]; exists {
		return *m, true
	}
	return domain.ResourceMetrics{}, false
}

// UpdateAttempts records the counters carried by one progress event.
// Attempt counts past int64 range are clamped; the exact value lives in the
// event itself.
func (c *Collector) UpdateAttempts(jobID string, event domain.ProgressEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, exists := c.metrics[jobID]
	if !exists {
		return
	}
	if event.Attempts.IsInt64() {
		m.TotalAttempts = event.Attempts.Int64()
	} else {
		m.TotalAttempts = -1
	}
	m.AttemptsPerSec = int64(event.AttemptsPerSec)
	m.LastUpdated = time.Now()
}

func (c *Collector) collect(jobID string) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	for {
		c.mu.RLock()
		_, exists := c.metrics[jobID]
		c.mu.RUnlock()
		if !exists {
			return
		}

		cpuUsage, err := cpu.Percent(c.updateInterval, false)

		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		c.mu.Lock()
		if m, ok := c.metrics[jobID]; ok {
			if err == nil && len(cpuUsage) > 0 {
				m.CPUUsage = cpuUsage[0]
			}
			m.MemoryUsageMB = int64(stats.Alloc / 1024 / 1024)
			m.LastUpdated = time.Now()
		}
		c.mu.Unlock()

		<-ticker.C
	}
}
