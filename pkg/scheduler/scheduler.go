package scheduler

import (
	"context"
	"sync"
	"time"

	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/session"
)

// Scheduler runs the expired-session sweep on a fixed interval. One instance
// exists per process; Start is called once at service start, Stop once at
// service stop.
type Scheduler struct {
	registry *session.Registry
	interval time.Duration
	log      logger.ILogger
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(registry *session.Registry, interval time.Duration, log logger.ILogger) *Scheduler {
	return &Scheduler{
		registry: registry,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	s.log.Info("SCHEDULER", "Cleanup job scheduled", map[string]interface{}{
		"interval": s.interval.String(),
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			swept := s.registry.CleanupExpired(context.Background())
			if swept > 0 {
				s.log.Info("SCHEDULER", "Expired sessions removed", map[string]interface{}{
					"count": swept,
				})
			}
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
	s.log.Info("SCHEDULER", "Cleanup job stopped", nil)
}
