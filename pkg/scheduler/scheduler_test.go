package scheduler

import (
	"context"
	"testing"
	"time"

	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/internal/repository/memory"
	"documentor-ai-be/pkg/session"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerSweepsExpiredSessions(t *testing.T) {
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, -time.Minute, nil, logger.NopLogger{})

	_, err := reg.Register(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, reg.Count())

	s := New(reg, 10*time.Millisecond, logger.NopLogger{})
	s.Start()
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for reg.Count() != 0 {
		select {
		case <-deadline:
			t.Fatal("expired session was never swept")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	store := memory.NewCollectionRepository()
	reg := session.NewRegistry(store, 4, time.Hour, nil, logger.NopLogger{})

	s := New(reg, time.Millisecond, logger.NopLogger{})
	s.Start()

	s.Stop()
	s.Stop()
}
