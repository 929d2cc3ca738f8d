// Package poller drives component setup and periodic updates.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Scheduler owns the set of registered components.
type Scheduler struct {
	log        *slog.Logger
	components []Component
}

// New creates an empty scheduler. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{log: logger}
}

// Register adds c. Polling components must have a positive interval.
func (s *Scheduler) Register(c Component) error {
	if c == nil {
		return errors.New("poller: nil component")
	}
	if pc, ok := c.(PollingComponent); ok && pc.UpdateInterval() <= 0 {
		return fmt.Errorf("poller: interval must be > 0, got %s", pc.UpdateInterval())
	}
	s.components = append(s.components, c)
	return nil
}

// Setup calls Setup on every component in descending priority order and
// then dumps each configuration.
func (s *Scheduler) Setup() {
	sort.SliceStable(s.components, func(i, j int) bool {
		return s.components[i].SetupPriority() > s.components[j].SetupPriority()
	})
	for _, c := range s.components {
		c.Setup()
	}
	for _, c := range s.components {
		c.DumpConfig()
	}
}

// Run updates every polling component once immediately and then on its
// interval until ctx is done. One goroutine per component, so updates of
// the same component never overlap.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, c := range s.components {
		pc, ok := c.(PollingComponent)
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx, pc)
		}()
	}
	wg.Wait()
	s.log.Debug("scheduler stopped")
}

func run(ctx context.Context, pc PollingComponent) {
	ticker := time.NewTicker(pc.UpdateInterval())
	defer ticker.Stop()

	pc.Update()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pc.Update()
		}
	}
}
