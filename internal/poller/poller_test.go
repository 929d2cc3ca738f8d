package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponent struct {
	name     string
	priority float64
	interval time.Duration
	log      *[]string

	mu      sync.Mutex
	updates int
}

func (f *fakeComponent) Setup()                        { *f.log = append(*f.log, "setup:"+f.name) }
func (f *fakeComponent) DumpConfig()                   { *f.log = append(*f.log, "dump:"+f.name) }
func (f *fakeComponent) SetupPriority() float64        { return f.priority }
func (f *fakeComponent) UpdateInterval() time.Duration { return f.interval }

func (f *fakeComponent) Update() {
	f.mu.Lock()
	f.updates++
	f.mu.Unlock()
}

func (f *fakeComponent) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

// plain is a Component that is never polled.
type plain struct{ log *[]string }

func (p plain) Setup()                 { *p.log = append(*p.log, "setup:plain") }
func (p plain) DumpConfig()            { *p.log = append(*p.log, "dump:plain") }
func (p plain) SetupPriority() float64 { return PriorityBus }

func TestSetup_PriorityOrder(t *testing.T) {
	var log []string
	s := New(nil)
	require.NoError(t, s.Register(&fakeComponent{name: "late", priority: PriorityLate, interval: time.Second, log: &log}))
	require.NoError(t, s.Register(&fakeComponent{name: "data", priority: PriorityData, interval: time.Second, log: &log}))
	require.NoError(t, s.Register(plain{log: &log}))

	s.Setup()

	assert.Equal(t, []string{
		"setup:plain", "setup:data", "setup:late",
		"dump:plain", "dump:data", "dump:late",
	}, log)
}

func TestRegister_Rejects(t *testing.T) {
	var log []string
	s := New(nil)
	assert.Error(t, s.Register(nil))
	assert.Error(t, s.Register(&fakeComponent{name: "zero", log: &log}))
}

func TestRun_UpdatesUntilCancelled(t *testing.T) {
	var log []string
	c := &fakeComponent{name: "c", priority: PriorityData, interval: 5 * time.Millisecond, log: &log}
	s := New(nil)
	require.NoError(t, s.Register(c))
	require.NoError(t, s.Register(plain{log: &log}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.count() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ImmediateFirstUpdate(t *testing.T) {
	var log []string
	c := &fakeComponent{name: "c", priority: PriorityData, interval: time.Hour, log: &log}
	s := New(nil)
	require.NoError(t, s.Register(c))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	assert.Eventually(t, func() bool { return c.count() == 1 }, time.Second, time.Millisecond)
}
