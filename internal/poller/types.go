package poller

import "time"

// Setup priorities. Components with a higher priority are set up first.
const (
	PriorityBus       float64 = 1000
	PriorityIO        float64 = 900
	PriorityHardware  float64 = 800
	PriorityData      float64 = 600
	PriorityProcessor float64 = 400
	PriorityLate      float64 = -100
)

// Component is set up once and can describe its configuration.
type Component interface {
	Setup()
	DumpConfig()
	SetupPriority() float64
}

// PollingComponent is a Component that is updated on a fixed interval.
type PollingComponent interface {
	Component
	Update()
	UpdateInterval() time.Duration
}
