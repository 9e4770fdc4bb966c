package sim

import "fmt"

// Snapshot is one grid point of a simulated trajectory together with
// the pulse power at that point.
type Snapshot struct {
	Time  float64
	Te    float64
	Tph   float64
	M     float64
	Power float64
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

type Config struct {
	// ValidateState records a step error and stops the run when a
	// state variable goes non-finite. Off by default: blow-up is a
	// property of the output, not an exception.
	ValidateState bool
}

// Measurements are the pulse-weighted averages a finite-duration probe
// would record over the run.
type Measurements struct {
	Magnetization       float64 `json:"magnetization"` // fraction of the pre-pulse value
	ElectronTemperature float64 `json:"electron_temperature"`
	PhononTemperature   float64 `json:"phonon_temperature"`
}

type Result struct {
	Times []float64
	Te    []float64
	Tph   []float64
	M     []float64
	Pulse []float64

	Metrics    map[string]float64
	Measured   Measurements
	StepsTaken int
	Errors     []error
}

type StepError struct {
	Step    int
	Time    float64
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %s", e.Step, e.Time, e.Message)
}
