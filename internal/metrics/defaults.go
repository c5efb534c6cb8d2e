package metrics

import "github.com/san-kum/verletsim/internal/sim"

// StressThreshold is the stress at which edges render fully red.
const StressThreshold = 0.15

// Default is the metric set recorded by headless runs.
func Default(height float64) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMaxStress(),
		NewStability(StressThreshold),
		NewFloorContacts(height),
	}
}
