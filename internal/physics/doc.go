// Package physics provides the Verlet point/edge simulation core.
//
// The package defines the building blocks of a constraint-based particle
// simulation:
//
//   - [Point]: particle carrying current and previous position instead of velocity
//   - [Edge]: constraint between two points, either [Rigid] or [Spring]
//   - [Engine]: owns points and edges and drives the integrate/constrain loop
//   - [ClosestPoint]: nearest-point search used for hit testing
//
// Edges never hold pointers to points. They store [PointID]s and resolve them
// through a [PointSet], normally the [Engine] itself, so removing a point can
// never leave an edge holding a stale reference.
//
// # Example
//
//	e := physics.NewEngine()
//	a := e.NewPoint(100, 40, true)
//	b := e.NewPoint(160, 40, false)
//	e.Connect(a, b)
//	for frame := 0; frame < 60; frame++ {
//	    e.Update(24, 800, 600)
//	}
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The host must call [Engine.Update]
// and all mutating methods from the same goroutine.
package physics
