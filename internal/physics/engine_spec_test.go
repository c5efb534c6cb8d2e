package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/vector"
)

var _ = Describe("Engine", func() {
	const width, height = 400.0, 300.0

	var (
		engine *physics.Engine
		anchor *physics.Point
		bob    *physics.Point
	)

	BeforeEach(func() {
		engine = physics.NewEngine()
		anchor = engine.NewPoint(200, 50, true)
		bob = engine.NewPoint(260, 50, false)
		_, err := engine.Connect(anchor, bob)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("a pendulum", func() {
		It("keeps its anchor in place", func() {
			for i := 0; i < 120; i++ {
				engine.Update(24, width, height)
			}
			Expect(anchor.Position).To(Equal(vector.New(200, 50)))
			Expect(anchor.Previous).To(Equal(vector.New(200, 50)))
		})

		It("swings below the anchor without stretching", func() {
			for i := 0; i < 60; i++ {
				engine.Update(24, width, height)
			}
			Expect(bob.Position.Y).To(BeNumerically(">", 50))
			Expect(bob.Position.Distance(anchor.Position)).To(BeNumerically("~", 60, 0.5))
		})

		It("keeps every coordinate finite", func() {
			for i := 0; i < 300; i++ {
				engine.Update(24, width, height)
			}
			for _, p := range engine.Points() {
				Expect(math.IsNaN(p.Position.X) || math.IsNaN(p.Position.Y)).To(BeFalse())
			}
		})
	})

	Describe("bounds", func() {
		It("holds free points one unit inside the rectangle", func() {
			loose := engine.NewPoint(-50, 900, false)
			engine.Update(24, width, height)
			Expect(loose.Position.X).To(BeNumerically(">=", 1))
			Expect(loose.Position.Y).To(BeNumerically("<=", height-1))
		})
	})

	Describe("removing a point", func() {
		It("drops the point and all of its edges", func() {
			third := engine.NewPoint(320, 50, false)
			_, err := engine.Spring(bob, third, 0.5)
			Expect(err).NotTo(HaveOccurred())

			engine.RemovePoint(bob)

			Expect(engine.Points()).To(ConsistOf(anchor, third))
			Expect(engine.Edges()).To(BeEmpty())
			_, ok := engine.Point(bob.ID)
			Expect(ok).To(BeFalse())
		})

		It("leaves the engine stable for further updates", func() {
			engine.RemovePoint(bob)
			Expect(func() { engine.Update(24, width, height) }).NotTo(Panic())
		})
	})

	Describe("linking", func() {
		It("rejects unregistered points", func() {
			other := physics.NewPoint(1000, 0, 0, false)
			_, err := engine.Connect(anchor, other)
			Expect(err).To(MatchError(physics.ErrUnknownPoint))
		})

		It("finds an existing edge in either order", func() {
			edge, ok := engine.PointsAreConnected(bob, anchor)
			Expect(ok).To(BeTrue())
			Expect(edge.Kind).To(Equal(physics.Rigid))
		})
	})
})
