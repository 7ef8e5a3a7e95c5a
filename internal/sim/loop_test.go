package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("Loop", func() {
	var (
		bodies []*physics.Body
		rec    *recorder
		loop   *Loop
	)

	BeforeEach(func() {
		var err error
		bodies, err = sunEarth()
		Expect(err).NotTo(HaveOccurred())

		rec = &recorder{quitAfter: 5, fps: 60}
		loop, err = NewLoop(DefaultConfig(), bodies, NewProjection(100/physics.AU, 800, 800), rec, rec)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects an empty body set", func() {
		_, err := NewLoop(DefaultConfig(), nil, Projection{}, rec, rec)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a missing render context", func() {
		_, err := NewLoop(DefaultConfig(), bodies, Projection{}, nil, rec)
		Expect(err).To(HaveOccurred())
	})

	It("steps every body once per frame and presents", func() {
		loop.Frame()

		Expect(loop.Steps()).To(Equal(1))
		Expect(loop.SimTime()).To(Equal(86400.0))
		Expect(rec.clears).To(Equal(1))
		Expect(rec.presents).To(Equal(1))
		Expect(rec.circles).To(HaveLen(2))
		for _, b := range bodies {
			Expect(b.Trajectory()).To(HaveLen(1))
		}
	})

	It("draws circles at projected positions with exaggerated radii", func() {
		loop.Frame()

		sun := rec.circles[0]
		want := loop.Projection().ToScreen(bodies[0].Pos)
		Expect(sun.x).To(BeNumerically("~", want.X, 1e-9))
		Expect(sun.y).To(BeNumerically("~", want.Y, 1e-9))
		Expect(sun.r).To(BeNumerically("~", 30*100/physics.AU*1e9, 1e-9))
	})

	It("draws orbit trails only once a body has more than two points", func() {
		loop.Frame()
		loop.Frame()
		Expect(rec.polylines).To(BeEmpty())

		loop.Frame()
		Expect(rec.polylines).To(HaveLen(2))
		Expect(rec.polylines[1]).To(HaveLen(3))
	})

	It("labels non-anchor bodies with their distance to the anchor", func() {
		loop.Frame()

		Expect(rec.texts).To(ContainElement("149600000.0 KM"))
		Expect(rec.texts).NotTo(ContainElement(HavePrefix("FPS")))
		Expect(rec.texts).To(ContainElement("Seconds: 86400"))
		Expect(rec.texts).To(ContainElement("Days: 1.00"))
	})

	It("shows the clock rate once a clock is attached", func() {
		loop.UseClock(rec)
		loop.Render()

		Expect(rec.texts).To(ContainElement("FPS: 60.00"))
	})

	It("notifies observers after each step", func() {
		obs := &stepObserver{}
		loop.AddObserver(obs)

		loop.Advance()
		loop.Advance()

		Expect(obs.times).To(Equal([]float64{86400, 172800}))
	})

	It("runs until quit is requested", func() {
		err := loop.Run(context.Background(), rec, rec)

		Expect(err).NotTo(HaveOccurred())
		Expect(loop.Steps()).To(Equal(5))
		Expect(rec.presents).To(Equal(5))
		Expect(rec.ticks).To(Equal(6))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := loop.Run(ctx, rec, rec)

		Expect(err).To(MatchError(context.Canceled))
		Expect(loop.Steps()).To(BeZero())
	})
})

var _ = Describe("Earth around the sun", func() {
	It("closes its orbit after about a year of daily steps", func() {
		bodies, err := sunEarth()
		Expect(err).NotTo(HaveOccurred())
		earth := bodies[1]
		start := earth.Pos

		result, err := New(DefaultConfig()).Run(context.Background(), bodies, 365)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Errors).To(BeEmpty())

		Expect(r2.Norm(r2.Sub(earth.Pos, start))).To(BeNumerically("<", 0.05*physics.AU))
		Expect(earth.DistanceToAnchor).To(BeNumerically("~", physics.AU, 0.05*physics.AU))
	})

	It("stays bound with bounded energy error", func() {
		bodies, err := sunEarth()
		Expect(err).NotTo(HaveOccurred())
		g := physics.DefaultGravity()
		e0 := physics.TotalEnergy(bodies, g)

		_, err = New(DefaultConfig()).Run(context.Background(), bodies, 730)
		Expect(err).NotTo(HaveOccurred())

		drift := math.Abs(physics.TotalEnergy(bodies, g)-e0) / math.Abs(e0)
		Expect(drift).To(BeNumerically("<", 0.1))
	})
})
