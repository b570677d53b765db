package game

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/monstercatch/timing"
)

// monotonicListener fails the spec as soon as lives or time grow or go
// negative while a session runs.
type monotonicListener struct {
	NopListener

	lastLives, lastTime int
	running             bool
}

func (l *monotonicListener) OnLivesChanged(lives int) {
	if l.running {
		Expect(lives).To(BeNumerically("<=", l.lastLives))
	}
	Expect(lives).To(BeNumerically(">=", 0))
	l.lastLives = lives
}

func (l *monotonicListener) OnTimeChanged(t int) {
	if l.running {
		Expect(t).To(BeNumerically("<=", l.lastTime))
	}
	Expect(t).To(BeNumerically(">=", 0))
	l.lastTime = t
}

func (l *monotonicListener) OnSessionEnded(Outcome, int) {
	l.running = false
}

var _ = Describe("Session properties", func() {
	for seed := uint64(1); seed <= 20; seed++ {
		It("should hold for random play", func() {
			engine := timing.NewSerialEngine()
			watch := &monotonicListener{}
			rng := NewRand(seed)

			c, err := MakeBuilder().
				WithEngine(engine).
				WithSeed(seed * 7919).
				WithListener(watch).
				Build("Game")
			Expect(err).NotTo(HaveOccurred())

			c.Start()
			watch.running = true

			for c.Session().Status == StatusRunning {
				Expect(engine.Advance(250 * time.Millisecond)).To(Succeed())

				for _, e := range c.LiveEntities() {
					if rng.Float64() < 0.3 {
						c.Catch(e.ID)
					}
				}

				if rng.Float64() < 0.02 {
					c.Pause()
					Expect(engine.Advance(time.Second)).To(Succeed())
					c.Resume()
				}
			}

			s := c.Session()
			Expect(s.Status).To(Equal(StatusEnded))
			Expect(s.Lives == 0 || s.TimeRemaining == 0).To(BeTrue())
			Expect(s.Outcome == OutcomeSurvived).
				To(Equal(s.TimeRemaining == 0 && s.Lives > 0))
			Expect(c.NumLiveEntities()).To(Equal(0))

			Expect(engine.Run()).To(Succeed())
			Expect(c.Session()).To(Equal(s))
		})
	}
})
