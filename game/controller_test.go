package game

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

var _ = Describe("Controller", func() {
	var (
		engine   *timing.SerialEngine
		rng      *scriptedRand
		listener *recordingListener
		c        *Controller
	)

	advance := func(d time.Duration) {
		Expect(engine.Advance(d)).To(Succeed())
	}

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		rng = &scriptedRand{}
		listener = newRecordingListener()

		var err error
		c, err = MakeBuilder().
			WithEngine(engine).
			WithRand(rng).
			WithListener(listener).
			Build("Game")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should start idle with the initial scoreboard", func() {
		s := c.Session()
		Expect(s.Status).To(Equal(StatusIdle))
		Expect(s.Score).To(Equal(0))
		Expect(s.Lives).To(Equal(3))
		Expect(s.TimeRemaining).To(Equal(60))
		Expect(c.CanPause()).To(BeFalse())
		Expect(engine.Pending()).To(Equal(0))
	})

	Context("when started", func() {
		BeforeEach(func() {
			c.Start()
		})

		It("should run with one countdown and one spawn timer", func() {
			Expect(c.Session().Status).To(Equal(StatusRunning))
			Expect(c.CanPause()).To(BeTrue())
			Expect(engine.Pending()).To(Equal(2))
		})

		It("should tick the countdown every second", func() {
			advance(3 * time.Second)

			Expect(c.Session().TimeRemaining).To(Equal(57))
			Expect(listener.times).To(Equal([]int{60, 59, 58, 57}))
		})

		It("should spawn after the minimum delay inside the arena", func() {
			rng.floats = []float64{0, 0.5, 0.25}
			rng.ints = []int{2}
			c.Restart()
			c.Start()

			advance(999 * time.Millisecond)
			Expect(c.NumLiveEntities()).To(Equal(0))

			advance(time.Millisecond)
			Expect(c.NumLiveEntities()).To(Equal(1))

			e := c.LiveEntities()[0]
			Expect(e.Kind.Tag).To(Equal("dragon"))
			Expect(e.Position).To(Equal(Position{X: 370, Y: 110}))
			Expect(e.SpawnTime).To(Equal(timing.VTimeInMs(1000)))
			Expect(e.ExpiresAt()).To(Equal(timing.VTimeInMs(3000)))
		})

		It("should draw spawn delays from [min, max)", func() {
			rng.floats = []float64{0.5}

			c.Restart()
			c.Start()

			advance(1999 * time.Millisecond)
			Expect(c.NumLiveEntities()).To(Equal(0))

			advance(time.Millisecond)
			Expect(c.NumLiveEntities()).To(Equal(1))
		})

		It("should keep only one countdown and one spawn timer", func() {
			advance(1500 * time.Millisecond)

			// One live entity means one extra expiry event.
			Expect(c.NumLiveEntities()).To(Equal(1))
			Expect(engine.Pending()).To(Equal(3))

			c.Start()
			c.Pause()
			c.Resume()
			c.Pause()
			c.Resume()

			Expect(engine.Pending()).To(Equal(3))
		})

		It("should re-send the scoreboard when started again", func() {
			advance(1500 * time.Millisecond)
			before := c.Session()
			listener.reset()

			c.Start()

			Expect(c.Session()).To(Equal(before))
			Expect(listener.lines).To(Equal([]string{
				"score 0", "time 59", "lives 3",
			}))
		})

		It("should award points on catch", func() {
			advance(time.Second)
			Expect(c.NumLiveEntities()).To(Equal(1))
			id := c.LiveEntities()[0].ID

			c.Catch(id)

			Expect(c.Session().Score).To(Equal(10))
			Expect(c.NumLiveEntities()).To(Equal(0))
			Expect(listener.lines).To(ContainElement("caught 1 +10"))
		})

		It("should report the caught entity removed after the fade", func() {
			advance(time.Second)
			id := c.LiveEntities()[0].ID

			c.Catch(id)
			Expect(listener.removed).NotTo(HaveKey(id))

			advance(499 * time.Millisecond)
			Expect(listener.removed).NotTo(HaveKey(id))

			advance(time.Millisecond)
			Expect(listener.removed).To(HaveKeyWithValue(id, RemovalCaught))
		})

		It("should end the fade after other events of the same time", func() {
			cfg := DefaultConfig()
			cfg.CatchFade = time.Second
			engine = timing.NewSerialEngine()
			listener = newRecordingListener()

			var err error
			c, err = MakeBuilder().
				WithEngine(engine).
				WithConfig(cfg).
				WithRand(rng).
				WithListener(listener).
				Build("SlowFade")
			Expect(err).NotTo(HaveOccurred())

			c.Start()
			advance(time.Second)
			c.Catch(c.LiveEntities()[0].ID)

			// Resuming schedules the countdown and the spawn after the
			// fade, for the same millisecond.
			c.Pause()
			c.Resume()
			listener.reset()

			advance(time.Second)

			Expect(listener.lines).To(Equal([]string{
				"time 58", "spawned 2", "removed 1 caught",
			}))
		})

		It("should report the removal at once without a fade", func() {
			cfg := DefaultConfig()
			cfg.CatchFade = 0
			engine = timing.NewSerialEngine()
			listener = newRecordingListener()

			var err error
			c, err = MakeBuilder().
				WithEngine(engine).
				WithConfig(cfg).
				WithRand(rng).
				WithListener(listener).
				Build("NoFade")
			Expect(err).NotTo(HaveOccurred())

			c.Start()
			advance(time.Second)
			id := c.LiveEntities()[0].ID

			c.Catch(id)

			Expect(listener.removed).To(HaveKeyWithValue(id, RemovalCaught))
		})

		It("should ignore catches of unknown entities", func() {
			advance(time.Second)

			c.Catch(idgen.ID(999))

			Expect(c.Session().Score).To(Equal(0))
			Expect(c.NumLiveEntities()).To(Equal(1))
		})

		It("should take a life when an entity expires", func() {
			advance(time.Second)
			id := c.LiveEntities()[0].ID

			advance(3 * time.Second)

			Expect(c.Session().Lives).To(Equal(2))
			Expect(listener.removed).To(HaveKeyWithValue(id, RemovalExpired))
		})

		It("should ignore the expiry of a caught entity", func() {
			advance(time.Second)
			id := c.LiveEntities()[0].ID

			advance(2999 * time.Millisecond)
			c.Catch(id)
			advance(time.Millisecond)

			Expect(c.Session().Score).To(Equal(10))
			Expect(c.Session().Lives).To(Equal(3))
		})

		It("should ignore the catch of an expired entity", func() {
			advance(time.Second)
			id := c.LiveEntities()[0].ID

			advance(3 * time.Second)
			c.Catch(id)

			Expect(c.Session().Score).To(Equal(0))
			Expect(c.Session().Lives).To(Equal(2))
		})

		It("should end out of lives after three expirations", func() {
			Expect(engine.Run()).To(Succeed())

			s := c.Session()
			Expect(s.Status).To(Equal(StatusEnded))
			Expect(s.Outcome).To(Equal(OutcomeOutOfLives))
			Expect(s.Lives).To(Equal(0))
			Expect(s.TimeRemaining).To(Equal(55))
			Expect(listener.outcomes).To(Equal([]Outcome{OutcomeOutOfLives}))
			Expect(listener.prompts[len(listener.prompts)-1]).To(BeTrue())
		})

		It("should end survived when the countdown reaches zero", func() {
			for c.Session().Status == StatusRunning {
				advance(100 * time.Millisecond)
				for _, e := range c.LiveEntities() {
					c.Catch(e.ID)
				}
			}

			s := c.Session()
			Expect(s.Outcome).To(Equal(OutcomeSurvived))
			Expect(s.TimeRemaining).To(Equal(0))
			Expect(s.Lives).To(Equal(3))
			Expect(s.Score).To(Equal(listener.scores[len(listener.scores)-1]))
			Expect(engine.CurrentTime()).To(Equal(timing.VTimeInMs(60000)))
		})

		It("should clear entities on end without taking lives", func() {
			advance(2500 * time.Millisecond)
			Expect(c.NumLiveEntities()).To(Equal(2))
			ids := []idgen.ID{c.LiveEntities()[0].ID, c.LiveEntities()[1].ID}

			c.Restart()
			advance(10 * time.Second)

			Expect(c.Session().Lives).To(Equal(3))
			Expect(c.Session().Status).To(Equal(StatusIdle))
			for _, id := range ids {
				Expect(listener.removed).To(HaveKeyWithValue(id, RemovalCleared))
			}
			Expect(engine.Pending()).To(Equal(0))
		})

		It("should cut short a pending catch fade on end", func() {
			advance(time.Second)
			id := c.LiveEntities()[0].ID
			c.Catch(id)

			c.Restart()
			Expect(listener.removed).To(HaveKeyWithValue(id, RemovalCleared))

			advance(time.Second)
			Expect(listener.removed).To(HaveKeyWithValue(id, RemovalCleared))
			Expect(listener.outcomes).To(Equal([]Outcome{OutcomeAbandoned}))
		})

		It("should fail on unknown events", func() {
			Expect(c.Handle("nonsense")).To(HaveOccurred())
		})
	})

	Context("when paused", func() {
		BeforeEach(func() {
			c.Start()
			advance(1500 * time.Millisecond)
			c.Pause()
		})

		It("should stop the countdown and the spawns", func() {
			before := c.Session()

			advance(1000 * time.Millisecond)

			s := c.Session()
			Expect(s.Status).To(Equal(StatusPaused))
			Expect(s.TimeRemaining).To(Equal(before.TimeRemaining))
			Expect(c.NumLiveEntities()).To(Equal(1))
			Expect(listener.spawned).To(HaveLen(1))
		})

		It("should leave the session unchanged on immediate resume", func() {
			before := c.Session()

			c.Resume()

			after := c.Session()
			Expect(after.Score).To(Equal(before.Score))
			Expect(after.Lives).To(Equal(before.Lives))
			Expect(after.TimeRemaining).To(Equal(before.TimeRemaining))
			Expect(after.Status).To(Equal(StatusRunning))
		})

		It("should ignore catches", func() {
			c.Catch(c.LiveEntities()[0].ID)

			Expect(c.Session().Score).To(Equal(0))
			Expect(c.NumLiveEntities()).To(Equal(1))
		})

		It("should not take lives for entities that run out while paused", func() {
			advance(10 * time.Second)

			Expect(c.Session().Lives).To(Equal(3))
			Expect(c.NumLiveEntities()).To(Equal(1))
		})

		It("should expire overdue entities on resume", func() {
			advance(10 * time.Second)

			c.Resume()

			Expect(c.Session().Lives).To(Equal(2))
			Expect(c.NumLiveEntities()).To(Equal(0))
		})

		It("should restart the countdown one interval after resume", func() {
			advance(300 * time.Millisecond)
			c.Resume()

			advance(999 * time.Millisecond)
			Expect(c.Session().TimeRemaining).To(Equal(59))

			advance(time.Millisecond)
			Expect(c.Session().TimeRemaining).To(Equal(58))
		})

		It("should toggle", func() {
			c.TogglePause()
			Expect(c.Session().Status).To(Equal(StatusRunning))

			c.TogglePause()
			Expect(c.Session().Status).To(Equal(StatusPaused))
		})
	})

	It("should end the game when overdue expirations use up the lives", func() {
		c.Start()
		advance(3500 * time.Millisecond)
		Expect(c.NumLiveEntities()).To(Equal(3))

		c.Pause()
		advance(10 * time.Second)
		c.Resume()

		s := c.Session()
		Expect(s.Status).To(Equal(StatusEnded))
		Expect(s.Outcome).To(Equal(OutcomeOutOfLives))
		Expect(engine.Pending()).To(Equal(0))
	})

	It("should ignore pause and catch while idle", func() {
		c.Pause()
		c.Resume()
		c.Catch(idgen.ID(1))

		Expect(c.Session().Status).To(Equal(StatusIdle))
		Expect(listener.lines).To(BeEmpty())
	})

	It("should reset to idle with the start prompt on restart from ended", func() {
		c.Start()
		Expect(engine.Run()).To(Succeed())
		Expect(c.Session().Status).To(Equal(StatusEnded))
		listener.reset()

		c.Restart()

		s := c.Session()
		Expect(s.Status).To(Equal(StatusIdle))
		Expect(s.Score).To(Equal(0))
		Expect(s.Lives).To(Equal(3))
		Expect(s.TimeRemaining).To(Equal(60))
		Expect(listener.outcomes).To(BeEmpty())
		Expect(listener.lines).To(Equal([]string{
			"score 0", "time 60", "lives 3", "message " + WelcomeTitle,
		}))
		Expect(listener.prompts).To(Equal([]bool{true}))
	})

	It("should start a fresh session after the game ended", func() {
		c.Start()
		first := c.Session().ID
		Expect(engine.Run()).To(Succeed())

		c.Start()

		s := c.Session()
		Expect(s.ID).NotTo(Equal(first))
		Expect(s.Status).To(Equal(StatusRunning))
		Expect(s.Lives).To(Equal(3))
		Expect(s.Outcome).To(Equal(OutcomeNone))
	})

	It("should accept commands as events", func() {
		engine.Schedule(timing.ScheduledEvent{
			Event: &StartCommand{}, Time: 0, Handler: c,
		})
		engine.Schedule(timing.ScheduledEvent{
			Event: &TogglePauseCommand{}, Time: 10, Handler: c,
		})

		Expect(engine.RunUntil(10)).To(Succeed())
		Expect(c.Session().Status).To(Equal(StatusPaused))

		engine.Schedule(timing.ScheduledEvent{
			Event: &ResumeCommand{}, Time: 20, Handler: c,
		})
		engine.Schedule(timing.ScheduledEvent{
			Event: &CatchCommand{ID: 1}, Time: 1021, Handler: c,
		})
		Expect(engine.RunUntil(1021)).To(Succeed())
		Expect(c.Session().Score).To(Equal(10))

		engine.Schedule(timing.ScheduledEvent{
			Event: &PauseCommand{}, Time: 1022, Handler: c,
		})
		engine.Schedule(timing.ScheduledEvent{
			Event: &RestartCommand{}, Time: 1023, Handler: c,
		})
		Expect(engine.RunUntil(1023)).To(Succeed())
		Expect(c.Session().Status).To(Equal(StatusIdle))
	})
})

var _ = Describe("Controller notifications", func() {
	var (
		mockCtrl *gomock.Controller
		listener *MockListener
		engine   *timing.SerialEngine
		c        *Controller
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		listener = NewMockListener(mockCtrl)
		engine = timing.NewSerialEngine()

		var err error
		c, err = MakeBuilder().
			WithEngine(engine).
			WithRand(&scriptedRand{}).
			WithListener(listener).
			Build("Game")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should announce a new session", func() {
		gomock.InOrder(
			listener.EXPECT().OnScoreChanged(0),
			listener.EXPECT().OnTimeChanged(60),
			listener.EXPECT().OnLivesChanged(3),
			listener.EXPECT().OnMessageHidden(),
		)

		c.Start()
	})

	It("should announce spawn, catch and removal in order", func() {
		listener.EXPECT().OnScoreChanged(0).AnyTimes()
		listener.EXPECT().OnTimeChanged(gomock.Any()).AnyTimes()
		listener.EXPECT().OnLivesChanged(3).AnyTimes()
		listener.EXPECT().OnMessageHidden().AnyTimes()

		c.Start()

		var spawned Entity
		gomock.InOrder(
			listener.EXPECT().OnEntitySpawned(gomock.Any()).
				Do(func(e Entity) { spawned = e }),
			listener.EXPECT().OnScoreChanged(10),
			listener.EXPECT().OnEntityCaught(gomock.Any(), 10),
			listener.EXPECT().OnEntityRemoved(idgen.ID(1), RemovalCaught),
		)

		Expect(engine.Advance(time.Second)).To(Succeed())
		c.Catch(spawned.ID)
		Expect(engine.Advance(500 * time.Millisecond)).To(Succeed())
	})

	It("should announce the end of a session before the final message", func() {
		listener.EXPECT().OnScoreChanged(gomock.Any()).AnyTimes()
		listener.EXPECT().OnTimeChanged(gomock.Any()).AnyTimes()
		listener.EXPECT().OnLivesChanged(gomock.Any()).AnyTimes()
		listener.EXPECT().OnMessageHidden().AnyTimes()
		listener.EXPECT().OnEntitySpawned(gomock.Any()).AnyTimes()
		listener.EXPECT().OnEntityRemoved(gomock.Any(), gomock.Any()).AnyTimes()

		title, body := EndMessage(OutcomeOutOfLives, 0)
		gomock.InOrder(
			listener.EXPECT().OnSessionEnded(OutcomeOutOfLives, 0),
			listener.EXPECT().OnMessage(title, body, true),
		)

		c.Start()
		Expect(engine.Run()).To(Succeed())
	})
})
