package game

import (
	"fmt"

	"github.com/sarchlab/monstercatch/idgen"
)

// scriptedRand returns queued values, then zero forever.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}

	f := r.floats[0]
	r.floats = r.floats[1:]

	return f
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}

	i := r.ints[0] % n
	r.ints = r.ints[1:]

	return i
}

// recordingListener keeps every notification as a readable line plus the
// structured data tests need most.
type recordingListener struct {
	lines    []string
	spawned  []Entity
	removed  map[idgen.ID]RemovalReason
	outcomes []Outcome
	scores   []int
	lives    []int
	times    []int
	prompts  []bool
}

func newRecordingListener() *recordingListener {
	return &recordingListener{removed: make(map[idgen.ID]RemovalReason)}
}

func (l *recordingListener) OnScoreChanged(score int) {
	l.scores = append(l.scores, score)
	l.lines = append(l.lines, fmt.Sprintf("score %d", score))
}

func (l *recordingListener) OnTimeChanged(t int) {
	l.times = append(l.times, t)
	l.lines = append(l.lines, fmt.Sprintf("time %d", t))
}

func (l *recordingListener) OnLivesChanged(lives int) {
	l.lives = append(l.lives, lives)
	l.lines = append(l.lines, fmt.Sprintf("lives %d", lives))
}

func (l *recordingListener) OnEntitySpawned(e Entity) {
	l.spawned = append(l.spawned, e)
	l.lines = append(l.lines, fmt.Sprintf("spawned %s", e.ID))
}

func (l *recordingListener) OnEntityCaught(e Entity, points int) {
	l.lines = append(l.lines, fmt.Sprintf("caught %s +%d", e.ID, points))
}

func (l *recordingListener) OnEntityRemoved(id idgen.ID, reason RemovalReason) {
	l.removed[id] = reason
	l.lines = append(l.lines, fmt.Sprintf("removed %s %s", id, reason))
}

func (l *recordingListener) OnSessionEnded(outcome Outcome, score int) {
	l.outcomes = append(l.outcomes, outcome)
	l.lines = append(l.lines, fmt.Sprintf("ended %s %d", outcome, score))
}

func (l *recordingListener) OnMessage(title, _ string, showPrompt bool) {
	l.prompts = append(l.prompts, showPrompt)
	l.lines = append(l.lines, fmt.Sprintf("message %s", title))
}

func (l *recordingListener) OnMessageHidden() {
	l.lines = append(l.lines, "message hidden")
}

func (l *recordingListener) reset() {
	*l = *newRecordingListener()
}
