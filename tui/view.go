// Package tui is the terminal frontend: it draws the arena and the
// scoreboard with tcell and turns keys and mouse clicks into controller
// commands.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

const (
	frameInterval = 100 * time.Millisecond
	labelLifetime = time.Second
)

var (
	styleDefault = tcell.StyleDefault
	styleHUD     = tcell.StyleDefault.Bold(true)
	styleDim     = tcell.StyleDefault.Dim(true)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEntity  = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleCaught  = tcell.StyleDefault.Background(tcell.ColorGold)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBox     = tcell.StyleDefault.Reverse(true)
)

// Commander delivers commands to the controller's engine loop.
type Commander interface {
	Inject(event any, handler timing.Handler)
}

type viewEntity struct {
	entity game.Entity
	caught bool
}

type floatLabel struct {
	text     string
	col, row int
	until    time.Time
}

type message struct {
	visible bool
	title   string
	body    string
	prompt  bool
}

type phase int

const (
	phaseIdle phase = iota
	phaseRunning
	phasePaused
)

// View keeps what the controller last reported and draws it. Listener
// methods run on the engine goroutine; Draw and HandleEvent run on the UI
// goroutine.
type View struct {
	game.NopListener

	mu         sync.Mutex
	screen     tcell.Screen
	arena      game.Arena
	sounds     Sounds
	commander  Commander
	controller timing.Handler
	now        func() time.Time

	score, timeLeft, lives int

	entities map[idgen.ID]*viewEntity
	order    []idgen.ID
	labels   []floatLabel
	msg      message
	phase    phase

	buttonDown bool
}

// NewView creates a view drawing on screen. The screen must be initialized.
func NewView(screen tcell.Screen, arena game.Arena, sounds Sounds) *View {
	return &View{
		screen:   screen,
		arena:    arena,
		sounds:   sounds,
		now:      time.Now,
		entities: make(map[idgen.ID]*viewEntity),
	}
}

// Attach sets where user commands go.
func (v *View) Attach(commander Commander, controller timing.Handler) {
	v.commander = commander
	v.controller = controller
}

// Run draws and handles input until the user quits or ctx is cancelled.
func (v *View) Run(ctx context.Context) {
	v.screen.EnableMouse(tcell.MouseButtonEvents)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}

			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	v.Draw()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}

			if v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
		}

		v.Draw()
	}
}

// HandleEvent turns one terminal event into commands. It returns true when
// the user asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}

	return false
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		v.send(&game.StartCommand{})
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 's':
		v.send(&game.StartCommand{})
	case 'p', ' ':
		v.send(&game.TogglePauseCommand{})
	case 'r':
		v.send(&game.RestartCommand{})
	}

	return false
}

// handleMouse catches the topmost entity under a fresh primary-button press.
func (v *View) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	fresh := pressed && !v.buttonDown
	v.buttonDown = pressed

	if !fresh {
		return
	}

	col, row := ev.Position()

	if id, ok := v.EntityAt(col, row); ok {
		v.send(&game.CatchCommand{ID: id})
	}
}

// EntityAt returns the live entity drawn over the cell. Later spawns are on
// top.
func (v *View) EntityAt(col, row int) (idgen.ID, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	l := v.layout()

	for _, id := range slices.Backward(v.order) {
		e := v.entities[id]
		if e.caught {
			continue
		}

		if l.Footprint(e.entity.Position).Contains(col, row) {
			return id, true
		}
	}

	return 0, false
}

func (v *View) send(cmd any) {
	if v.commander == nil {
		return
	}

	v.commander.Inject(cmd, v.controller)
}

// OnScoreChanged updates the scoreboard.
func (v *View) OnScoreChanged(score int) {
	v.update(func() { v.score = score })
}

// OnTimeChanged updates the scoreboard.
func (v *View) OnTimeChanged(timeRemaining int) {
	v.update(func() { v.timeLeft = timeRemaining })
}

// OnLivesChanged updates the scoreboard.
func (v *View) OnLivesChanged(lives int) {
	v.update(func() { v.lives = lives })
}

// OnEntitySpawned shows the entity.
func (v *View) OnEntitySpawned(e game.Entity) {
	v.update(func() {
		v.entities[e.ID] = &viewEntity{entity: e}
		v.order = append(v.order, e.ID)
	})
}

// OnEntityCaught shows the entity as caught and floats its points above it.
func (v *View) OnEntityCaught(e game.Entity, points int) {
	v.update(func() {
		if ve, ok := v.entities[e.ID]; ok {
			ve.caught = true
		}

		col, row := v.layout().Center(e.Position)
		v.labels = append(v.labels, floatLabel{
			text:  fmt.Sprintf("+%d", points),
			col:   col,
			row:   max(row-1, v.layout().Board.Y),
			until: v.now().Add(labelLifetime),
		})
	})

	v.sounds.Catch()
}

// OnEntityRemoved hides the entity.
func (v *View) OnEntityRemoved(id idgen.ID, reason game.RemovalReason) {
	v.update(func() {
		delete(v.entities, id)
		v.order = slices.DeleteFunc(v.order,
			func(other idgen.ID) bool { return other == id })
	})

	if reason == game.RemovalExpired {
		v.sounds.Escape()
	}
}

// OnSessionEnded plays the closing cue.
func (v *View) OnSessionEnded(game.Outcome, int) {
	v.sounds.GameOver()
}

// OnMessage shows a message box. A message with a prompt means no session is
// running; one without means the session is paused.
func (v *View) OnMessage(title, body string, showPrompt bool) {
	v.update(func() {
		v.msg = message{visible: true, title: title, body: body, prompt: showPrompt}

		if showPrompt {
			v.phase = phaseIdle
		} else {
			v.phase = phasePaused
		}
	})
}

// OnMessageHidden hides the message box; the session is running.
func (v *View) OnMessageHidden() {
	v.update(func() {
		v.msg.visible = false
		v.phase = phaseRunning
	})
}

func (v *View) update(fn func()) {
	v.mu.Lock()
	fn()
	v.mu.Unlock()

	_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (v *View) layout() Layout {
	w, h := v.screen.Size()
	return NewLayout(v.arena, w, h)
}

// Draw renders the current state.
func (v *View) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()

	l := v.layout()

	v.drawHUD()
	v.drawBorder(l.Board)

	for _, id := range v.order {
		v.drawEntity(l, v.entities[id])
	}

	v.drawLabels()

	if v.msg.visible {
		v.drawMessage()
	}

	v.screen.Show()
}

func (v *View) drawHUD() {
	hearts := strings.Repeat("♥", max(v.lives, 0))
	left := fmt.Sprintf(" Score: %d   Time: %d   Lives: %s",
		v.score, v.timeLeft, hearts)
	drawText(v.screen, 0, 0, styleHUD, left)

	w, _ := v.screen.Size()

	pauseStyle := styleDefault
	if v.phase == phaseIdle {
		pauseStyle = styleDim
	}

	pauseHint := "[p] pause "
	if v.phase == phasePaused {
		pauseHint = "[p] resume "
	}

	keys := "[r] restart  [q] quit "
	x := w - textWidth(keys)
	drawText(v.screen, x, 0, styleDefault, keys)
	drawText(v.screen, x-textWidth(pauseHint), 0, pauseStyle, pauseHint)
}

func (v *View) drawBorder(r Rect) {
	left, right := r.X-1, r.X+r.Width
	top, bottom := r.Y-1, r.Y+r.Height

	for x := left + 1; x < right; x++ {
		v.screen.SetContent(x, top, '─', nil, styleBorder)
		v.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}

	for y := top + 1; y < bottom; y++ {
		v.screen.SetContent(left, y, '│', nil, styleBorder)
		v.screen.SetContent(right, y, '│', nil, styleBorder)
	}

	v.screen.SetContent(left, top, '┌', nil, styleBorder)
	v.screen.SetContent(right, top, '┐', nil, styleBorder)
	v.screen.SetContent(left, bottom, '└', nil, styleBorder)
	v.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (v *View) drawEntity(l Layout, e *viewEntity) {
	style := styleEntity
	if e.caught {
		style = styleCaught
	}

	fp := l.Footprint(e.entity.Position)
	for y := fp.Y; y < fp.Y+fp.Height; y++ {
		for x := fp.X; x < fp.X+fp.Width; x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	col, row := l.Center(e.entity.Position)
	drawText(v.screen, col, row, style, e.entity.Kind.Glyph)
}

func (v *View) drawLabels() {
	now := v.now()

	v.labels = slices.DeleteFunc(v.labels,
		func(l floatLabel) bool { return !now.Before(l.until) })

	for _, l := range v.labels {
		drawText(v.screen, l.col, l.row, styleLabel, l.text)
	}
}

func (v *View) drawMessage() {
	lines := append([]string{v.msg.title, ""}, strings.Split(v.msg.body, "\n")...)
	if v.msg.prompt {
		lines = append(lines, "", "[s] start   [q] quit")
	}

	width := 0
	for _, line := range lines {
		width = max(width, textWidth(line))
	}
	width += 4

	w, h := v.screen.Size()
	x0 := max((w-width)/2, 0)
	y0 := max((h-len(lines)-2)/2, 0)

	for y := y0; y < y0+len(lines)+2; y++ {
		for x := x0; x < x0+width; x++ {
			v.screen.SetContent(x, y, ' ', nil, styleBox)
		}
	}

	for i, line := range lines {
		style := styleBox
		if i == 0 {
			style = styleBox.Bold(true)
		}

		drawText(v.screen, x0+(width-textWidth(line))/2, y0+1+i, style, line)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func textWidth(text string) int {
	return runewidth.StringWidth(text)
}

var _ game.Listener = (*View)(nil)
