// Package monitoring serves a small HTTP API that lets a developer watch and
// drive a running game from a browser.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/monitoring/web"
	"github.com/sarchlab/monstercatch/timing"
)

// Engine is the part of the real-time engine the monitor drives.
type Engine interface {
	timing.TimeTeller

	Pause()
	Continue()
	Inject(event any, handler timing.Handler)
	Invoke(ctx context.Context, fn func()) error
}

// Controller is the game the monitor inspects and commands.
type Controller interface {
	timing.Handler

	Name() string
	Session() game.Session
	Config() game.Config
	LiveEntities() []game.Entity
	CanPause() bool
}

// Monitor can turn a game into a server and allows external monitoring and
// controlling of the game.
type Monitor struct {
	engine     Engine
	controller Controller
	portNumber int

	profileDuration time.Duration
	invokeTimeout   time.Duration
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		invokeTimeout:   2 * time.Second,
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that runs the game.
func (m *Monitor) RegisterEngine(e Engine) {
	m.engine = e
}

// RegisterController registers the game controller.
func (m *Monitor) RegisterController(c Controller) {
	m.controller = c
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/session", m.session).Methods(http.MethodGet)
	r.HandleFunc("/api/entities", m.entities).Methods(http.MethodGet)
	r.HandleFunc("/api/controller", m.controllerDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/field/{json}", m.listFieldValue).Methods(http.MethodGet)
	r.HandleFunc("/api/command/{name}", m.command).Methods(http.MethodPost)
	r.HandleFunc("/api/catch/{id:[0-9]+}", m.catch).Methods(http.MethodPost)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	log.Printf("Monitoring game with %s", url)

	go func() {
		err := http.Serve(listener, m.Router())
		if err != nil {
			log.Printf("monitor server stopped: %v", err)
		}
	}()

	return url, nil
}

// OpenInBrowser opens the monitor page in the default browser.
func OpenInBrowser(url string) error {
	browser.Stdout = nil
	browser.Stderr = nil

	return browser.OpenURL(url)
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) now(w http.ResponseWriter, r *http.Request) {
	var now timing.VTimeInMs

	if !m.invokeOr503(w, r, func() { now = m.engine.CurrentTime() }) {
		return
	}

	fmt.Fprintf(w, "{\"now\":%d}", now)
}

type sessionRsp struct {
	ID            string `json:"id"`
	Score         int    `json:"score"`
	Lives         int    `json:"lives"`
	TimeRemaining int    `json:"time_remaining"`
	Status        string `json:"status"`
	Outcome       string `json:"outcome"`
	CanPause      bool   `json:"can_pause"`
	LiveEntities  int    `json:"live_entities"`
}

func (m *Monitor) session(w http.ResponseWriter, r *http.Request) {
	var rsp sessionRsp

	ok := m.invokeOr503(w, r, func() {
		s := m.controller.Session()
		rsp = sessionRsp{
			ID:            s.ID,
			Score:         s.Score,
			Lives:         s.Lives,
			TimeRemaining: s.TimeRemaining,
			Status:        s.Status.String(),
			Outcome:       s.Outcome.String(),
			CanPause:      m.controller.CanPause(),
			LiveEntities:  len(m.controller.LiveEntities()),
		}
	})
	if !ok {
		return
	}

	writeJSON(w, rsp)
}

type entityRsp struct {
	ID        idgen.ID         `json:"id"`
	Kind      string           `json:"kind"`
	Glyph     string           `json:"glyph"`
	Points    int              `json:"points"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	SpawnTime timing.VTimeInMs `json:"spawn_time"`
	ExpiresAt timing.VTimeInMs `json:"expires_at"`
}

func (m *Monitor) entities(w http.ResponseWriter, r *http.Request) {
	rsp := []entityRsp{}

	ok := m.invokeOr503(w, r, func() {
		for _, e := range m.controller.LiveEntities() {
			rsp = append(rsp, entityRsp{
				ID:        e.ID,
				Kind:      e.Kind.Tag,
				Glyph:     e.Kind.Glyph,
				Points:    e.Kind.Points,
				X:         e.Position.X,
				Y:         e.Position.Y,
				SpawnTime: e.SpawnTime,
				ExpiresAt: e.ExpiresAt(),
			})
		}
	})
	if !ok {
		return
	}

	writeJSON(w, rsp)
}

// controllerState is the snapshot serialized by the controller endpoints.
type controllerState struct {
	Name     string
	Session  game.Session
	Config   game.Config
	Entities []game.Entity
	CanPause bool
}

func (m *Monitor) snapshot(w http.ResponseWriter, r *http.Request) (
	*controllerState,
	bool,
) {
	state := &controllerState{}

	ok := m.invokeOr503(w, r, func() {
		state.Name = m.controller.Name()
		state.Session = m.controller.Session()
		state.Config = m.controller.Config()
		state.Entities = m.controller.LiveEntities()
		state.CanPause = m.controller.CanPause()
	})

	return state, ok
}

func (m *Monitor) controllerDetails(w http.ResponseWriter, r *http.Request) {
	state, ok := m.snapshot(w, r)
	if !ok {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type fieldReq struct {
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, ok := m.snapshot(w, r)
	if !ok {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) command(w http.ResponseWriter, r *http.Request) {
	var cmd any

	switch mux.Vars(r)["name"] {
	case "start":
		cmd = &game.StartCommand{}
	case "pause":
		cmd = &game.PauseCommand{}
	case "resume":
		cmd = &game.ResumeCommand{}
	case "toggle":
		cmd = &game.TogglePauseCommand{}
	case "restart":
		cmd = &game.RestartCommand{}
	default:
		http.Error(w, "unknown command", http.StatusNotFound)
		return
	}

	m.engine.Inject(cmd, m.controller)
	w.WriteHeader(http.StatusAccepted)
}

func (m *Monitor) catch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.engine.Inject(&game.CatchCommand{ID: idgen.ID(id)}, m.controller)
	w.WriteHeader(http.StatusAccepted)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

// invokeOr503 runs fn on the engine loop. It answers 503 when the engine is
// gone or does not respond in time.
func (m *Monitor) invokeOr503(
	w http.ResponseWriter,
	r *http.Request,
	fn func(),
) bool {
	ctx, cancel := context.WithTimeout(r.Context(), m.invokeTimeout)
	defer cancel()

	if err := m.engine.Invoke(ctx, fn); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
