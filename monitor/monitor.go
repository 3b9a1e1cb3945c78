// Package monitor exposes a running simulation over HTTP: read-only status
// endpoints plus CPU profile capture. It never mutates simulator state —
// the engine's own Quit is the only way to stop a run, which this package
// does not call.
package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"

	// Enable pprof's default handlers on the DefaultServeMux.
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/jayvanderwall/desim/sim"
)

// Monitor serves simulator status over HTTP while a run is in progress.
type Monitor struct {
	sim        *sim.Simulator
	components []sim.Component
	portNumber int
	openOnRun  bool
}

// New creates a Monitor with no registered simulator or components.
func New() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the TCP port the monitor listens on; values below
// 1000 are rejected in favor of an OS-assigned port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"monitor: port %d is too low, using an OS-assigned port instead\n",
			portNumber)
		portNumber = 0
	}
	m.portNumber = portNumber
	return m
}

// WithBrowserOpen makes StartServer open the status page in the user's
// default browser once the listener is up.
func (m *Monitor) WithBrowserOpen() *Monitor {
	m.openOnRun = true
	return m
}

// RegisterSimulator attaches the simulator this monitor reports on.
func (m *Monitor) RegisterSimulator(s *sim.Simulator) {
	m.sim = s
}

// RegisterComponent adds a component to the monitor's inventory so it shows
// up in /api/list_components.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// StartServer starts the HTTP server in a background goroutine and returns
// once the listener is bound.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/resource", m.resource)
	r.HandleFunc("/api/profile", m.profile)
	http.Handle("/", r)

	actualAddr := ":0"
	if m.portNumber >= 1000 {
		actualAddr = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualAddr)
	dieOnErr(err)

	addr := listener.Addr().(*net.TCPAddr)
	url := fmt.Sprintf("http://localhost:%d", addr.Port)
	fmt.Fprintf(os.Stderr, "monitor: serving on %s\n", url)

	if m.openOnRun {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "monitor: could not open browser: %s\n", err)
		}
	}

	go func() {
		dieOnErr(http.Serve(listener, nil))
	}()
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, `{"now":%d}`, int64(m.sim.CurrentTime()))
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, `{"state":%q}`, m.sim.State())
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, len(m.components))
	for i, c := range m.components {
		names[i] = c.Name()
	}

	b, err := json.Marshal(names)
	dieOnErr(err)
	_, err = w.Write(b)
	dieOnErr(err)
}

type resourceResponse struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) resource(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceResponse{CPUPercent: cpuPercent, MemorySize: memInfo.RSS}

	b, err := json.Marshal(rsp)
	dieOnErr(err)
	_, err = w.Write(b)
	dieOnErr(err)
}

// profile captures one second of CPU profile and returns it decoded as
// JSON, the same round-trip the engine's original monitor used to make a
// profile.proto digestible by a browser-side viewer.
func (m *Monitor) profile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	dieOnErr(pprof.StartCPUProfile(buf))
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	b, err := json.Marshal(prof)
	dieOnErr(err)
	_, err = w.Write(b)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
