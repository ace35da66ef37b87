// Package monitoring serves the state of a running flash simulation over
// HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/flashsim/flash/blockcache"
	"github.com/sarchlab/flashsim/monitoring/web"
)

// Monitor keeps the latest cache report and serves it to a browser. It is a
// blockcache.ReportSink.
type Monitor struct {
	portNumber    int
	openBrowser   bool
	profileLength time.Duration

	reportLock sync.Mutex
	latest     *blockcache.Report
	numReports int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileLength: time.Second,
	}
}

// WithPortNumber sets the port number of the monitor. Port numbers below 1000
// select a random port.
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

// WithBrowser makes StartServer open the monitor page in a browser.
func (m *Monitor) WithBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// AcceptReport keeps report as the latest one.
func (m *Monitor) AcceptReport(report blockcache.Report) {
	m.reportLock.Lock()
	defer m.reportLock.Unlock()

	m.latest = &report
	m.numReports++
}

// LatestReport returns the last report received and whether there is one.
func (m *Monitor) LatestReport() (blockcache.Report, bool) {
	m.reportLock.Lock()
	defer m.reportLock.Unlock()

	if m.latest == nil {
		return blockcache.Report{}, false
	}

	return *m.latest, true
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		id:        xid.New().String(),
		name:      name,
		startTime: time.Now(),
		total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/report", m.serializeReport)
	r.HandleFunc("/api/report/{field}", m.serializeReportField)
	r.HandleFunc("/api/summary", m.summary)
	r.HandleFunc("/api/hotblocks", m.listHotBlocks)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the URL of the
// monitor page.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = fmt.Sprintf(":%d", m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	if m.openBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
		}
	}

	return url
}

func (m *Monitor) reportOr404(w http.ResponseWriter) *blockcache.Report {
	report, ok := m.LatestReport()
	if !ok {
		http.Error(w, "no report yet", http.StatusNotFound)
		return nil
	}

	return &report
}

func (m *Monitor) serializeReport(w http.ResponseWriter, _ *http.Request) {
	report := m.reportOr404(w)
	if report == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(report)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) serializeReportField(w http.ResponseWriter, r *http.Request) {
	field := mux.Vars(r)["field"]

	report := m.reportOr404(w)
	if report == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(report)
	serializer.SetMaxDepth(2)

	err := serializer.SetEntryPoint(strings.Split(field, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type summaryRsp struct {
	NumReports     int     `json:"num_reports"`
	Time           uint64  `json:"time"`
	Accesses       uint64  `json:"accesses"`
	HitsSame       uint64  `json:"hits_same"`
	HitsOther      uint64  `json:"hits_other"`
	Misses         uint64  `json:"misses"`
	AccessRate     float64 `json:"access_rate"`
	MissRate       float64 `json:"miss_rate"`
	BusUtilization float64 `json:"bus_utilization"`
}

func (m *Monitor) summary(w http.ResponseWriter, _ *http.Request) {
	m.reportLock.Lock()
	rsp := summaryRsp{NumReports: m.numReports}

	if m.latest != nil {
		rsp.Time = uint64(m.latest.Time)
		rsp.Accesses = m.latest.Accesses
		rsp.HitsSame = m.latest.HitsSame
		rsp.HitsOther = m.latest.HitsOther
		rsp.Misses = m.latest.Misses
		rsp.AccessRate = m.latest.AccessRate
		rsp.MissRate = m.latest.MissRate
		rsp.BusUtilization = m.latest.BusUtilization
	}
	m.reportLock.Unlock()

	writeJSON(w, rsp)
}

type hotBlockRsp struct {
	Number   uint32 `json:"number"`
	Misses   uint32 `json:"misses"`
	Address  uint32 `json:"address"`
	VirtAddr uint32 `json:"virt_addr"`
	Symbol   string `json:"symbol"`
}

func (m *Monitor) listHotBlocks(w http.ResponseWriter, _ *http.Request) {
	rsp := []hotBlockRsp{}

	if report, ok := m.LatestReport(); ok {
		for _, hot := range report.HotBlocks {
			rsp = append(rsp, hotBlockRsp(hot))
		}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	rsp := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		rsp = append(rsp, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	writeJSON(w, rsp)
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

	time.Sleep(m.profileLength)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
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
