// Package sync runs periodic refresh jobs in the background, such as
// re-fetching the weather while the dashboard stays open.
package sync

import (
	"context"
	gosync "sync"
	"time"

	"go.uber.org/zap"
)

// State is the state of one job.
type State int

const (
	Idle State = iota
	Running
	Failed
)

// Status is the last known state of one job.
type Status struct {
	Name    string
	State   State
	LastRun time.Time
	Error   error
}

// Result is sent after every run of a job.
type Result struct {
	Name string
	Err  error
	At   time.Time
}

// Job is a named refresh function run every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// runTimeout bounds a single run of a job.
const runTimeout = 30 * time.Second

// defaultInterval applies to jobs registered without an interval.
const defaultInterval = 2 * time.Minute

// Poller runs registered jobs on their own tickers.
type Poller struct {
	log      *zap.Logger
	clock    func() time.Time
	jobs     []Job
	statuses map[string]*Status
	triggers map[string]chan struct{}
	resultCh chan Result
	stopCh   chan struct{}
	wg       gosync.WaitGroup
	mu       gosync.Mutex
	running  bool
}

// New creates a poller. A nil logger discards logs.
func New(logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		log:      logger,
		clock:    time.Now,
		statuses: make(map[string]*Status),
		triggers: make(map[string]chan struct{}),
		resultCh: make(chan Result, 16),
		stopCh:   make(chan struct{}),
	}
}

// Register adds a job. Jobs registered after Start are not run.
func (p *Poller) Register(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if job.Interval <= 0 {
		job.Interval = defaultInterval
	}
	p.jobs = append(p.jobs, job)
	p.statuses[job.Name] = &Status{Name: job.Name, State: Idle}
	p.triggers[job.Name] = make(chan struct{}, 1)
}

// Start runs every job once immediately and then on its interval, until
// Stop is called or ctx is done.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	jobs := append([]Job(nil), p.jobs...)
	p.mu.Unlock()

	for _, job := range jobs {
		p.wg.Add(1)
		go p.loop(ctx, job, p.triggers[job.Name])
	}
}

// Stop halts every job and waits for in-flight runs to finish. A stopped
// poller cannot be restarted.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	close(p.stopCh)
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
}

// Results delivers one Result per run. Results are dropped while the
// channel is full.
func (p *Poller) Results() <-chan Result {
	return p.resultCh
}

// Trigger asks the named job to run now. Unknown names are ignored, and a
// trigger already pending absorbs further ones.
func (p *Poller) Trigger(name string) {
	p.mu.Lock()
	ch, ok := p.triggers[name]
	p.mu.Unlock()
	if !ok {
		return
	}

	select {
	case ch <- struct{}{}:
	default:
	}
}

// Statuses returns the status of every registered job.
func (p *Poller) Statuses() []Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Status, 0, len(p.jobs))
	for _, job := range p.jobs {
		out = append(out, *p.statuses[job.Name])
	}
	return out
}

func (p *Poller) loop(ctx context.Context, job Job, trigger <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	p.run(ctx, job)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.run(ctx, job)
		case <-trigger:
			p.run(ctx, job)
		}
	}
}

func (p *Poller) run(ctx context.Context, job Job) {
	p.setStatus(job.Name, Running, nil)

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	err := job.Run(ctx)
	if err != nil {
		p.log.Warn("refresh failed", zap.String("job", job.Name), zap.Error(err))
		p.setStatus(job.Name, Failed, err)
	} else {
		p.setStatus(job.Name, Idle, nil)
	}

	select {
	case p.resultCh <- Result{Name: job.Name, Err: err, At: p.clock()}:
	default:
	}
}

func (p *Poller) setStatus(name string, state State, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[name]
	if !ok {
		return
	}
	status.State = state
	status.Error = err
	if err == nil && state == Idle {
		status.LastRun = p.clock()
	}
}
