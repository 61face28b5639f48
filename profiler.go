package sazan

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/pprof/profile"
)

// The profiler records call stack snapshots at context push safepoints
// rather than from a timer goroutine, so profiles of single-threaded
// test workloads are deterministic. Samples are weighted with a nominal
// period when converted to pprof format.

const profNominalPeriod = 10 * time.Millisecond

type profSample struct {
	stack []string
	when  time.Time
}

type profiler struct {
	mu      sync.Mutex
	running bool
	w       io.Writer
	start   time.Time
	samples []profSample
}

var globalProfiler struct {
	enabled int32
	p       profiler
}

// ErrProfilerRunning is returned by StartProfile while a previous
// profile is still being collected. The profiler is global: one profile
// at a time, across all Runtime instances.
var ErrProfilerRunning = errors.New("profiler is already active")

// StartProfile enables stack sampling on all Runtime instances. The
// resulting profile is written to w in pprof format when StopProfile is
// called; a nil w skips the write and the profile is only returned.
func StartProfile(w io.Writer) error {
	p := &globalProfiler.p
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrProfilerRunning
	}
	p.w = w
	p.start = time.Now()
	p.samples = nil
	p.running = true
	atomic.StoreInt32(&globalProfiler.enabled, 1)
	return nil
}

// StopProfile disables sampling, builds the profile from the collected
// samples and writes it out if a writer was supplied to StartProfile.
func StopProfile() *profile.Profile {
	atomic.StoreInt32(&globalProfiler.enabled, 0)
	return globalProfiler.p.stop()
}

func (p *profiler) stop() *profile.Profile {
	p.mu.Lock()
	samples := p.samples
	w := p.w
	start := p.start
	p.samples = nil
	p.w = nil
	p.running = false
	p.mu.Unlock()

	pr := buildProfile(samples, time.Since(start))
	if w != nil {
		_ = pr.Write(w)
	}
	return pr
}

// profTick snapshots the current context stack, leaf frame first. It
// runs only when the enabled flag is set; the flag check is done by the
// caller outside the lock so the disabled path stays one atomic load.
func (r *Runtime) profTick() {
	stack := make([]string, 0, len(r.ctxStack))
	for i := len(r.ctxStack) - 1; i >= 0; i-- {
		stack = append(stack, frameName(r.ctxStack[i]))
	}

	p := &globalProfiler.p
	p.mu.Lock()
	if p.running {
		p.samples = append(p.samples, profSample{stack: stack, when: time.Now()})
	}
	p.mu.Unlock()
}

func frameName(ctx *Context) string {
	if ctx == nil || ctx.Function == nil {
		return "(program)"
	}
	if prop, ok := ctx.Function.self.getOwnPropStr("name").(*valueProperty); ok && prop.value != nil {
		if name := prop.value.String(); name != "" {
			return name
		}
	}
	return "(anonymous)"
}

func buildProfile(samples []profSample, dur time.Duration) *profile.Profile {
	pr := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "samples", Unit: "count"},
			{Type: "cpu", Unit: "nanoseconds"},
		},
		PeriodType:    &profile.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:        int64(profNominalPeriod),
		DurationNanos: int64(dur),
		TimeNanos:     time.Now().UnixNano(),
	}

	locs := make(map[string]*profile.Location)
	for _, s := range samples {
		sl := make([]*profile.Location, 0, len(s.stack))
		for _, name := range s.stack {
			loc := locs[name]
			if loc == nil {
				fn := &profile.Function{
					ID:         uint64(len(pr.Function) + 1),
					Name:       name,
					SystemName: name,
				}
				pr.Function = append(pr.Function, fn)
				loc = &profile.Location{
					ID:   uint64(len(pr.Location) + 1),
					Line: []profile.Line{{Function: fn}},
				}
				pr.Location = append(pr.Location, loc)
				locs[name] = loc
			}
			sl = append(sl, loc)
		}
		pr.Sample = append(pr.Sample, &profile.Sample{
			Location: sl,
			Value:    []int64{1, int64(profNominalPeriod)},
		})
	}
	return pr
}
