package sazan

// GeneratorState is the suspend/resume machine state.
type GeneratorState int

const (
	GeneratorStateCreated GeneratorState = iota
	GeneratorStateSuspendedStart
	GeneratorStateSuspendedYield
	GeneratorStateRunning
	GeneratorStateCompleted
)

func (gs GeneratorState) String() string {
	switch gs {
	case GeneratorStateCreated:
		return "created"
	case GeneratorStateSuspendedStart:
		return "suspended-at-start"
	case GeneratorStateSuspendedYield:
		return "suspended-after-yield"
	case GeneratorStateRunning:
		return "running"
	case GeneratorStateCompleted:
		return "completed"
	}
	return "unknown"
}

// ResumeMode distinguishes the three ways a suspended generator can be
// driven.
type ResumeMode int

const (
	ResumeNext ResumeMode = iota
	ResumeThrow
	ResumeReturn
)

// Step is the outcome of running a generator body segment: Next non-nil
// means the body yielded Value and parked the rest of itself; Next nil
// means the body completed with Value as its return value.
type Step struct {
	Value Value
	Next  Continuation
}

// Continuation is an explicit saved-continuation value: the parked
// remainder of a generator body. No host coroutines are involved, which
// keeps reentry detection and completion idempotence exact. The mode
// and value communicate how the generator was resumed (next/throw/
// return); a continuation honouring return semantics runs its cleanup
// and completes.
type Continuation func(mode ResumeMode, v Value) Step

// Generator drives a suspended computation through the
// created/suspended/running/completed state machine. The execution
// context active at the suspension point is parked on the generator
// (removed from the live stack) and pushed back on every resume.
type Generator struct {
	runtime *Runtime
	state   GeneratorState
	cont    Continuation
	parked  *Context
}

// NewGenerator creates a generator from a body continuation and the
// context it should run in. The context is parked, not live.
func (r *Runtime) NewGenerator(body Continuation, ctx *Context) *Generator {
	return &Generator{
		runtime: r,
		state:   GeneratorStateCreated,
		cont:    body,
		parked:  ctx,
	}
}

// Prime marks argument binding done, moving a created generator to the
// suspended-at-start state. Resuming works from either state.
func (g *Generator) Prime() {
	if g.state == GeneratorStateCreated {
		g.state = GeneratorStateSuspendedStart
	}
}

// State returns the current machine state.
func (g *Generator) State() GeneratorState {
	return g.state
}

// Next resumes the generator, sending v to the suspended yield
// expression. It reports the next yielded (or final) value and whether
// the generator completed.
func (g *Generator) Next(v Value) (Value, bool) {
	return g.resume(ResumeNext, v)
}

// Return forces completion from wherever the generator is suspended.
// Once completed it stays completed: repeated calls keep reporting
// {value, done:true} without re-executing any body code.
func (g *Generator) Return(v Value) (Value, bool) {
	return g.resume(ResumeReturn, v)
}

// Throw injects a thrown value at the suspension point. On a generator
// that never started or already completed the value propagates to the
// caller unchanged.
func (g *Generator) Throw(v Value) (Value, bool) {
	return g.resume(ResumeThrow, v)
}

func (g *Generator) resume(mode ResumeMode, v Value) (Value, bool) {
	switch g.state {
	case GeneratorStateRunning:
		panic(&GeneratorReentryError{})
	case GeneratorStateCompleted:
		switch mode {
		case ResumeNext:
			return _undefined, true
		case ResumeReturn:
			return v, true
		default:
			panic(&Exception{val: v})
		}
	case GeneratorStateCreated, GeneratorStateSuspendedStart:
		// Body code never ran; return/throw complete without running it.
		if mode == ResumeReturn {
			g.finish()
			return v, true
		}
		if mode == ResumeThrow {
			g.finish()
			panic(&Exception{val: v})
		}
	}

	cont := g.cont
	g.cont = nil
	g.state = GeneratorStateRunning

	r := g.runtime
	depth := len(r.ctxStack)
	if g.parked != nil {
		r.PushContext(g.parked)
	}

	completed := true
	defer func() {
		r.restoreStack(depth)
		if completed {
			g.finish()
		}
	}()

	step := cont(mode, v)
	if step.Next != nil {
		completed = false
		g.state = GeneratorStateSuspendedYield
		g.cont = step.Next
		return step.Value, false
	}
	if step.Value == nil {
		return _undefined, true
	}
	return step.Value, true
}

// finish releases the parked context and pins the completed state.
func (g *Generator) finish() {
	g.state = GeneratorStateCompleted
	g.cont = nil
	g.parked = nil
}

// CreateIterResult builds a {value, done} result object.
func (r *Runtime) CreateIterResult(value Value, done bool) *Object {
	if value == nil {
		value = _undefined
	}
	o := r.NewObject()
	o.self._putProp("value", value, true, true, true)
	o.self._putProp("done", valueBool(done), true, true, true)
	return o
}
