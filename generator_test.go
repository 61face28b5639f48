package sazan

import (
	"testing"
)

// counterBody yields 1 and 2 and then returns 3, counting how many
// body segments actually ran.
func counterBody(ran *int) Continuation {
	var after1, after2 Continuation
	after2 = func(mode ResumeMode, v Value) Step {
		*ran++
		switch mode {
		case ResumeReturn:
			return Step{Value: v}
		case ResumeThrow:
			panic(&Exception{val: v})
		}
		return Step{Value: intToValue(3)}
	}
	after1 = func(mode ResumeMode, v Value) Step {
		*ran++
		switch mode {
		case ResumeReturn:
			return Step{Value: v}
		case ResumeThrow:
			panic(&Exception{val: v})
		}
		return Step{Value: intToValue(2), Next: after2}
	}
	return func(mode ResumeMode, v Value) Step {
		*ran++
		return Step{Value: intToValue(1), Next: after1}
	}
}

func TestGeneratorYieldSequence(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	if g.State() != GeneratorStateCreated {
		t.Fatalf("unexpected initial state: %v", g.State())
	}
	g.Prime()
	if g.State() != GeneratorStateSuspendedStart {
		t.Fatalf("unexpected state after priming: %v", g.State())
	}

	for i, expected := range []struct {
		value int64
		done  bool
	}{
		{1, false},
		{2, false},
		{3, true},
	} {
		v, done := g.Next(_undefined)
		if done != expected.done || !v.SameAs(intToValue(expected.value)) {
			t.Fatalf("step %d: expected {%d, %v}, got {%v, %v}", i, expected.value, expected.done, v, done)
		}
	}
	if g.State() != GeneratorStateCompleted {
		t.Fatalf("unexpected final state: %v", g.State())
	}
	if ran != 3 {
		t.Fatalf("expected 3 body segments, ran %d", ran)
	}
}

func TestGeneratorCompletedIdempotent(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	g.Prime()
	for {
		if _, done := g.Next(_undefined); done {
			break
		}
	}
	before := ran

	for i := 0; i < 3; i++ {
		v, done := g.Next(_undefined)
		if !done || !IsUndefined(v) {
			t.Fatalf("next on a completed generator must report {undefined, true}, got {%v, %v}", v, done)
		}
		v, done = g.Return(intToValue(5))
		if !done || !v.SameAs(intToValue(5)) {
			t.Fatalf("return on a completed generator must report {v, true}, got {%v, %v}", v, done)
		}
	}
	if ran != before {
		t.Fatal("no body code may run after completion")
	}
}

func TestGeneratorReturnBeforeStart(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	g.Prime()
	v, done := g.Return(intToValue(7))
	if !done || !v.SameAs(intToValue(7)) {
		t.Fatalf("expected {7, true}, got {%v, %v}", v, done)
	}
	if g.State() != GeneratorStateCompleted {
		t.Fatalf("unexpected state: %v", g.State())
	}
	if ran != 0 {
		t.Fatal("return before the first resume must not run body code")
	}
}

func TestGeneratorReturnWhileSuspended(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	g.Prime()
	g.Next(_undefined)

	v, done := g.Return(intToValue(9))
	if !done || !v.SameAs(intToValue(9)) {
		t.Fatalf("expected {9, true}, got {%v, %v}", v, done)
	}
	// The parked continuation observed the return and ran its cleanup.
	if ran != 2 {
		t.Fatalf("expected the suspended segment to run once for cleanup, ran %d", ran)
	}
	if g.State() != GeneratorStateCompleted {
		t.Fatalf("unexpected state: %v", g.State())
	}
}

func TestGeneratorThrow(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	g.Prime()
	g.Next(_undefined)

	boom := newStringValue("boom")
	err := tryFunc(func() {
		g.Throw(boom)
	})
	exc, ok := err.(*Exception)
	if !ok {
		t.Fatalf("expected *Exception, got %v", err)
	}
	if !exc.Value().SameAs(boom) {
		t.Fatalf("thrown value lost: %v", exc.Value())
	}
	if g.State() != GeneratorStateCompleted {
		t.Fatalf("an uncaught injected throw must complete the generator, state %v", g.State())
	}
	if v, done := g.Next(_undefined); !done || !IsUndefined(v) {
		t.Fatal("generator must stay completed after throw")
	}
}

func TestGeneratorThrowBeforeStart(t *testing.T) {
	r := New()
	var ran int
	g := r.NewGenerator(counterBody(&ran), nil)
	g.Prime()
	err := tryFunc(func() {
		g.Throw(newStringValue("early"))
	})
	if _, ok := err.(*Exception); !ok {
		t.Fatalf("expected *Exception, got %v", err)
	}
	if ran != 0 {
		t.Fatal("throw before the first resume must not run body code")
	}
	if g.State() != GeneratorStateCompleted {
		t.Fatalf("unexpected state: %v", g.State())
	}
}

func TestGeneratorReentry(t *testing.T) {
	r := New()
	var g *Generator
	body := func(mode ResumeMode, v Value) Step {
		g.Next(_undefined) // reentrant resume of the running generator
		return Step{Value: _undefined}
	}
	g = r.NewGenerator(body, nil)
	g.Prime()
	err := tryFunc(func() {
		g.Next(_undefined)
	})
	if _, ok := err.(*GeneratorReentryError); !ok {
		t.Fatalf("expected GeneratorReentryError, got %v", err)
	}
}

func TestGeneratorSentValue(t *testing.T) {
	r := New()
	var received Value
	after := func(mode ResumeMode, v Value) Step {
		received = v
		return Step{Value: v}
	}
	body := func(mode ResumeMode, v Value) Step {
		return Step{Value: intToValue(1), Next: after}
	}
	g := r.NewGenerator(body, nil)
	g.Prime()
	g.Next(_undefined)
	v, done := g.Next(intToValue(42))
	if !done || !v.SameAs(intToValue(42)) {
		t.Fatalf("expected the sent value to round-trip, got {%v, %v}", v, done)
	}
	if !received.SameAs(intToValue(42)) {
		t.Fatal("the suspended segment must observe the sent value")
	}
}

func TestGeneratorParkedContext(t *testing.T) {
	r := New()
	env := r.NewEnvironment(r.GlobalEnvironment())
	parked := &Context{LexicalEnv: env, This: Undefined()}

	var insideDepth int
	var insideCtx *Context
	body := func(mode ResumeMode, v Value) Step {
		insideDepth = r.StackDepth()
		insideCtx = r.CurrentContext()
		return Step{Value: _undefined}
	}
	g := r.NewGenerator(body, parked)
	g.Prime()

	if r.StackDepth() != 0 {
		t.Fatal("the parked context must not be on the live stack")
	}
	g.Next(_undefined)
	if insideDepth != 1 || insideCtx != parked {
		t.Fatalf("the parked context must be live during the body, depth=%d", insideDepth)
	}
	if r.StackDepth() != 0 {
		t.Fatal("the context must be released after the body completes")
	}
}

func TestCreateIterResult(t *testing.T) {
	r := New()
	o := r.CreateIterResult(intToValue(1), false)
	if !o.Get("value").SameAs(intToValue(1)) {
		t.Fatalf("unexpected value: %v", o.Get("value"))
	}
	if !o.Get("done").SameAs(valueFalse) {
		t.Fatalf("unexpected done: %v", o.Get("done"))
	}
	o = r.CreateIterResult(nil, true)
	if !IsUndefined(o.Get("value")) || !o.Get("done").SameAs(valueTrue) {
		t.Fatal("a nil value defaults to undefined")
	}
}
