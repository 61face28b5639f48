package sazan

import "sync/atomic"

// Context is one activation record: the active lexical environment, the
// variable-declaration target, the this value, the strict-mode flag and
// optional call metadata. Contexts are pushed and popped in strict LIFO
// order around every call, including re-entrant calls triggered by
// coercion callouts and accessor dispatch.
type Context struct {
	LexicalEnv  *Environment
	VariableEnv *Environment
	This        Value
	Strict      bool

	Function  *Object
	Arguments []Value
	NewTarget Value
}

// PushContext activates ctx. Exceeding the configured depth raises
// StackOverflowError rather than truncating silently.
func (r *Runtime) PushContext(ctx *Context) {
	if len(r.ctxStack) >= r.limits.maxCallStackDepth {
		throwStackOverflow("Maximum call stack size exceeded")
	}
	r.ctxStack = append(r.ctxStack, ctx)
	if atomic.LoadInt32(&globalProfiler.enabled) != 0 {
		r.profTick()
	}
}

// PopContext deactivates and returns the top context.
func (r *Runtime) PopContext() *Context {
	l := len(r.ctxStack)
	if l == 0 {
		return nil
	}
	ctx := r.ctxStack[l-1]
	r.ctxStack[l-1] = nil
	r.ctxStack = r.ctxStack[:l-1]
	return ctx
}

// CurrentContext returns the active context, or nil outside any call.
func (r *Runtime) CurrentContext() *Context {
	if l := len(r.ctxStack); l > 0 {
		return r.ctxStack[l-1]
	}
	return nil
}

// StackDepth returns the number of live contexts.
func (r *Runtime) StackDepth() int {
	return len(r.ctxStack)
}

// restoreStack truncates the context stack back to depth. It is the
// unwinding hook: a recovering frame releases every context pushed by
// the failed operation so nothing leaks past the error.
func (r *Runtime) restoreStack(depth int) {
	if depth < 0 || depth > len(r.ctxStack) {
		return
	}
	for i := depth; i < len(r.ctxStack); i++ {
		r.ctxStack[i] = nil
	}
	r.ctxStack = r.ctxStack[:depth]
}

// currentStrict reports the ambient strict-mode flag.
func (r *Runtime) currentStrict() bool {
	if ctx := r.CurrentContext(); ctx != nil {
		return ctx.Strict
	}
	return false
}

// currentEnv returns the ambient lexical environment, defaulting to the
// global environment outside any call.
func (r *Runtime) currentEnv() *Environment {
	if ctx := r.CurrentContext(); ctx != nil && ctx.LexicalEnv != nil {
		return ctx.LexicalEnv
	}
	return r.globalEnv
}
