package sazan

var defaultOptions = options{
	maxCallStackDepth: 2048,
	maxPrototypeDepth: 1000,
}

// Option configures a Runtime at construction time.
type Option interface {
	apply(*options)
}

type options struct {
	maxCallStackDepth int
	maxPrototypeDepth int
	invoker           Invoker
}

type funcOption struct {
	f func(*options)
}

func (fdo *funcOption) apply(do *options) {
	fdo.f(do)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithMaxCallStackDepth sets the maximum number of live execution
// contexts before a push raises StackOverflowError.
func WithMaxCallStackDepth(depth int) Option {
	return newFuncOption(func(o *options) {
		if depth > 0 {
			o.maxCallStackDepth = depth
		}
	})
}

// WithMaxPrototypeDepth sets the hop budget for prototype chain walks.
// Chains may legally contain cycles; the budget bounds every walk.
func WithMaxPrototypeDepth(depth int) Option {
	return newFuncOption(func(o *options) {
		if depth > 0 {
			o.maxPrototypeDepth = depth
		}
	})
}

// WithInvoker injects the call machinery used for engine-initiated
// callouts (accessors, coercion methods). The default invoker calls
// native functions directly.
func WithInvoker(inv Invoker) Option {
	return newFuncOption(func(o *options) {
		o.invoker = inv
	})
}
