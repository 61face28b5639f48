package sazan

import (
	"fmt"
)

// engineError is implemented by every error the runtime core can raise.
// All of them are recoverable and participate in the engine's own
// throw/catch discipline: deep code panics with an engineError (or an
// *Exception carrying an arbitrary thrown value) and tryFunc recovers it
// at an API boundary.
type engineError interface {
	error
	engineError()
}

// TypeCoercionError is raised when a value cannot be converted to the
// requested primitive kind: ToPrimitive ordering failure, implicit
// symbol/bigint to number conversion, or calling a non-function.
type TypeCoercionError struct {
	msg string
}

func (e *TypeCoercionError) Error() string { return e.msg }
func (e *TypeCoercionError) engineError()  {}

// UnboundIdentifierError is raised by a strict-mode lookup or assignment
// of a name that is absent from the entire environment chain.
type UnboundIdentifierError struct {
	Name string
}

func (e *UnboundIdentifierError) Error() string {
	return fmt.Sprintf("%s is not defined", e.Name)
}
func (e *UnboundIdentifierError) engineError() {}

// BindingNotInitializedError is raised when a declared binding is read
// before its initialization (the temporal dead zone). It is deliberately
// distinct from UnboundIdentifierError: the binding exists.
type BindingNotInitializedError struct {
	Name string
}

func (e *BindingNotInitializedError) Error() string {
	return fmt.Sprintf("Cannot access '%s' before initialization", e.Name)
}
func (e *BindingNotInitializedError) engineError() {}

// ImmutableBindingError is raised on any assignment to a const binding.
type ImmutableBindingError struct {
	Name string
}

func (e *ImmutableBindingError) Error() string {
	return fmt.Sprintf("Assignment to constant variable '%s'", e.Name)
}
func (e *ImmutableBindingError) engineError() {}

// RedeclarationError is raised when a binding is defined under a name
// that already exists in the same environment and the (existing, new)
// kind pair is not in the compatibility table.
type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("Identifier '%s' has already been declared", e.Name)
}
func (e *RedeclarationError) engineError() {}

// PropertyDefinitionRejected reports a define/delete that violated a
// descriptor invariant. The store itself fails by returning false;
// callers pass throw=true when the failure should surface as this error.
type PropertyDefinitionRejected struct {
	msg string
}

func (e *PropertyDefinitionRejected) Error() string { return e.msg }
func (e *PropertyDefinitionRejected) engineError()  {}

// StackOverflowError is raised when the execution context stack or a
// prototype chain walk exceeds the configured depth. It unwinds like any
// other engine error; the stack is restored by the recovering frame.
type StackOverflowError struct {
	msg string
}

func (e *StackOverflowError) Error() string { return e.msg }
func (e *StackOverflowError) engineError()  {}

// GeneratorReentryError is raised by next/throw/return on a generator
// that is already running.
type GeneratorReentryError struct{}

func (e *GeneratorReentryError) Error() string {
	return "Generator is already running"
}
func (e *GeneratorReentryError) engineError() {}

// Exception carries an arbitrary thrown value (typically produced by
// user code inside an accessor or valueOf callout) through Go panics.
type Exception struct {
	val Value
}

func (e *Exception) Value() Value { return e.val }

func (e *Exception) Error() string {
	if e.val == nil {
		return "Exception: <nil>"
	}
	return e.val.String()
}
func (e *Exception) engineError() {}

// Throw panics with the given value wrapped in an *Exception. It is the
// hook the evaluator and native functions use to raise script-level
// errors through the core.
func Throw(v Value) {
	panic(&Exception{val: v})
}

func throwTypeError(format string, args ...interface{}) {
	panic(&TypeCoercionError{msg: fmt.Sprintf(format, args...)})
}

func throwStackOverflow(format string, args ...interface{}) {
	panic(&StackOverflowError{msg: fmt.Sprintf(format, args...)})
}

// typeErrorResult reports a failed operation: it panics when throw is
// set and otherwise leaves the caller to return false.
func typeErrorResult(throw bool, format string, args ...interface{}) {
	if throw {
		throwTypeError(format, args...)
	}
}

func rejectResult(throw bool, format string, args ...interface{}) bool {
	if throw {
		panic(&PropertyDefinitionRejected{msg: fmt.Sprintf(format, args...)})
	}
	return false
}

// tryFunc runs f, converting a panicking engineError into an ordinary
// error return. Non-engine panics are repropagated untouched.
func tryFunc(f func()) (err error) {
	defer func() {
		if x := recover(); x != nil {
			if ee, ok := x.(engineError); ok {
				err = ee
				return
			}
			panic(x)
		}
	}()

	f()
	return nil
}
