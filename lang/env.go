package lang

import (
	"iter"
	"log/slog"
)

// Scope is a read-only set of named values visible to an expression.
type Scope interface {
	// Lookup returns the value bound to name.
	Lookup(name string) (Value, bool)
	// Names yields every visible name in declaration order.
	Names() iter.Seq[string]
}

// Environment is the ordered, append-only mapping from declared names to
// their values. Only the parser adds to it; callers receive it read-only.
type Environment struct {
	names  []string
	values map[string]binding
}

type binding struct {
	index int
	value Value
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]binding)}
}

// define appends a new constant. Redeclaring a name is an error.
func (env *Environment) define(name string, value Value) error {
	if _, ok := env.values[name]; ok {
		return ErrAlreadyDeclared.With(slog.String("name", name))
	}

	env.values[name] = binding{index: len(env.names), value: value}
	env.names = append(env.names, name)

	return nil
}

// Lookup returns the value bound to name.
func (env *Environment) Lookup(name string) (Value, bool) {
	if env == nil {
		return Value{}, false
	}

	b, ok := env.values[name]

	return b.value, ok
}

// Len returns the number of declared constants.
func (env *Environment) Len() int {
	if env == nil {
		return 0
	}

	return len(env.names)
}

// Names yields the declared names in document order.
func (env *Environment) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if env == nil {
			return
		}

		for _, name := range env.names {
			if !yield(name) {
				return
			}
		}
	}
}

// All yields every constant and its value in document order.
func (env *Environment) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if env == nil {
			return
		}

		for _, name := range env.names {
			if !yield(name, env.values[name].value) {
				return
			}
		}
	}
}

// View returns a read-only snapshot of the constants declared so far.
// Constants declared after the call are not visible through it.
func (env *Environment) View() View {
	return View{env: env, size: env.Len()}
}

// Equal reports whether env and o declare the same names, in the same order,
// with equal values.
func (env *Environment) Equal(o *Environment) bool {
	if env.Len() != o.Len() {
		return false
	}

	if env.Len() == 0 {
		return true
	}

	for i, name := range env.names {
		if o.names[i] != name {
			return false
		}

		if !env.values[name].value.Equal(o.values[name].value) {
			return false
		}
	}

	return true
}

// ToMap converts the environment to a native Go map.
func (env *Environment) ToMap() map[string]any {
	result := make(map[string]any, env.Len())

	for name, value := range env.All() {
		result[name] = value.ToNative()
	}

	return result
}

// View is a fixed-size prefix of an [Environment]. It implements [Scope].
type View struct {
	env  *Environment
	size int
}

// Lookup returns the value bound to name if it was declared within the view.
func (v View) Lookup(name string) (Value, bool) {
	if v.env == nil {
		return Value{}, false
	}

	b, ok := v.env.values[name]
	if !ok || b.index >= v.size {
		return Value{}, false
	}

	return b.value, true
}

// Names yields the names declared within the view.
func (v View) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		if v.env == nil {
			return
		}

		for _, name := range v.env.names[:v.size] {
			if !yield(name) {
				return
			}
		}
	}
}

// Len returns the number of constants visible through the view.
func (v View) Len() int { return v.size }
