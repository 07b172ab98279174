package worker

import (
	"time"

	"github.com/spf13/cast"
)

// Func is the unit of work run by a Task
type Func[V any] func(args Args) (V, error)

// Call adapts a function that takes no arguments
func Call[V any](fn func() (V, error)) Func[V] {
	if fn == nil {
		return nil
	}
	return func(Args) (V, error) {
		return fn()
	}
}

// Args holds the positional and keyword arguments of a task.
// Both collections are copied on construction and never exposed directly.
type Args struct {
	positional []interface{}
	keyword    map[string]interface{}
}

// NewArgs creates an argument set from positional and keyword values
func NewArgs(positional []interface{}, keyword map[string]interface{}) Args {
	a := Args{}
	if len(positional) > 0 {
		a.positional = make([]interface{}, len(positional))
		copy(a.positional, positional)
	}
	if len(keyword) > 0 {
		a.keyword = make(map[string]interface{}, len(keyword))
		for k, v := range keyword {
			a.keyword[k] = v
		}
	}
	return a
}

// Len returns the number of positional arguments
func (a Args) Len() int {
	return len(a.positional)
}

// At returns positional argument i, or nil when out of range
func (a Args) At(i int) interface{} {
	if i < 0 || i >= len(a.positional) {
		return nil
	}
	return a.positional[i]
}

// Positional returns a copy of the positional arguments
func (a Args) Positional() []interface{} {
	out := make([]interface{}, len(a.positional))
	copy(out, a.positional)
	return out
}

// Keyword returns the keyword argument called name
func (a Args) Keyword(name string) (interface{}, bool) {
	v, ok := a.keyword[name]
	return v, ok
}

// Keywords returns a copy of the keyword arguments
func (a Args) Keywords() map[string]interface{} {
	out := make(map[string]interface{}, len(a.keyword))
	for k, v := range a.keyword {
		out[k] = v
	}
	return out
}

// Int converts positional argument i to int
func (a Args) Int(i int) (int, error) {
	return cast.ToIntE(a.At(i))
}

// String converts positional argument i to string
func (a Args) String(i int) (string, error) {
	return cast.ToStringE(a.At(i))
}

// Duration converts positional argument i to time.Duration.
// Strings are parsed with time.ParseDuration, numbers are nanoseconds.
func (a Args) Duration(i int) (time.Duration, error) {
	return cast.ToDurationE(a.At(i))
}

// KeywordInt converts keyword argument name to int, returning def when absent
func (a Args) KeywordInt(name string, def int) (int, error) {
	v, ok := a.keyword[name]
	if !ok {
		return def, nil
	}
	return cast.ToIntE(v)
}

// KeywordString converts keyword argument name to string, returning def when absent
func (a Args) KeywordString(name string, def string) (string, error) {
	v, ok := a.keyword[name]
	if !ok {
		return def, nil
	}
	return cast.ToStringE(v)
}
