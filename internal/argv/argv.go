// Package argv turns a subcommand, positional arguments and ordered
// options into the flat argument vector the rclone binary expects.
//
// Option values follow rclone's flag conventions:
//
//	true        --key
//	false       --no-key
//	"value"     --key value
//	nil         (omitted)
//
// Any other value is emitted as --key followed by fmt.Sprint(value).
// Values are never quoted, escaped or coerced; the receiving process owns
// its argv parsing.
package argv

import (
	"fmt"
	"sort"
	"strings"
)

// Option is a single named option with its value.
type Option struct {
	Name  string
	Value any
}

// Options is an ordered list of options. Marshal emits them in slice order.
type Options []Option

// Set appends an option, or replaces the value of an existing option with
// the same name in place.
func (o Options) Set(name string, value any) Options {
	for i := range o {
		if o[i].Name == name {
			o[i].Value = value
			return o
		}
	}
	return append(o, Option{Name: name, Value: value})
}

// Get returns the value of the named option.
func (o Options) Get(name string) (any, bool) {
	for _, opt := range o {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return nil, false
}

// Bool is shorthand for a single boolean option.
func Bool(name string, value bool) Option {
	return Option{Name: name, Value: value}
}

// String is shorthand for a single string option.
func String(name, value string) Option {
	return Option{Name: name, Value: value}
}

// FromMap converts a map into Options. Go maps have no iteration order, so
// keys are sorted to keep the resulting argv deterministic.
func FromMap(m map[string]any) Options {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make(Options, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, Option{Name: k, Value: m[k]})
	}
	return opts
}

// Marshal builds the argument vector for one invocation.
//
// The subcommand comes first (a multi-word subcommand such as
// "config create" is split into its words), followed by the positional
// arguments in order, followed by the expanded options. An empty
// subcommand is omitted, so Marshal("", v, nil) returns a copy of v.
func Marshal(subcommand string, args []string, opts Options) []string {
	out := make([]string, 0, len(args)+2*len(opts)+2)

	out = append(out, strings.Fields(subcommand)...)
	out = append(out, args...)

	for _, opt := range opts {
		out = append(out, expand(opt)...)
	}

	return out
}

// expand renders one option as zero, one or two tokens.
func expand(opt Option) []string {
	switch v := opt.Value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return []string{"--" + opt.Name}
		}
		return []string{"--no-" + opt.Name}
	case string:
		return []string{"--" + opt.Name, v}
	case *string:
		if v == nil {
			return nil
		}
		return []string{"--" + opt.Name, *v}
	case *bool:
		if v == nil {
			return nil
		}
		return expand(Option{Name: opt.Name, Value: *v})
	default:
		return []string{"--" + opt.Name, fmt.Sprint(v)}
	}
}
