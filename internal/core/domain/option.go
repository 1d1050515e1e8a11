package domain

import (
	"fmt"

	"github.com/samber/mo"
)

type Kind int

const (
	KindChoice Kind = iota
	KindInteger
	KindUser
	KindChannel
)

type Choice struct {
	Label string
	Value string
}

// OptionSpec declares one command parameter. Min and Max are only read for
// KindInteger; Default replaces absent or out-of-range values.
type OptionSpec struct {
	Name        string
	Description string
	Kind        Kind
	Required    bool
	Choices     []Choice
	Min         *int
	Max         *int
	Default     any
}

func Range(lo, hi int) (*int, *int) {
	return &lo, &hi
}

// Values holds validated options keyed by name.
type Values map[string]any

// Validate normalizes raw option values against specs. Out-of-range integers
// are clamped to the declared default instead of being rejected.
func Validate(specs []OptionSpec, raw map[string]any) (Values, error) {
	values := make(Values, len(specs))

	for _, spec := range specs {
		v, ok := raw[spec.Name]
		if !ok || v == nil {
			if spec.Required {
				return nil, fmt.Errorf("%w: missing %s", ErrInvalidOption, spec.Name)
			}
			if spec.Default != nil {
				values[spec.Name] = spec.Default
			}
			continue
		}

		switch spec.Kind {
		case KindChoice:
			s, ok := v.(string)
			if !ok || !spec.hasChoice(s) {
				return nil, fmt.Errorf("%w: %s=%v", ErrInvalidOption, spec.Name, v)
			}
			values[spec.Name] = s
		case KindInteger:
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not an integer", ErrInvalidOption, spec.Name)
			}
			if (spec.Min != nil && n < *spec.Min) || (spec.Max != nil && n > *spec.Max) {
				if spec.Default != nil {
					values[spec.Name] = spec.Default
				}
				continue
			}
			values[spec.Name] = n
		case KindUser:
			a, ok := v.(Actor)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not a member", ErrInvalidOption, spec.Name)
			}
			values[spec.Name] = a
		case KindChannel:
			c, ok := v.(Channel)
			if !ok {
				return nil, fmt.Errorf("%w: %s is not a channel", ErrInvalidOption, spec.Name)
			}
			values[spec.Name] = c
		}
	}

	return values, nil
}

func (o OptionSpec) hasChoice(value string) bool {
	for _, c := range o.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label of the chosen value.
func (o OptionSpec) Label(value string) string {
	for _, c := range o.Choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func (v Values) String(name string) mo.Option[string] {
	s, ok := v[name].(string)
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(s)
}

func (v Values) Int(name string) mo.Option[int] {
	n, ok := v[name].(int)
	if !ok {
		return mo.None[int]()
	}
	return mo.Some(n)
}

func (v Values) Actor(name string) mo.Option[Actor] {
	a, ok := v[name].(Actor)
	if !ok {
		return mo.None[Actor]()
	}
	return mo.Some(a)
}

func (v Values) Channel(name string) mo.Option[Channel] {
	c, ok := v[name].(Channel)
	if !ok {
		return mo.None[Channel]()
	}
	return mo.Some(c)
}
