package lang

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Type indicates the variant held by a [Value].
type Type int

const (
	TypeInteger Type = iota // integer
	TypeText                // text
	TypeArray               // array
	TypeDict                // dictionary
)

// Value is a tagged union of the four value variants. Exactly one of the
// payload fields is meaningful, selected by Type.
type Value struct {
	Type    Type
	Integer int64
	Text    string
	Items   []Value // For arrays; elements may themselves be arrays
	Entries []Entry // For dictionaries, in source order
}

// Entry is a single dictionary key/value pair. Dictionary values are always
// text.
type Entry struct {
	Key   string
	Value string
}

// NewInteger creates a new integer value.
func NewInteger(n int64) Value {
	return Value{Type: TypeInteger, Integer: n}
}

// NewText creates a new text value. The text is stored verbatim.
func NewText(s string) Value {
	return Value{Type: TypeText, Text: s}
}

// NewArray creates a new array value from the given elements.
func NewArray(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{Type: TypeArray, Items: items}
}

// NewDict creates a new dictionary value from the given entries.
//
// A key that appears more than once keeps its first position and takes the
// last value.
func NewDict(entries ...Entry) Value {
	v := Value{Type: TypeDict, Entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		v.Entries = v.setEntry(e)
	}

	return v
}

func (v Value) setEntry(e Entry) []Entry {
	for i := range v.Entries {
		if v.Entries[i].Key == e.Key {
			v.Entries[i].Value = e.Value

			return v.Entries
		}
	}

	return append(v.Entries, e)
}

// Get returns the dictionary value stored under key.
func (v Value) Get(key string) (string, bool) {
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return "", false
}

// Len returns the element count of an array or the character count of a
// text value. It reports false for other variants.
func (v Value) Len() (int, bool) {
	switch v.Type {
	case TypeArray:
		return len(v.Items), true
	case TypeText:
		return utf8.RuneCountInString(v.Text), true
	default:
		return 0, false
	}
}

// Equal reports whether v and o hold the same value. Dictionary entry order
// is not significant.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}

	switch v.Type {
	case TypeInteger:
		return v.Integer == o.Integer

	case TypeText:
		return v.Text == o.Text

	case TypeArray:
		if len(v.Items) != len(o.Items) {
			return false
		}

		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}

		return true

	case TypeDict:
		if len(v.Entries) != len(o.Entries) {
			return false
		}

		for _, e := range v.Entries {
			if s, ok := o.Get(e.Key); !ok || s != e.Value {
				return false
			}
		}

		return true

	default:
		return false
	}
}

// ToNative converts v to its native Go representation: int64, string,
// []any or map[string]any.
func (v Value) ToNative() any {
	switch v.Type {
	case TypeInteger:
		return v.Integer

	case TypeText:
		return v.Text

	case TypeArray:
		result := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			result = append(result, item.ToNative())
		}

		return result

	case TypeDict:
		result := make(map[string]any, len(v.Entries))
		for _, e := range v.Entries {
			result[e.Key] = e.Value
		}

		return result

	default:
		return nil
	}
}

// String returns v in cfglang source syntax.
func (v Value) String() string {
	var sb strings.Builder

	v.writeSource(&sb)

	return sb.String()
}

func (v Value) writeSource(sb *strings.Builder) {
	switch v.Type {
	case TypeInteger:
		writeInteger(sb, v.Integer)

	case TypeText:
		sb.WriteString("'" + v.Text + "'")

	case TypeArray:
		sb.WriteString("<<")

		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(",")
			}

			sb.WriteString(" ")
			item.writeSource(sb)
		}

		sb.WriteString(" >>")

	case TypeDict:
		sb.WriteString("[")

		for _, e := range v.Entries {
			sb.WriteString(" " + e.Key + " ['" + e.Value + "']")
		}

		sb.WriteString(" ]")
	}
}

// writeInteger writes n as a literal. There are no negative literals, so a
// negative n is written as a subtraction from zero. The minimum integer has
// no positive counterpart and is written as (0 - max) - 1.
func writeInteger(sb *strings.Builder, n int64) {
	switch {
	case n >= 0:
		sb.WriteString(strconv.FormatInt(n, 10))
	case n == math.MinInt64:
		sb.WriteString("?[0 - " + strconv.FormatInt(math.MaxInt64, 10) + " - 1]")
	default:
		sb.WriteString("?[0 " + strconv.FormatInt(-n, 10) + " -]")
	}
}
