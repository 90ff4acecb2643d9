package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean column value. Stores disagree on how booleans are kept,
// so Scan accepts native booleans, integers and their text spellings.
type Flag bool

func (f *Flag) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		return f.scanText(string(v))
	case string:
		return f.scanText(v)
	default:
		return fmt.Errorf("unsupported flag value %T", src)
	}
	return nil
}

func (f *Flag) scanText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*f = false
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("unsupported flag value %q", s)
	}
	*f = Flag(b)
	return nil
}

// IDParam is a path identifier. Integers are bound as integers; anything
// else is bound verbatim and matches no row.
type IDParam struct {
	Raw string
}

func ParseID(raw string) IDParam {
	return IDParam{Raw: raw}
}

func (p IDParam) BindArg() interface{} {
	if n, err := strconv.ParseInt(p.Raw, 10, 64); err == nil {
		return n
	}
	return p.Raw
}

func (p IDParam) String() string {
	return p.Raw
}

// FlagParam is a boolean query-string parameter. A recognised value binds
// both its text and integer encodings so the predicate `col IN (?, ?)`
// matches either storage style. Unrecognised values bind verbatim and a
// missing value binds NULL, which in both cases selects nothing.
type FlagParam struct {
	Raw     string
	Present bool
	Value   bool
	Parsed  bool
}

func ParseFlag(raw string, present bool) FlagParam {
	p := FlagParam{Raw: raw, Present: present}
	if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
		p.Value = b
		p.Parsed = true
	}
	return p
}

func (p FlagParam) BindArgs() []interface{} {
	switch {
	case !p.Present:
		return []interface{}{nil, nil}
	case p.Parsed && p.Value:
		return []interface{}{"true", int64(1)}
	case p.Parsed:
		return []interface{}{"false", int64(0)}
	default:
		return []interface{}{p.Raw, p.Raw}
	}
}

func (p FlagParam) String() string {
	return p.Raw
}
