package fsabuilder

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/statewalk/fsa/pkg/byteclass"
)

var coreRules = map[string]func() byteclass.Class{
	"ALPHA":  byteclass.Alpha,
	"BIT":    byteclass.Bit,
	"CHAR":   byteclass.Char,
	"CR":     byteclass.CR,
	"LF":     byteclass.LF,
	"CRLF":   byteclass.CRLF,
	"CTL":    byteclass.CTL,
	"DIGIT":  byteclass.Digit,
	"DQUOTE": byteclass.DQuote,
	"HEXDIG": byteclass.HexDig,
	"HTAB":   byteclass.HTab,
	"LWSP":   byteclass.LWSP,
	"OCTET":  byteclass.Octet,
	"SP":     byteclass.SP,
	"VCHAR":  byteclass.VChar,
	"WSP":    byteclass.WSP,
}

// resolveClass turns a ClassConfig into a byteclass.Class. Unlike the core
// package's constructors it never panics on a malformed range: the shape
// comes from parsed YAML, so a caller mistake surfaces as a returned error.
func resolveClass(c *ClassConfig) (byteclass.Class, error) {
	if c == nil {
		return byteclass.Empty(), nil
	}
	set := 0
	var out byteclass.Class
	var err error

	if c.Rule != "" {
		set++
		ctor, ok := coreRules[c.Rule]
		if !ok {
			return byteclass.Empty(), errors.Errorf("fsabuilder: unknown core rule %q", c.Rule)
		}
		out = ctor()
	}
	if len(c.Bytes) > 0 {
		set++
		bs := make([]byte, len(c.Bytes))
		for i, v := range c.Bytes {
			if v < 0 || v > 255 {
				return byteclass.Empty(), errors.Errorf("fsabuilder: byte value %d out of range", v)
			}
			bs[i] = byte(v)
		}
		out = byteclass.Bytes(bs...)
	}
	if c.Range != nil {
		set++
		lo, hi := c.Range[0], c.Range[1]
		if lo < 0 || lo > 255 || hi < 0 || hi > 255 || lo > hi {
			return byteclass.Empty(), errors.Errorf("fsabuilder: invalid range [%d,%d]", lo, hi)
		}
		out = byteclass.Range(byte(lo), byte(hi))
	}
	if len(c.Union) > 0 {
		set++
		out, err = unionAll(c.Union)
		if err != nil {
			return byteclass.Empty(), err
		}
	}
	if len(c.Intersect) > 0 {
		set++
		out, err = intersectAll(c.Intersect)
		if err != nil {
			return byteclass.Empty(), err
		}
	}
	if c.Complement != nil {
		set++
		inner, err := resolveClass(c.Complement)
		if err != nil {
			return byteclass.Empty(), err
		}
		out = inner.Complement()
	}

	if set == 0 {
		return byteclass.Empty(), errors.New("fsabuilder: empty class specification")
	}
	if set > 1 {
		return byteclass.Empty(), errors.New("fsabuilder: a class specification must set exactly one of rule/bytes/range/union/intersect/complement")
	}
	return out, nil
}

func unionAll(specs []ClassConfig) (byteclass.Class, error) {
	out := byteclass.Empty()
	for i := range specs {
		c, err := resolveClass(&specs[i])
		if err != nil {
			return byteclass.Empty(), errors.Wrapf(err, "union member %d", i)
		}
		out = out.Union(c)
	}
	return out, nil
}

func intersectAll(specs []ClassConfig) (byteclass.Class, error) {
	if len(specs) == 0 {
		return byteclass.Empty(), nil
	}
	out, err := resolveClass(&specs[0])
	if err != nil {
		return byteclass.Empty(), errors.Wrap(err, "intersect member 0")
	}
	for i := 1; i < len(specs); i++ {
		c, err := resolveClass(&specs[i])
		if err != nil {
			return byteclass.Empty(), errors.Wrapf(err, "intersect member %d", i)
		}
		out = out.Intersect(c)
	}
	return out, nil
}

// CoreRuleNames returns the recognized core rule identifiers, sorted for
// stable CLI help text.
func CoreRuleNames() []string {
	out := make([]string, 0, len(coreRules))
	for name := range coreRules {
		out = append(out, name)
	}
	return sortStrings(out)
}

func sortStrings(ss []string) []string {
	sort.Strings(ss)
	return ss
}
