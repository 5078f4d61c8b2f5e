// Package byteclass implements immutable, value-typed membership tests over
// the 256 possible byte values. A Class is built once from ranges, literal
// bytes, or set algebra over other Classes and is safe to share across
// automaton instances and goroutines thereafter.
package byteclass

import (
	"fmt"
	"math/bits"
	"strings"
)

// Class is a 256-bit membership bitmap plus a cached diagnostic
// description. The zero value is the empty class.
type Class struct {
	bits [4]uint64
	desc string
}

// Empty returns the class that contains no bytes.
func Empty() Class {
	return Class{desc: "∅"}
}

// Byte returns the class containing exactly b.
func Byte(b byte) Class {
	c := Class{}
	c.set(b)
	c.desc = fmt.Sprintf("0x%02X", b)
	return c
}

// Bytes returns the class containing exactly the given bytes.
func Bytes(bs ...byte) Class {
	c := Class{}
	for _, b := range bs {
		c.set(b)
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprintf("0x%02X", b)
	}
	c.desc = "{" + strings.Join(parts, ",") + "}"
	return c
}

// Range returns the class containing every byte in [lo, hi]. It panics if
// lo > hi: an inverted range is a construction-time programmer error, not
// a runtime condition a caller can recover from.
func Range(lo, hi byte) Class {
	if lo > hi {
		panic(fmt.Sprintf("byteclass: invalid range 0x%02X-0x%02X: start > end", lo, hi))
	}
	c := Class{}
	for b := int(lo); b <= int(hi); b++ {
		c.set(byte(b))
	}
	c.desc = fmt.Sprintf("0x%02X-0x%02X", lo, hi)
	return c
}

func (c *Class) set(b byte) {
	c.bits[b>>6] |= 1 << (uint(b) & 63)
}

// Contains reports whether b is a member of c.
func (c Class) Contains(b byte) bool {
	return c.bits[b>>6]&(1<<(uint(b)&63)) != 0
}

// ContainsSigned reports whether the low eight bits of a signed byte value
// (as produced by a `char` in a C-derived source) are a member of c.
func (c Class) ContainsSigned(b int8) bool {
	return c.Contains(byte(b))
}

// Count returns the number of member bytes.
func (c Class) Count() int {
	n := 0
	for _, w := range c.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether c has no members.
func (c Class) IsEmpty() bool {
	return c.Count() == 0
}

// Union returns a new class matching every byte in c or other.
func (c Class) Union(other Class) Class {
	var out Class
	for i := range out.bits {
		out.bits[i] = c.bits[i] | other.bits[i]
	}
	out.desc = fmt.Sprintf("(%s ∪ %s)", c.String(), other.String())
	return out
}

// Intersect returns a new class matching every byte in both c and other.
func (c Class) Intersect(other Class) Class {
	var out Class
	for i := range out.bits {
		out.bits[i] = c.bits[i] & other.bits[i]
	}
	out.desc = fmt.Sprintf("(%s ∩ %s)", c.String(), other.String())
	return out
}

// Complement returns the class of every byte not in c.
func (c Class) Complement() Class {
	var out Class
	for i := range out.bits {
		out.bits[i] = ^c.bits[i]
	}
	out.desc = fmt.Sprintf("¬%s", c.String())
	return out
}

// String returns the cached diagnostic description. It is never used for
// membership decisions.
func (c Class) String() string {
	if c.desc == "" {
		return "∅"
	}
	return c.desc
}

// Named returns a copy of c with an explicit diagnostic label, useful when
// a core rule or a caller-defined class should render legibly in traces
// and DOT export rather than as an algebra expression.
func (c Class) Named(name string) Class {
	c.desc = name
	return c
}
