package term

import (
	"strconv"
	"strings"
)

// Key returns a canonical encoding of t suitable for use as a Go map
// key, distinct from String(): two terms are Equal iff their Key()s
// match. String() is for display and the text syntax; Key() is for
// fact-base indexing, where structural equality, not notation,
// is what matters. Each variant is tagged and length- or NUL-delimited
// so that, short of an atom containing an embedded NUL byte, no two
// structurally distinct terms can collide.
func Key(t Term) string {
	var b strings.Builder
	writeKey(&b, t)
	return b.String()
}

func writeKey(b *strings.Builder, t Term) {
	switch x := t.(type) {
	case *Symbol:
		b.WriteByte('S')
		b.WriteString(x.name)
		b.WriteByte(0)
	case Int:
		b.WriteByte('I')
		b.WriteString(strconv.FormatInt(int64(x), 10))
		b.WriteByte(0)
	case Float:
		b.WriteByte('F')
		b.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
		b.WriteByte(0)
	case Str:
		b.WriteByte('T')
		b.WriteString(string(x))
		b.WriteByte(0)
	case Bool:
		b.WriteByte('B')
		if x {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteByte(0)
	case nullType:
		b.WriteByte('N')
		b.WriteByte(0)
	case Variable:
		b.WriteByte('V')
		b.WriteString(strconv.Itoa(x.suffix))
		b.WriteByte(0)
		b.WriteString(x.Name)
		b.WriteByte(0)
	case wildcardType:
		b.WriteByte('W')
		b.WriteByte(0)
	case *Compound:
		b.WriteByte('C')
		b.WriteString(strconv.Itoa(len(x.Elements)))
		b.WriteByte(0)
		for _, e := range x.Elements {
			writeKey(b, e)
		}
	}
}
