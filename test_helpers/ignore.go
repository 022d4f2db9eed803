package test_helpers

import (
	"github.com/brunokim/inferd/term"

	"github.com/google/go-cmp/cmp"
)

var (
	// TermOptions lets go-cmp compare term values: variables carry an
	// unexported rename suffix and symbols are interned pointers
	// compared by identity.
	TermOptions = cmp.Options{
		cmp.Comparer(func(a, b term.Variable) bool { return a == b }),
		cmp.Comparer(func(a, b *term.Symbol) bool { return a == b }),
	}
)
