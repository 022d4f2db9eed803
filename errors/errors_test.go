package errors_test

import (
	"testing"

	"github.com/brunokim/inferd/errors"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.Kind
	}{
		{"validation", errors.NewValidationError("bad input"), errors.Validation},
		{"step limit", errors.NewStepLimitError("ran out of steps"), errors.StepLimit},
		{"depth limit", errors.NewDepthLimitError("ran out of depth"), errors.DepthLimit},
		{"plain error has internal kind", errors.New("boom"), errors.Internal},
	}
	for _, test := range tests {
		if got := errors.KindOf(test.err); got != test.want {
			t.Errorf("%s: KindOf() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := errors.NewValidationError("rule %q is unsafe", "reciprocal")
	want := `rule "reciprocal" is unsafe`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
