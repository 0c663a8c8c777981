package corerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	sentinels := []error{
		ErrBodyAlreadyAccessed,
		ErrAlreadyStarted,
		ErrNotStarted,
		ErrHeadersAlreadySent,
	}

	for _, s := range sentinels {
		wrapped := fmt.Errorf("request: %w", s)
		if !errors.Is(wrapped, s) {
			t.Fatalf("errors.Is lost %q after %%w wrapping", s)
		}
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrBodyAlreadyAccessed,
		ErrAlreadyStarted,
		ErrNotStarted,
		ErrHeadersAlreadySent,
	}

	for i, s := range sentinels {
		for j, other := range sentinels {
			if i != j && errors.Is(s, other) {
				t.Fatalf("sentinel %d unexpectedly equals sentinel %d", i, j)
			}
		}
	}
}
