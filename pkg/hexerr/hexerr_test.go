package hexerr

import (
	"errors"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInsufficientEdges, ErrSegmentedPath, ErrEmptyPath, ErrEmptyExclusion, ErrDestinationsNotInGraph}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinels %d and %d should be distinct", i, j)
			}
		}
	}
}

func TestMixedResolutionsErrorMessage(t *testing.T) {
	err := NewMixedResolutions(9, 7)
	var target *MixedResolutionsError
	if !errors.As(err, &target) {
		t.Fatalf("NewMixedResolutions should produce a *MixedResolutionsError")
	}
	if target.Expected != 9 || target.Got != 7 {
		t.Errorf("got Expected=%d Got=%d, want 9/7", target.Expected, target.Got)
	}
	if err.Error() == "" {
		t.Errorf("Error() should not be empty")
	}
}

func TestResolutionNotLowerError(t *testing.T) {
	err := NewResolutionNotLower(5)
	var target *ResolutionNotLowerError
	if !errors.As(err, &target) {
		t.Fatalf("NewResolutionNotLower should produce a *ResolutionNotLowerError")
	}
	if target.Target != 5 {
		t.Errorf("Target = %d, want 5", target.Target)
	}
}

func TestShortcutTooShortError(t *testing.T) {
	err := NewShortcutTooShort(2)
	var target *ShortcutTooShortError
	if !errors.As(err, &target) {
		t.Fatalf("NewShortcutTooShort should produce a *ShortcutTooShortError")
	}
	if target.Requested != 2 {
		t.Errorf("Requested = %d, want 2", target.Requested)
	}
}
