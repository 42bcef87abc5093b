// Package hexerr collects the error values shared across hexgraph's
// packages. Centralized because several of them (MixedResolutions in
// particular) are returned from basegraph, preparedgraph, and routing alike
// — the same sentinel style the teacher uses for ErrNoRoute, just shared
// across package boundaries instead of declared next to its one call site.
package hexerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientEdges is returned when a path or shortcut requires
	// more edges than were provided.
	ErrInsufficientEdges = errors.New("insufficient edges")

	// ErrSegmentedPath is returned when an edge sequence is not contiguous.
	ErrSegmentedPath = errors.New("edge sequence is not contiguous")

	// ErrEmptyPath is returned when querying the origin or destination of
	// an empty EdgePath.
	ErrEmptyPath = errors.New("path is empty")

	// ErrEmptyExclusion is returned when differential routing is called
	// with an empty exclusion set.
	ErrEmptyExclusion = errors.New("exclusion set is empty")

	// ErrDestinationsNotInGraph is returned when, after substitution, no
	// destination survived.
	ErrDestinationsNotInGraph = errors.New("no destination cell is present in the graph")
)

// MixedResolutionsError is returned when a cell or graph at the wrong
// resolution was provided to an operation that requires a single
// resolution throughout.
type MixedResolutionsError struct {
	Expected int
	Got      int
}

func (e *MixedResolutionsError) Error() string {
	return fmt.Sprintf("mixed resolutions: expected %d, got %d", e.Expected, e.Got)
}

// NewMixedResolutions builds a MixedResolutionsError.
func NewMixedResolutions(expected, got int) error {
	return &MixedResolutionsError{Expected: expected, Got: got}
}

// ResolutionNotLowerError is returned when downsampling targets a
// resolution that is not strictly coarser than the source.
type ResolutionNotLowerError struct {
	Target int
}

func (e *ResolutionNotLowerError) Error() string {
	return fmt.Sprintf("downsample target resolution %d is not lower than the source resolution", e.Target)
}

// NewResolutionNotLower builds a ResolutionNotLowerError.
func NewResolutionNotLower(target int) error {
	return &ResolutionNotLowerError{Target: target}
}

// ShortcutTooShortError is returned when a requested minimum shortcut
// length is below the 3-edge floor.
type ShortcutTooShortError struct {
	Requested int
}

func (e *ShortcutTooShortError) Error() string {
	return fmt.Sprintf("requested minimum shortcut length %d is below the 3-edge floor", e.Requested)
}

// NewShortcutTooShort builds a ShortcutTooShortError.
func NewShortcutTooShort(requested int) error {
	return &ShortcutTooShortError{Requested: requested}
}
