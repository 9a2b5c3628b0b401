package hydrate

import (
	"errors"
	"fmt"
)

// Kind classifies a hydration failure for logs and metrics.
type Kind string

const (
	KindFetch   Kind = "fetch"
	KindParse   Kind = "parse"
	KindRender  Kind = "render"
	KindUnknown Kind = "unknown"
)

// FetchError is a network failure or a non-2xx response.
type FetchError struct {
	Source string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a body that could not be decoded into a document.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RenderFault is a section renderer that could not handle the document,
// or a required mount point missing from the host page.
type RenderFault struct {
	Section string
	Mount   string
	Err     error
}

func (e *RenderFault) Error() string {
	if e.Mount != "" {
		return fmt.Sprintf("render %s: mount %q: %v", e.Section, e.Mount, e.Err)
	}
	return fmt.Sprintf("render %s: %v", e.Section, e.Err)
}

func (e *RenderFault) Unwrap() error { return e.Err }

// ErrMissingMount is wrapped by a RenderFault for an absent required mount point.
var ErrMissingMount = errors.New("required mount point not found")

// KindOf classifies err.
func KindOf(err error) Kind {
	var (
		fetchErr  *FetchError
		parseErr  *ParseError
		renderErr *RenderFault
	)
	switch {
	case errors.As(err, &fetchErr):
		return KindFetch
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &renderErr):
		return KindRender
	default:
		return KindUnknown
	}
}
