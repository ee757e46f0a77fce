// Copyright 2023 Princess B33f Heavy Industries
// SPDX-License-Identifier: MIT

package libopenapi

import (
	"errors"
	"fmt"
	"strings"
)

// wrapErr is what Load uses to hand its caller a *MultiError instead of
// loader.Load's raw error, so every failure - structural validation,
// aggregated resolution errors, safety gate rejections - comes back through
// the same Count/Append/Error surface regardless of which pipeline stage
// produced it.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return &MultiError{errs: []error{err}}
}

// MultiError is what Load returns in place of a bare error: one or more
// failures wrapped behind a single Count/Append/Error surface, so a caller
// sees the whole picture in one Error() call no matter which pipeline stage
// produced it.
type MultiError struct {
	errs []error
}

// Append adds err to the list, flattening err's own errors in if it is
// itself a *MultiError, so nesting never multiplies index prefixes.
func (e *MultiError) Append(err error) {
	if err == nil {
		return
	}

	var m *MultiError
	if errors.As(err, &m) {
		e.errs = append(e.errs, m.errs...)
		return
	}
	e.errs = append(e.errs, err)
}

// Count returns how many errors have been collected.
func (e *MultiError) Count() int {
	return len(e.errs)
}

func (e *MultiError) Error() string {
	var b strings.Builder
	for i, err := range e.errs {
		if err == nil {
			b.WriteString(fmt.Sprintf("[%d] nil\n", i))
			continue
		}
		b.WriteString(fmt.Sprintf("[%d] %s\n", i, err.Error()))
	}
	return b.String()
}

func (e *MultiError) Unwrap() []error {
	return e.errs
}

// OrNil returns e, or nil if nothing was ever appended - so a function that
// always builds a *MultiError can still return a plain nil error on success.
func (e *MultiError) OrNil() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *MultiError) Print() {
	for i, err := range e.errs {
		fmt.Printf("[%d] %s\n", i, err.Error())
	}
}
