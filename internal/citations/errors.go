// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse indicates a body that is not JSON or lacks a
	// required member of the citation overview document.
	ErrMalformedResponse = errors.New("malformed citation overview response")

	// ErrNotCached indicates no cache file exists for an EID.
	ErrNotCached = errors.New("citation overview not cached")

	// ErrInvalidRange indicates a date range whose start is after its end.
	ErrInvalidRange = errors.New("invalid date range")
)

// RemoteServiceError reports a citation overview request that did not
// succeed: a transport failure or a non-2xx status. StatusCode is zero for
// transport failures.
type RemoteServiceError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *RemoteServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("citation overview request failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("citation overview request failed: %v", e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// AlignmentError reports an identifier legend and citation matrix of
// different lengths. No record can be paired reliably, so nothing is written.
type AlignmentError struct {
	Legend int
	Matrix int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("identifier legend has %d entries but citation matrix has %d", e.Legend, e.Matrix)
}
