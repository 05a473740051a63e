// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations pre-seeds a file cache with Scopus citation overview
// records. One API call covers a whole batch of EIDs; the aggregated response
// is split into one record per EID and each record is written to
// <cacheDir>/<eid>. Cache files are never expired; a refresh overwrites them.
package citations

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// EIDPrefix is the vendor prefix joined to a bare Scopus id to form an EID.
	EIDPrefix = "2-s2.0-"

	bareIDDelimiter = "0-"
)

// ExtractBareID returns the part of eid after the last "0-". An eid without
// the delimiter is returned unchanged.
func ExtractBareID(eid string) string {
	if i := strings.LastIndex(eid, bareIDDelimiter); i >= 0 {
		return eid[i+len(bareIDDelimiter):]
	}
	return eid
}

// EIDFromBareID rebuilds the EID used as the cache key.
func EIDFromBareID(bareID string) string {
	return EIDPrefix + bareID
}

// CachePath returns the cache file path for eid.
func CachePath(cacheDir, eid string) string {
	return filepath.Join(cacheDir, eid)
}

// IsCached reports whether a cache file exists for eid. An absent file is
// not an error; any other stat failure is returned.
func IsCached(cacheDir, eid string) (bool, error) {
	_, err := os.Stat(CachePath(cacheDir, eid))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking cache for %s: %w", eid, err)
	}
}

// Resolve returns the bare ids that must be fetched, in input order. With
// refresh set every eid is returned; otherwise eids that already have a cache
// file are left out. An empty result is valid.
func Resolve(eids []string, refresh bool, cacheDir string) ([]string, error) {
	missing, _, err := partition(eids, refresh, cacheDir)
	return missing, err
}

// partition splits eids into bare ids to fetch and eids already cached.
func partition(eids []string, refresh bool, cacheDir string) (missing, cached []string, err error) {
	missing = make([]string, 0, len(eids))
	for _, eid := range eids {
		if !refresh {
			ok, err := IsCached(cacheDir, eid)
			if err != nil {
				return nil, nil, err
			}
			if ok {
				cached = append(cached, eid)
				continue
			}
		}
		missing = append(missing, ExtractBareID(eid))
	}
	return missing, cached, nil
}

// DateRange is an inclusive range of publication years.
type DateRange struct {
	Start int
	End   int
}

// NewDateRange returns the range start..end. An end of zero means the
// current calendar year.
func NewDateRange(start, end int) DateRange {
	if end == 0 {
		end = time.Now().Year()
	}
	return DateRange{Start: start, End: end}
}

// String formats the range as the API's date parameter, "{start}-{end}".
func (r DateRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Validate rejects a non-positive start year or a start after the end.
func (r DateRange) Validate() error {
	if r.Start <= 0 {
		return fmt.Errorf("%w: start year %d", ErrInvalidRange, r.Start)
	}
	if r.Start > r.End {
		return fmt.Errorf("%w: %d is after %d", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}
