// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"

	"github.com/rs/zerolog"
)

// BulkResult holds the outcome of a bulk fetch.
type BulkResult struct {
	// Requested lists the bare ids sent to the API.
	Requested []string
	// Skipped lists the EIDs left out because they were already cached.
	Skipped []string
	// Written lists the cache files written, in response order.
	Written []string
}

// Total returns the number of EIDs processed.
func (r BulkResult) Total() int {
	return len(r.Requested) + len(r.Skipped)
}

// BulkFetcher pre-seeds the cache for a batch of EIDs with a single API call.
type BulkFetcher struct {
	Fetcher  OverviewFetcher
	CacheDir string
	Logger   zerolog.Logger
}

// BulkFetch resolves which EIDs need fetching, requests them in one call, and
// writes one cache record per EID. When every EID is already cached no
// request is made.
//
// A cache entry that cannot be checked, for a reason other than being
// absent, stops the batch before any request. Fetch and decode errors are
// returned unchanged and nothing is written. A
// write failure part way through leaves the files written so far in place;
// they are listed in the returned result, and a later run without refresh
// fetches only the EIDs still missing.
func (b *BulkFetcher) BulkFetch(ctx context.Context, eids []string, r DateRange, refresh bool) (BulkResult, error) {
	if err := r.Validate(); err != nil {
		return BulkResult{}, err
	}

	missing, cached, err := partition(eids, refresh, b.CacheDir)
	if err != nil {
		b.Logger.Error().Err(err).Str("path", b.CacheDir).Msg("cannot read cache")
		return BulkResult{}, err
	}
	result := BulkResult{Requested: missing, Skipped: cached}
	for _, eid := range cached {
		b.Logger.Debug().Str("eid", eid).Msg("already cached, skipping")
	}

	if len(missing) == 0 {
		b.Logger.Info().Int("skipped", len(cached)).Msg("nothing to fetch")
		return result, nil
	}

	b.Logger.Info().
		Int("identifiers", len(missing)).
		Str("date", r.String()).
		Bool("refresh", refresh).
		Msg("requesting citation overview")

	doc, err := b.Fetcher.Fetch(ctx, missing, r)
	if err != nil {
		return result, err
	}

	paths, err := SplitAndCache(doc, b.CacheDir)
	result.Written = paths
	for _, p := range paths {
		b.Logger.Info().Str("path", p).Msg("cached citation overview")
	}
	if err != nil {
		if len(paths) > 0 {
			b.Logger.Warn().Err(err).Int("written", len(paths)).Msg("cache partially written")
		}
		return result, err
	}
	return result, nil
}
