// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/pdiddy/citation-cache/internal/httputil"
	"github.com/pdiddy/citation-cache/pkg/types"
)

// DefaultEndpoint is the Scopus citation overview API.
const DefaultEndpoint = "https://api.elsevier.com/content/abstract/citations/"

// OverviewFetcher retrieves the aggregated citation overview for a batch of
// bare Scopus ids.
type OverviewFetcher interface {
	Fetch(ctx context.Context, bareIDs []string, r DateRange) (*types.OverviewDocument, error)
}

// Fetcher calls the citation overview endpoint through a Downloader.
type Fetcher struct {
	Downloader *httputil.Downloader

	// Endpoint overrides DefaultEndpoint when set.
	Endpoint string
}

// Fetch issues one GET carrying every bare id as a repeated scopus_id
// parameter, plus date={start}-{end}. It does not retry. Request failures
// return *RemoteServiceError; undecodable bodies return an error matching
// ErrMalformedResponse.
func (f *Fetcher) Fetch(ctx context.Context, bareIDs []string, r DateRange) (*types.OverviewDocument, error) {
	endpoint := f.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	params := url.Values{
		"date":      {r.String()},
		"scopus_id": bareIDs,
	}

	body, err := f.Downloader.Get(ctx, endpoint, params, httputil.AcceptJSON)
	if err != nil {
		rse := &RemoteServiceError{URL: endpoint, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			rse.StatusCode = se.StatusCode
		}
		return nil, rse
	}
	return DecodeOverview(body)
}

// DecodeOverview parses a citation overview document.
func DecodeOverview(data []byte) (*types.OverviewDocument, error) {
	var doc types.OverviewDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &doc, nil
}
