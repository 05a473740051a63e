// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdiddy/citation-cache/pkg/types"
)

// ReadRecord loads the cached record for eid. It returns an error matching
// ErrNotCached when no cache file exists.
func ReadRecord(cacheDir, eid string) (*types.OverviewDocument, error) {
	data, err := os.ReadFile(CachePath(cacheDir, eid))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotCached, eid)
		}
		return nil, fmt.Errorf("reading cached record %s: %w", eid, err)
	}
	return DecodeOverview(data)
}

// RecordSummary is a flat view of a per-identifier record.
type RecordSummary struct {
	EID              string `json:"eid" yaml:"eid"`
	ScopusID         string `json:"scopus_id" yaml:"scopus_id"`
	ColumnTotal      string `json:"column_total" yaml:"column_total"`
	LaterColumnTotal string `json:"later_column_total" yaml:"later_column_total"`
	RangeColumnTotal string `json:"range_column_total" yaml:"range_column_total"`
	GrandTotal       string `json:"grand_total" yaml:"grand_total"`

	// HIndex is the batch-wide value stored when the record was cached.
	HIndex string `json:"h_index,omitempty" yaml:"h_index,omitempty"`
}

// Summarize flattens a per-identifier record. Documents that do not hold
// exactly one legend entry and one cite-info entry are rejected.
func Summarize(doc *types.OverviewDocument) (RecordSummary, error) {
	resp := doc.Response
	legend := resp.Legend.Identifiers
	infos := resp.Matrix.XML.Matrix.CiteInfo
	if len(legend) != 1 || len(infos) != 1 {
		return RecordSummary{}, fmt.Errorf("not a per-identifier record: %d legend entries, %d cite-info entries", len(legend), len(infos))
	}

	h := resp.Totals.Header
	return RecordSummary{
		EID:              EIDFromBareID(legend[0].ScopusID),
		ScopusID:         legend[0].ScopusID,
		ColumnTotal:      rawText(h.ColumnTotal),
		LaterColumnTotal: rawText(h.LaterColumnTotal),
		RangeColumnTotal: rawText(h.RangeColumnTotal),
		GrandTotal:       rawText(h.GrandTotal),
		HIndex:           rawText(resp.Extra["h-index"]),
	}, nil
}

// rawText renders a raw JSON value for display: strings are unquoted, other
// values are shown as compact JSON.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
