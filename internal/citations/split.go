// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/citation-cache/pkg/types"
)

// NewRecord builds the per-identifier record for one aligned (info, legend)
// pair. Every container level is copied from template, so the record shares no
// map or slice storage with it. The legend and matrix hold only the given
// entries. The four summary totals come from info. Every other member,
// including the batch-wide h-index, keeps the template's value because it
// cannot be attributed to a single publication.
func NewRecord(template *types.OverviewDocument, info types.CiteInfo, legend types.LegendEntry) *types.OverviewDocument {
	src := template.Response

	legend.Extra = legend.Extra.Clone()
	info.Extra = info.Extra.Clone()

	return &types.OverviewDocument{
		Extra: template.Extra.Clone(),
		Response: types.CitationsResponse{
			Extra: src.Extra.Clone(),
			Legend: types.IdentifierLegend{
				Identifiers: []types.LegendEntry{legend},
				Extra:       src.Legend.Extra.Clone(),
			},
			Matrix: types.CiteInfoMatrix{
				Extra: src.Matrix.Extra.Clone(),
				XML: types.CiteInfoMatrixXML{
					Extra: src.Matrix.XML.Extra.Clone(),
					Matrix: types.CitationMatrix{
						CiteInfo: []types.CiteInfo{info},
						Extra:    src.Matrix.XML.Matrix.Extra.Clone(),
					},
				},
			},
			Totals: types.ColumnTotals{
				Extra: src.Totals.Extra.Clone(),
				Header: types.CiteCountHeader{
					ColumnTotal:      info.CC,
					LaterColumnTotal: info.LCC,
					RangeColumnTotal: info.RangeCount,
					GrandTotal:       info.RowTotal,
					Extra:            src.Totals.Header.Extra.Clone(),
				},
			},
		},
	}
}

// Split returns one record per aligned legend/matrix pair, in response order.
// A length mismatch returns *AlignmentError and no records.
func Split(doc *types.OverviewDocument) ([]*types.OverviewDocument, error) {
	legend := doc.Response.Legend.Identifiers
	infos := doc.Response.Matrix.XML.Matrix.CiteInfo
	if len(legend) != len(infos) {
		return nil, &AlignmentError{Legend: len(legend), Matrix: len(infos)}
	}

	records := make([]*types.OverviewDocument, 0, len(infos))
	for i := range infos {
		if err := checkScopusID(legend[i].ScopusID); err != nil {
			return nil, err
		}
		records = append(records, NewRecord(doc, infos[i], legend[i]))
	}
	return records, nil
}

// checkScopusID rejects ids that cannot name a file inside the cache directory.
func checkScopusID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid scopus_id %q", ErrMalformedResponse, id)
	}
	return nil
}

// SplitAndCache splits doc and writes each record to cacheDir, named by the
// rebuilt EID. Existing files are overwritten. Records are written in order
// with no transaction around the loop. On a write failure the paths already
// written are returned together with the error; those files stay in place.
func SplitAndCache(doc *types.OverviewDocument, cacheDir string) ([]string, error) {
	records, err := Split(doc)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", cacheDir, err)
	}

	paths := make([]string, 0, len(records))
	for _, rec := range records {
		eid := EIDFromBareID(rec.Response.Legend.Identifiers[0].ScopusID)
		path := CachePath(cacheDir, eid)
		if err := writeRecord(rec, path); err != nil {
			return paths, fmt.Errorf("caching %s: %w", eid, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeRecord writes rec as JSON to a temp file and renames it over path.
func writeRecord(rec *types.OverviewDocument, path string) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".citation-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing record: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
