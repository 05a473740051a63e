// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for citation-cache: the
// citation overview document returned by the Scopus API and the
// configuration structs used by the CLI.
//
// Every level of the overview document keeps the JSON members it does not
// interpret in an Extra map, so a decode followed by an encode loses nothing
// the server sent. Raw values are never modified in place; code that builds a
// new document replaces them instead.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// ErrMissingMember is returned when a required JSON member is absent from a
// citation overview document.
var ErrMissingMember = errors.New("missing required member")

// Members holds JSON object members carried through a decode/encode round
// trip without interpretation.
type Members map[string]json.RawMessage

// Clone returns a copy of m that shares no map storage with it.
func (m Members) Clone() Members {
	return maps.Clone(m)
}

// OverviewDocument is a citation overview response. The aggregated response
// for a batch and each per-identifier cache record share this shape.
type OverviewDocument struct {
	Response CitationsResponse
	Extra    Members
}

// CitationsResponse is the "abstract-citations-response" body. Extra holds the
// batch-wide figures such as "h-index".
type CitationsResponse struct {
	Legend IdentifierLegend
	Matrix CiteInfoMatrix
	Totals ColumnTotals
	Extra  Members
}

// IdentifierLegend lists one entry per publication, index-aligned with the
// citation matrix.
type IdentifierLegend struct {
	Identifiers []LegendEntry
	Extra       Members
}

// LegendEntry describes one publication in the legend.
type LegendEntry struct {
	// ScopusID is the bare numeric id (the EID without its vendor prefix).
	ScopusID string
	Extra    Members

	// scopusIDRaw is the scopus_id value as received. It is written back
	// while it still names ScopusID, so a numeric id stays a number.
	scopusIDRaw json.RawMessage
}

// CiteInfoMatrix wraps the citation matrix.
type CiteInfoMatrix struct {
	XML   CiteInfoMatrixXML
	Extra Members
}

// CiteInfoMatrixXML wraps the citation matrix one level further down.
type CiteInfoMatrixXML struct {
	Matrix CitationMatrix
	Extra  Members
}

// CitationMatrix holds one CiteInfo per publication.
type CitationMatrix struct {
	CiteInfo []CiteInfo
	Extra    Members
}

// CiteInfo carries the yearly counts and summary numbers for one publication.
// The four summary numbers are kept as raw JSON because the server may send
// them as numbers, strings, or per-year arrays.
type CiteInfo struct {
	CC         json.RawMessage // citations in the requested range, per year
	LCC        json.RawMessage // citations after the range
	RangeCount json.RawMessage
	RowTotal   json.RawMessage
	Extra      Members
}

// ColumnTotals wraps the column totals header.
type ColumnTotals struct {
	Header CiteCountHeader
	Extra  Members
}

// CiteCountHeader holds the summary totals. A nil field is omitted on encode.
type CiteCountHeader struct {
	ColumnTotal      json.RawMessage
	LaterColumnTotal json.RawMessage
	RangeColumnTotal json.RawMessage
	GrandTotal       json.RawMessage
	Extra            Members
}

// member binds a JSON key to the Go value it decodes into.
type member struct {
	key      string
	ptr      any
	required bool
}

func required(key string, ptr any) member { return member{key: key, ptr: ptr, required: true} }
func optional(key string, ptr any) member { return member{key: key, ptr: ptr} }

// decodeObject unmarshals a JSON object, decoding each bound member into its
// target and returning the rest.
func decodeObject(data []byte, members ...member) (Members, error) {
	var raw Members
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("expected JSON object, got null")
	}
	for _, m := range members {
		v, ok := raw[m.key]
		if !ok {
			if m.required {
				return nil, fmt.Errorf("%w: %q", ErrMissingMember, m.key)
			}
			continue
		}
		if err := json.Unmarshal(v, m.ptr); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", m.key, err)
		}
		delete(raw, m.key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// encodeObject marshals extra plus the bound members as one JSON object.
// A member whose target is a nil json.RawMessage is left out.
func encodeObject(extra Members, members ...member) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(extra)+len(members))
	maps.Copy(out, extra)
	for _, m := range members {
		if raw, ok := m.ptr.(*json.RawMessage); ok && *raw == nil {
			continue
		}
		b, err := json.Marshal(m.ptr)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", m.key, err)
		}
		out[m.key] = b
	}
	return json.Marshal(out)
}

// oneOrMany decodes either a JSON array or a single object as a slice. The
// API collapses one-element lists to a bare object.
type oneOrMany[T any] []T

func (l *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: list is null", ErrMissingMember)
	}
	if len(data) > 0 && data[0] == '{' {
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = oneOrMany[T]{one}
		return nil
	}
	var many []T
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// scalarString decodes a JSON string or a bare number as a string.
type scalarString string

func (s *scalarString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalarString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = scalarString(n)
	return nil
}

const (
	keyResponse    = "abstract-citations-response"
	keyLegend      = "identifier-legend"
	keyIdentifier  = "identifier"
	keyScopusID    = "scopus_id"
	keyMatrix      = "citeInfoMatrix"
	keyMatrixXML   = "citeInfoMatrixXML"
	keyCitationMat = "citationMatrix"
	keyCiteInfo    = "citeInfo"
	keyTotals      = "citeColumnTotalXML"
	keyHeader      = "citeCountHeader"
)

func (d *OverviewDocument) UnmarshalJSON(data []byte) (err error) {
	d.Extra, err = decodeObject(data, required(keyResponse, &d.Response))
	return err
}

func (d OverviewDocument) MarshalJSON() ([]byte, error) {
	return encodeObject(d.Extra, required(keyResponse, &d.Response))
}

func (r *CitationsResponse) UnmarshalJSON(data []byte) (err error) {
	r.Extra, err = decodeObject(data,
		required(keyLegend, &r.Legend),
		required(keyMatrix, &r.Matrix),
		required(keyTotals, &r.Totals),
	)
	return err
}

func (r CitationsResponse) MarshalJSON() ([]byte, error) {
	return encodeObject(r.Extra,
		required(keyLegend, &r.Legend),
		required(keyMatrix, &r.Matrix),
		required(keyTotals, &r.Totals),
	)
}

func (l *IdentifierLegend) UnmarshalJSON(data []byte) (err error) {
	l.Extra, err = decodeObject(data, required(keyIdentifier, (*oneOrMany[LegendEntry])(&l.Identifiers)))
	return err
}

func (l IdentifierLegend) MarshalJSON() ([]byte, error) {
	return encodeObject(l.Extra, required(keyIdentifier, &l.Identifiers))
}

func (e *LegendEntry) UnmarshalJSON(data []byte) (err error) {
	if e.Extra, err = decodeObject(data, required(keyScopusID, &e.scopusIDRaw)); err != nil {
		return err
	}
	var id scalarString
	if err := json.Unmarshal(e.scopusIDRaw, &id); err != nil {
		return fmt.Errorf("decoding %q: %w", keyScopusID, err)
	}
	e.ScopusID = string(id)
	return nil
}

func (e LegendEntry) MarshalJSON() ([]byte, error) {
	id := e.scopusIDRaw
	var was scalarString
	if id == nil || json.Unmarshal(id, &was) != nil || string(was) != e.ScopusID {
		b, err := json.Marshal(e.ScopusID)
		if err != nil {
			return nil, err
		}
		id = b
	}
	return encodeObject(e.Extra, required(keyScopusID, &id))
}

func (m *CiteInfoMatrix) UnmarshalJSON(data []byte) (err error) {
	m.Extra, err = decodeObject(data, required(keyMatrixXML, &m.XML))
	return err
}

func (m CiteInfoMatrix) MarshalJSON() ([]byte, error) {
	return encodeObject(m.Extra, required(keyMatrixXML, &m.XML))
}

func (x *CiteInfoMatrixXML) UnmarshalJSON(data []byte) (err error) {
	x.Extra, err = decodeObject(data, required(keyCitationMat, &x.Matrix))
	return err
}

func (x CiteInfoMatrixXML) MarshalJSON() ([]byte, error) {
	return encodeObject(x.Extra, required(keyCitationMat, &x.Matrix))
}

func (m *CitationMatrix) UnmarshalJSON(data []byte) (err error) {
	m.Extra, err = decodeObject(data, required(keyCiteInfo, (*oneOrMany[CiteInfo])(&m.CiteInfo)))
	return err
}

func (m CitationMatrix) MarshalJSON() ([]byte, error) {
	return encodeObject(m.Extra, required(keyCiteInfo, &m.CiteInfo))
}

func (c *CiteInfo) UnmarshalJSON(data []byte) (err error) {
	c.Extra, err = decodeObject(data, c.members()...)
	return err
}

func (c CiteInfo) MarshalJSON() ([]byte, error) {
	return encodeObject(c.Extra, c.members()...)
}

func (c *CiteInfo) members() []member {
	return []member{
		required("cc", &c.CC),
		required("lcc", &c.LCC),
		required("rangeCount", &c.RangeCount),
		required("rowTotal", &c.RowTotal),
	}
}

func (t *ColumnTotals) UnmarshalJSON(data []byte) (err error) {
	t.Extra, err = decodeObject(data, required(keyHeader, &t.Header))
	return err
}

func (t ColumnTotals) MarshalJSON() ([]byte, error) {
	return encodeObject(t.Extra, required(keyHeader, &t.Header))
}

func (h *CiteCountHeader) UnmarshalJSON(data []byte) (err error) {
	h.Extra, err = decodeObject(data, h.members()...)
	return err
}

func (h CiteCountHeader) MarshalJSON() ([]byte, error) {
	return encodeObject(h.Extra, h.members()...)
}

func (h *CiteCountHeader) members() []member {
	return []member{
		optional("columnTotal", &h.ColumnTotal),
		optional("laterColumnTotal", &h.LaterColumnTotal),
		optional("rangeColumnTotal", &h.RangeColumnTotal),
		optional("grandTotal", &h.GrandTotal),
	}
}
