// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOverview = `{
  "abstract-citations-response": {
    "h-index": "2",
    "identifier-legend": {
      "@_fa": "true",
      "identifier": [
        {"@_fa": "true", "scopus_id": "85012345678", "doi": "10.1000/a"},
        {"@_fa": "true", "scopus_id": 85087654321, "doi": "10.1000/b"}
      ]
    },
    "citeInfoMatrix": {
      "citeInfoMatrixXML": {
        "citationMatrix": {
          "citeInfo": [
            {"dc:identifier": "SCOPUS_ID:85012345678", "pcc": "1", "cc": [{"$": "3"}, {"$": "2"}], "lcc": "2", "rangeCount": "5", "rowTotal": "8"},
            {"dc:identifier": "SCOPUS_ID:85087654321", "pcc": "0", "cc": [{"$": "1"}, {"$": "0"}], "lcc": "0", "rangeCount": "1", "rowTotal": "1"}
          ]
        }
      }
    },
    "citeColumnTotalXML": {
      "citeCountHeader": {
        "columnHeading": [{"$": "2019"}, {"$": "2020"}],
        "prevColumnTotal": "1",
        "columnTotal": [{"$": "4"}, {"$": "2"}],
        "laterColumnTotal": "2",
        "rangeColumnTotal": "6",
        "grandTotal": "9"
      }
    }
  }
}`

func TestOverviewDocumentDecode(t *testing.T) {
	var doc OverviewDocument
	require.NoError(t, json.Unmarshal([]byte(sampleOverview), &doc))

	resp := doc.Response
	require.Len(t, resp.Legend.Identifiers, 2)
	require.Len(t, resp.Matrix.XML.Matrix.CiteInfo, 2)

	assert.Equal(t, "85012345678", resp.Legend.Identifiers[0].ScopusID)
	assert.Equal(t, "85087654321", resp.Legend.Identifiers[1].ScopusID, "numeric scopus_id is read as text")
	assert.JSONEq(t, `"10.1000/a"`, string(resp.Legend.Identifiers[0].Extra["doi"]))

	info := resp.Matrix.XML.Matrix.CiteInfo[0]
	assert.JSONEq(t, `[{"$": "3"}, {"$": "2"}]`, string(info.CC))
	assert.JSONEq(t, `"2"`, string(info.LCC))
	assert.JSONEq(t, `"5"`, string(info.RangeCount))
	assert.JSONEq(t, `"8"`, string(info.RowTotal))
	assert.Contains(t, info.Extra, "pcc")

	assert.JSONEq(t, `"2"`, string(resp.Extra["h-index"]))
	assert.JSONEq(t, `"9"`, string(resp.Totals.Header.GrandTotal))
	assert.Contains(t, resp.Totals.Header.Extra, "columnHeading")
}

func TestOverviewDocumentRoundTripKeepsUnknownMembers(t *testing.T) {
	var doc OverviewDocument
	require.NoError(t, json.Unmarshal([]byte(sampleOverview), &doc))

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.JSONEq(t, sampleOverview, string(out))
	assert.Contains(t, string(out), `"scopus_id":85087654321`, "numeric scopus_id stays a number")
}

func TestLegendEntryScopusIDEncoding(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		setID string
		want  string
	}{
		{"string kept", `{"scopus_id": "111"}`, "", `{"scopus_id": "111"}`},
		{"number kept", `{"scopus_id": 111}`, "", `{"scopus_id": 111}`},
		{"changed id written as string", `{"scopus_id": 111}`, "222", `{"scopus_id": "222"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e LegendEntry
			require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
			if tt.setID != "" {
				e.ScopusID = tt.setID
			}
			out, err := json.Marshal(e)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(out))
		})
	}

	out, err := json.Marshal(LegendEntry{ScopusID: "333"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"scopus_id": "333"}`, string(out))
}

func TestOverviewDocumentSingleObjectLists(t *testing.T) {
	const single = `{"abstract-citations-response": {
	  "identifier-legend": {"identifier": {"scopus_id": "111"}},
	  "citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": {"cc": 1, "lcc": 0, "rangeCount": 1, "rowTotal": 1}}}},
	  "citeColumnTotalXML": {"citeCountHeader": {}}
	}}`

	var doc OverviewDocument
	require.NoError(t, json.Unmarshal([]byte(single), &doc))
	require.Len(t, doc.Response.Legend.Identifiers, 1)
	require.Len(t, doc.Response.Matrix.XML.Matrix.CiteInfo, 1)
	assert.Equal(t, "111", doc.Response.Legend.Identifiers[0].ScopusID)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"identifier":[{"scopus_id":"111"}]`)
	assert.NotContains(t, string(out), "grandTotal", "absent totals stay absent")
}

func TestOverviewDocumentMissingMembers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no response", `{"service-error": {"status": {"statusCode": "AUTHORIZATION_ERROR"}}}`},
		{"no legend", `{"abstract-citations-response": {
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": []}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
		{"no citeInfo", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": []},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
		{"no totals", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": []},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": []}}}}}`},
		{"cite info without rowTotal", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": [{"scopus_id": "1"}]},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": [{"cc": 1, "lcc": 0, "rangeCount": 1}]}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
		{"null identifier list", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": null},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": []}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
		{"null citeInfo list", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": []},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": null}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
		{"legend without scopus_id", `{"abstract-citations-response": {
			"identifier-legend": {"identifier": [{"doi": "10.1/x"}]},
			"citeInfoMatrix": {"citeInfoMatrixXML": {"citationMatrix": {"citeInfo": []}}},
			"citeColumnTotalXML": {"citeCountHeader": {}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc OverviewDocument
			err := json.Unmarshal([]byte(tt.body), &doc)
			assert.ErrorIs(t, err, ErrMissingMember)
		})
	}
}

func TestMembersClone(t *testing.T) {
	m := Members{"h-index": json.RawMessage(`"3"`)}
	c := m.Clone()
	c["h-index"] = json.RawMessage(`"9"`)
	assert.JSONEq(t, `"3"`, string(m["h-index"]))

	assert.Nil(t, Members(nil).Clone())
}
