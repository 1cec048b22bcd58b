package mfapi

import (
	"encoding/json"

	"github.com/aristath/fundscope/internal/nav"
)

// CatalogEntry is a single scheme listing from the catalog endpoint.
type CatalogEntry struct {
	SchemeCode      int    `json:"schemeCode" msgpack:"schemeCode"`
	SchemeName      string `json:"schemeName" msgpack:"schemeName"`
	ISINGrowth      string `json:"isinGrowth" msgpack:"isinGrowth"`
	ISINDivReinvest string `json:"isinDivReinvestment" msgpack:"isinDivReinvestment"`
}

// SchemeMeta describes a scheme as reported by the provider.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house" msgpack:"fund_house"`
	SchemeType     string `json:"scheme_type" msgpack:"scheme_type"`
	SchemeCategory string `json:"scheme_category" msgpack:"scheme_category"`
	SchemeCode     int    `json:"scheme_code" msgpack:"scheme_code"`
	SchemeName     string `json:"scheme_name" msgpack:"scheme_name"`
}

// SchemeData is the full per-scheme payload: metadata plus the raw
// NAV history exactly as the provider reports it.
type SchemeData struct {
	Meta    SchemeMeta      `json:"meta" msgpack:"meta"`
	Records []nav.RawRecord `json:"data" msgpack:"data"`
}

// schemeResponse mirrors the provider's per-scheme JSON envelope.
// NAV records arrive as flat string maps so unknown field names
// survive decoding.
type schemeResponse struct {
	Meta   SchemeMeta          `json:"meta"`
	Data   []map[string]string `json:"data"`
	Status string              `json:"status"`
}

// catalogResponse tolerates both envelope shapes the provider has
// used: a bare array and an object with a data field.
type catalogResponse struct {
	entries []CatalogEntry
}

func (r *catalogResponse) UnmarshalJSON(b []byte) error {
	var bare []CatalogEntry
	if err := json.Unmarshal(b, &bare); err == nil {
		r.entries = bare
		return nil
	}

	var wrapped struct {
		Data []CatalogEntry `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	r.entries = wrapped.Data
	return nil
}

// toRawRecords converts the provider's string maps into NAV records,
// preserving all fields for alias resolution downstream.
func toRawRecords(data []map[string]string) []nav.RawRecord {
	records := make([]nav.RawRecord, 0, len(data))
	for _, m := range data {
		records = append(records, nav.RawRecord{
			Date:   m["date"],
			Values: m,
		})
	}
	return records
}
