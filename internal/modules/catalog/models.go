package catalog

// Entry is a single scheme in the browsable catalog.
type Entry struct {
	SchemeCode      int    `json:"schemeCode"`
	SchemeName      string `json:"schemeName"`
	FundHouse       string `json:"fundHouse,omitempty"`
	ISINGrowth      string `json:"isinGrowth,omitempty"`
	ISINDivReinvest string `json:"isinDivReinvestment,omitempty"`
}

// Filter narrows and paginates a catalog listing.
type Filter struct {
	Query      string // case-insensitive substring of name or fund house
	CodePrefix string // scheme code prefix
	FundHouse  string // exact fund house, case-insensitive
	Category   string // case-insensitive substring of the scheme name
	Limit      int
	Offset     int
}

// ListResult is the paginated response shape.
// Count is the number of matches before pagination.
type ListResult struct {
	Count   int     `json:"count"`
	Results []Entry `json:"results"`
}
