package model

// Row is one line of a matching report: the r-th best guess for one input.
// Code is populated only when the catalog is code-bearing (omitted from JSON
// otherwise), so plain and coded classifications share a single row shape.
type Row struct {
	Input      string  `json:"input"`
	Order      int     `json:"order"`
	Code       string  `json:"code,omitempty"`
	Sector     string  `json:"sector"`
	Similarity float64 `json:"similarity"`
}

// Report is the full result of one matching session, ordered by
// (input order as supplied, ascending rank).
type Report struct {
	Classification string `json:"classification"`
	Coded          bool   `json:"coded"`
	Guesses        int    `json:"guesses"`
	Rows           []Row  `json:"rows"`
}
