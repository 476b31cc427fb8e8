package sectormatch

import "github.com/crimson-sun/sectormatch/internal/model"

// Row is one match candidate for one input.
// This is the stable public type — internal representations may evolve
// independently without breaking consumers.
type Row struct {
	Input      string  `json:"input"`          // The text as supplied
	Order      int     `json:"order"`          // Rank, 1 = best match
	Code       string  `json:"code,omitempty"` // Classification code; empty for plain lists
	Sector     string  `json:"sector"`         // Matched reference entry
	Similarity float64 `json:"similarity"`     // Cosine similarity score
}

// Report is the result of one matching session: Guesses rows per input,
// grouped by input order.
type Report struct {
	Classification string `json:"classification"` // Canonical classification name
	Coded          bool   `json:"coded"`          // Whether rows carry codes
	Guesses        int    `json:"guesses"`        // Candidates per input
	Rows           []Row  `json:"rows"`
}

func reportFromModel(r model.Report) Report {
	rows := make([]Row, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = Row{
			Input:      row.Input,
			Order:      row.Order,
			Code:       row.Code,
			Sector:     row.Sector,
			Similarity: row.Similarity,
		}
	}
	return Report{
		Classification: r.Classification,
		Coded:          r.Coded,
		Guesses:        r.Guesses,
		Rows:           rows,
	}
}
