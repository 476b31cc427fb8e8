// Package sectormatch matches free-text sector and flow names against
// standard industrial-ecology classifications using sentence embeddings.
//
// Quick start:
//
//	m, err := sectormatch.New("NACE", sectormatch.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	report, _ := m.Match(ctx, "coal mining", "dairy farming")
//	for _, row := range report.Rows {
//	    fmt.Println(row.Input, row.Code, row.Sector, row.Similarity)
//	}
//
// The Matcher instance is safe for concurrent use. Create once, reuse across
// requests; reference embeddings are computed on first Match and cached.
package sectormatch
