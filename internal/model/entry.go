package model

// ReferenceEntry is a single entry of a reference classification list.
// Code is empty for plain-label classifications. Entries are identified by
// their position in the classification's ordered list and never mutated
// after loading.
type ReferenceEntry struct {
	Code  string
	Label string
}
