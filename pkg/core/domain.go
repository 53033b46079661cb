// Package core holds the commit domain, the storage contract and the recording service.
package core

// DefaultLabel is used for a kind or title that a line does not carry.
const DefaultLabel = "other"

// Commit is a classified commit line.
// Kind and Title are lower cased; Content and Hash keep their case.
type Commit struct {
	Kind    string
	Title   string
	Content string
	Hash    string
}

// StoredCommit is a Commit recorded under a tag.
type StoredCommit struct {
	ID  int64
	Tag string
	Commit
}

// TitleKey identifies a title within a kind.
type TitleKey struct {
	Kind  string
	Title string
}

// Outcome reports what an insert did.
type Outcome int

const (
	// Inserted means a new row was appended.
	Inserted Outcome = iota
	// Duplicate means a row with the same hash already exists, under any tag.
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}
