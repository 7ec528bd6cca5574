package domain

// ReadingStatus tracks the owner's progress through a book.
// The empty string means no status has been set.
type ReadingStatus string

const (
	StatusUnset      ReadingStatus = ""
	StatusWantToRead ReadingStatus = "Want-to-Read"
	StatusReading    ReadingStatus = "Reading"
	StatusRead       ReadingStatus = "Read"
)

// Valid checks if the status is a known value. StatusUnset is valid:
// "Remove Status" transitions back to it.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnset, StatusWantToRead, StatusReading, StatusRead:
		return true
	default:
		return false
	}
}

// Label returns the human-readable form of the status.
func (s ReadingStatus) Label() string {
	if s == StatusUnset {
		return "No Status"
	}
	switch s {
	case StatusWantToRead:
		return "Want to Read"
	default:
		return string(s)
	}
}
