package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status ReadingStatus
		want   bool
	}{
		{"unset", StatusUnset, true},
		{"want to read", StatusWantToRead, true},
		{"reading", StatusReading, true},
		{"read", StatusRead, true},
		{"unknown", ReadingStatus("Finished"), false},
		{"wrong case", ReadingStatus("reading"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestReadingStatus_Label(t *testing.T) {
	assert.Equal(t, "No Status", StatusUnset.Label())
	assert.Equal(t, "Want to Read", StatusWantToRead.Label())
	assert.Equal(t, "Reading", StatusReading.Label())
	assert.Equal(t, "Read", StatusRead.Label())
}

func TestRelationKind_Valid(t *testing.T) {
	for _, k := range []RelationKind{
		RelationBookmark, RelationLike, RelationUpvote,
		RelationReviewLike, RelationReviewDislike,
	} {
		assert.True(t, k.Valid(), "kind %q should be valid", k)
	}
	assert.False(t, RelationKind("star").Valid())
	assert.False(t, RelationKind("").Valid())
}

func TestRelationKind_SelfGuarded(t *testing.T) {
	// Bookmarking your own book is the one permitted self-interaction.
	assert.False(t, RelationBookmark.SelfGuarded())
	assert.True(t, RelationLike.SelfGuarded())
	assert.True(t, RelationUpvote.SelfGuarded())
	assert.True(t, RelationReviewLike.SelfGuarded())
	assert.True(t, RelationReviewDislike.SelfGuarded())
}

func TestBook_RelationFlags(t *testing.T) {
	b := &Book{ID: "book-1"}

	b.SetRelationFlag(RelationBookmark, true)
	assert.True(t, b.RelationFlag(RelationBookmark))
	assert.False(t, b.RelationFlag(RelationLike))

	b.SetRelationFlag(RelationLike, true)
	b.SetRelationFlag(RelationBookmark, false)
	assert.True(t, b.RelationFlag(RelationLike))
	assert.False(t, b.RelationFlag(RelationBookmark))

	// Review-level kinds never map onto book flags.
	b.SetRelationFlag(RelationReviewLike, true)
	assert.False(t, b.RelationFlag(RelationReviewLike))
}

func TestBook_OwnedBy(t *testing.T) {
	b := &Book{ID: "book-1", OwnerEmail: "ana@example.com"}
	assert.True(t, b.OwnedBy("ana@example.com"))
	assert.False(t, b.OwnedBy("ben@example.com"))
	assert.False(t, b.OwnedBy(""))
}

func TestIdentity_Authenticated(t *testing.T) {
	assert.False(t, Identity{}.Authenticated())
	assert.False(t, Identity{Email: "ana@example.com"}.Authenticated())
	assert.False(t, Identity{Token: "tok"}.Authenticated())
	assert.True(t, Identity{Email: "ana@example.com", Token: "tok"}.Authenticated())
}
