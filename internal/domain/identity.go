package domain

// Identity is the signed-in viewer as handed to the runtime by the external
// auth collaborator. The runtime never issues or refreshes credentials; it
// only reads them.
type Identity struct {
	Email       string
	DisplayName string
	Token       string // opaque bearer credential
}

// Authenticated reports whether this identity carries a usable credential.
func (i Identity) Authenticated() bool {
	return i.Email != "" && i.Token != ""
}

// UserProfile is the viewer's profile as returned by the catalog.
type UserProfile struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// UserStats aggregates the viewer's activity counts.
type UserStats struct {
	BooksAdded     int `json:"booksAdded"`
	ReviewsWritten int `json:"reviewsWritten"`
	Bookmarks      int `json:"bookmarks"`
	Likes          int `json:"likes"`
	Upvotes        int `json:"upvotesReceived"`
}
