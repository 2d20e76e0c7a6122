package catalog

// BookFacts holds the physical measurements of a book as known by the
// catalog service. Every field is optional because editions differ and
// the catalog record may be incomplete.
type BookFacts struct {
	PageCount          *int `json:"page_count"`
	EbookPageCount     *int `json:"ebook_page_count"`
	AudioLengthSeconds *int `json:"audio_length_seconds"`
}

// NamedRef is a lightweight (id, name) pair for genres and authors.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookSummary is the catalog record used to decorate user-data responses.
type BookSummary struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	CoverURL *string    `json:"cover_url"`
	Facts    BookFacts  `json:"facts"`
	Genres   []NamedRef `json:"genres"`
	Authors  []NamedRef `json:"authors"`
}
