package schema

// UserDataShelfEntryTable represents the 'userdata.shelfentry' table
type UserDataShelfEntryTable struct {
	Table            string
	ID               string
	UserID           string
	BookID           string
	Status           string
	Rating           string
	CurrentPage      string
	CurrentSeconds   string
	UserPageCount    string
	UserAudioSeconds string
	Notes            string
	StartedAt        string
	FinishedAt       string
	DNFDate          string
	DNFReason        string
	CreatedAt        string
	UpdatedAt        string
}

// UserDataShelfEntry is the schema definition for userdata.shelfentry
var UserDataShelfEntry = UserDataShelfEntryTable{
	Table:            "userdata.shelfentry",
	ID:               "id",
	UserID:           "userid",
	BookID:           "bookid",
	Status:           "status",
	Rating:           "rating",
	CurrentPage:      "currentpage",
	CurrentSeconds:   "currentseconds",
	UserPageCount:    "userpagecount",
	UserAudioSeconds: "useraudioseconds",
	Notes:            "notes",
	StartedAt:        "startedat",
	FinishedAt:       "finishedat",
	DNFDate:          "dnfdate",
	DNFReason:        "dnfreason",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns all standard column names
func (t UserDataShelfEntryTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.Status, t.Rating, t.CurrentPage, t.CurrentSeconds,
		t.UserPageCount, t.UserAudioSeconds, t.Notes, t.StartedAt, t.FinishedAt,
		t.DNFDate, t.DNFReason, t.CreatedAt, t.UpdatedAt,
	}
}
