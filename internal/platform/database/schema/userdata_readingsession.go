package schema

// UserDataReadingSessionTable represents the 'userdata.readingsession' table
type UserDataReadingSessionTable struct {
	Table       string
	ID          string
	UserID      string
	BookID      string
	SessionDate string
	PagesRead   string
	StartPage   string
	EndPage     string
	MinutesRead string
	Method      string
	Notes       string
	CreatedAt   string
	UpdatedAt   string
}

// UserDataReadingSession is the schema definition for userdata.readingsession
var UserDataReadingSession = UserDataReadingSessionTable{
	Table:       "userdata.readingsession",
	ID:          "id",
	UserID:      "userid",
	BookID:      "bookid",
	SessionDate: "sessiondate",
	PagesRead:   "pagesread",
	StartPage:   "startpage",
	EndPage:     "endpage",
	MinutesRead: "minutesread",
	Method:      "method",
	Notes:       "notes",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserDataReadingSessionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.SessionDate, t.PagesRead, t.StartPage, t.EndPage,
		t.MinutesRead, t.Method, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
