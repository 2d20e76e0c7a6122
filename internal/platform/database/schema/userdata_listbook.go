package schema

// UserDataListBookTable represents the 'userdata.listbook' table
type UserDataListBookTable struct {
	Table     string
	ListID    string
	BookID    string
	SortOrder string
	AddedAt   string
}

// UserDataListBook is the schema definition for userdata.listbook
var UserDataListBook = UserDataListBookTable{
	Table:     "userdata.listbook",
	ListID:    "listid",
	BookID:    "bookid",
	SortOrder: "sortorder",
	AddedAt:   "addedat",
}
