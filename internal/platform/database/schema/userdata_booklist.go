package schema

// UserDataBookListTable represents the 'userdata.booklist' table
type UserDataBookListTable struct {
	Table       string
	ID          string
	UserID      string
	Name        string
	Slug        string
	Description string
	ListType    string
	Visibility  string
	IsDefault   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// UserDataBookList is the schema definition for userdata.booklist
var UserDataBookList = UserDataBookListTable{
	Table:       "userdata.booklist",
	ID:          "id",
	UserID:      "userid",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	ListType:    "listtype",
	Visibility:  "visibility",
	IsDefault:   "isdefault",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t UserDataBookListTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Name, t.Slug, t.Description, t.ListType,
		t.Visibility, t.IsDefault, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
