package gdrive

// File is a simplified representation of a Drive file fetched as text.
type File struct {
	ID      string
	Name    string
	Content string
}
