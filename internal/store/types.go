package store

// FileRecord is one row of the filemap table. Package stays nil until the
// file's package declaration has been seen.
type FileRecord struct {
	ID       string
	SrcFile  string
	XMLFile  string
	Package  *string
	FileName string
}
