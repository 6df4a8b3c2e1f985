package sharon

import "github.com/jward/sharon/internal/store"

// FileRecord is the identity record of one converted file: its id, source
// path, output path, package (nil until discovered) and display name.
type FileRecord = store.FileRecord
