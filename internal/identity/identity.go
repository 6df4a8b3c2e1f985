// Package identity assigns every source file a unique, content-addressed
// identity and the output document path derived from it.
package identity

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jward/sharon/internal/store"
)

// Inserter persists identity records. Insert must report a uniqueness
// violation with an error wrapping store.ErrDuplicateID.
type Inserter interface {
	Insert(rec *store.FileRecord) error
}

// Assigner resolves source paths to identity records. It is not safe for
// concurrent use; identities are assigned from a single goroutine.
type Assigner struct {
	store   Inserter
	outDir  string
	retries int
}

// NewAssigner returns an Assigner writing records to s, with output
// documents placed in outDir.
func NewAssigner(s Inserter, outDir string) *Assigner {
	return &Assigner{store: s, outDir: outDir}
}

// Hash returns the hexadecimal xxhash of path.
func Hash(path string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(path))
}

// OutputPath returns the document path for id inside outDir.
func OutputPath(outDir, id string) string {
	return filepath.Join(outDir, id+".xml")
}

// DisplayName returns the file name of path without its extension.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resolve creates the identity record for the file at path. The id is the
// hash of the absolute path followed by the first free sequence number.
func (a *Assigner) Resolve(path string) (*store.FileRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	hash := Hash(abs)
	for seq := 0; ; seq++ {
		id := fmt.Sprintf("%s_%d", hash, seq)
		rec := &store.FileRecord{
			ID:       id,
			SrcFile:  abs,
			XMLFile:  OutputPath(a.outDir, id),
			FileName: DisplayName(abs),
		}
		err := a.store.Insert(rec)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, store.ErrDuplicateID) {
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		a.retries++
	}
}

// Retries returns the number of collisions resolved so far.
func (a *Assigner) Retries() int {
	return a.retries
}
