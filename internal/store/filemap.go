package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Insert when a record with the same id
// already exists.
var ErrDuplicateID = errors.New("duplicate file id")

// Insert adds rec to the filemap. A uniqueness violation is reported as an
// error wrapping ErrDuplicateID; every other failure is returned as is.
func (s *Store) Insert(rec *FileRecord) error {
	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO filemap (id, src_file, xml_file, package, filename) VALUES (?, ?, ?, ?, ?)",
			rec.ID, rec.SrcFile, rec.XMLFile, nullString(rec.Package), rec.FileName,
		)
		return err
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("insert file %s: %w", rec.ID, ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("insert file %s: %w", rec.ID, err)
	}
	return nil
}

// UpdatePackage sets the package of the record with the given id,
// overwriting any previous value.
func (s *Store) UpdatePackage(id, pkg string) error {
	err := s.inTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE filemap SET package = ? WHERE id = ?", pkg, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no file with id %s", id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}
	return nil
}

// FileByID returns the record with the given id, or nil if none exists.
func (s *Store) FileByID(id string) (*FileRecord, error) {
	var rec *FileRecord
	err := s.inTx(func(tx *sql.Tx) error {
		r := &FileRecord{}
		var pkg sql.NullString
		err := tx.QueryRow(
			"SELECT id, src_file, xml_file, package, filename FROM filemap WHERE id = ?", id,
		).Scan(&r.ID, &r.SrcFile, &r.XMLFile, &pkg, &r.FileName)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		if pkg.Valid {
			r.Package = &pkg.String
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("file by id: %w", err)
	}
	return rec, nil
}

// All returns every record ordered by package, then file name. Records
// without a package sort first.
func (s *Store) All() ([]*FileRecord, error) {
	var out []*FileRecord
	err := s.inTx(func(tx *sql.Tx) error {
		rows, err := tx.Query(
			"SELECT id, src_file, xml_file, package, filename FROM filemap ORDER BY package, filename, id",
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			r := &FileRecord{}
			var pkg sql.NullString
			if err := rows.Scan(&r.ID, &r.SrcFile, &r.XMLFile, &pkg, &r.FileName); err != nil {
				return fmt.Errorf("scan file: %w", err)
			}
			if pkg.Valid {
				r.Package = &pkg.String
			}
			out = append(out, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("all files: %w", err)
	}
	return out, nil
}
