package sharon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// exportLine is one NDJSON line of the filemap export.
type exportLine struct {
	ID       string  `json:"id"`
	SrcFile  string  `json:"src_file"`
	XMLFile  string  `json:"xml_file"`
	Package  *string `json:"package"`
	FileName string  `json:"file_name"`
}

// Export writes every filemap record to w as newline-delimited JSON,
// ordered by package then file name. Absent packages are written as null.
func (e *Engine) Export(w io.Writer) error {
	recs, err := e.store.All()
	if err != nil {
		return fmt.Errorf("sharon: export: %w", err)
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, r := range recs {
		line := exportLine{
			ID:       r.ID,
			SrcFile:  r.SrcFile,
			XMLFile:  r.XMLFile,
			Package:  r.Package,
			FileName: r.FileName,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("sharon: export: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sharon: export: %w", err)
	}
	return nil
}

// ExportFile writes the export to path, creating parent directories.
func (e *Engine) ExportFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sharon: export: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sharon: export: %w", err)
	}
	if err := e.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sharon: export: %w", err)
	}
	e.logger.Info("exported filemap", zap.String("path", path))
	return nil
}
