package sharon

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jward/sharon/internal/java"
	"github.com/jward/sharon/internal/kotlin"
	"github.com/jward/sharon/internal/lang"
	"github.com/jward/sharon/internal/xmlout"
)

// workItem holds everything a conversion worker needs.
type workItem struct {
	path    string
	dialect lang.Dialect
	rec     *FileRecord
}

// convertAll converts items on a pool of e.jobs workers. Workers never
// return errors to the group, so one failing file cannot cancel the
// others; failures are collected in item order instead.
func (e *Engine) convertAll(ctx context.Context, items []workItem) []*FileError {
	errs := make([]error, len(items))

	var g errgroup.Group
	g.SetLimit(e.jobs)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			started := time.Now()
			err := e.convertFile(ctx, item)
			elapsed := time.Since(started)
			e.metrics.FileDone(string(item.dialect), elapsed, err)
			if err != nil {
				e.logger.Error("conversion failed",
					zap.String("path", item.path),
					zap.String("id", item.rec.ID),
					zap.Error(err),
				)
				errs[i] = err
				return nil
			}
			e.logger.Debug("converted",
				zap.String("path", item.path),
				zap.String("id", item.rec.ID),
				zap.String("dialect", string(item.dialect)),
				zap.Duration("elapsed", elapsed),
			)
			return nil
		})
	}
	_ = g.Wait()

	var failures []*FileError
	for i, err := range errs {
		if err != nil {
			failures = append(failures, &FileError{Path: items[i].path, Err: err})
		}
	}
	return failures
}

// convertFile parses one source file and writes its document to the
// record's output path. The package, once seen, is written back to the
// filemap.
func (e *Engine) convertFile(ctx context.Context, item workItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := os.ReadFile(item.path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	recordPackage := func(pkg string) error {
		return e.store.UpdatePackage(item.rec.ID, pkg)
	}

	var visit func(w *xmlout.Writer) error
	switch item.dialect {
	case lang.Java:
		f, err := java.Parse(ctx, src)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		visit = func(w *xmlout.Writer) error {
			return java.NewVisitor(w, java.OnPackage(recordPackage)).VisitFile(f, item.rec.SrcFile)
		}
	case lang.Kotlin:
		f, err := kotlin.Parse(ctx, src)
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		visit = func(w *xmlout.Writer) error {
			return kotlin.NewVisitor(w, kotlin.OnPackage(recordPackage)).VisitFile(f, item.rec.SrcFile)
		}
	default:
		return fmt.Errorf("no converter for dialect %q", item.dialect)
	}

	return e.writeDocument(item.rec.XMLFile, visit)
}

func (e *Engine) writeDocument(path string, visit func(w *xmlout.Writer) error) error {
	opts := []xmlout.Option{xmlout.WithIndent(e.indent)}
	if e.newline != "" {
		opts = append(opts, xmlout.WithNewline(e.newline))
	}
	w, err := xmlout.Create(path, opts...)
	if err != nil {
		return err
	}
	w.StartDocument()
	if err := visit(w); err != nil {
		w.Close()
		return err
	}
	w.EndDocument()
	return w.Close()
}
