// Package lang maps source files to the dialects the engine understands and
// each dialect to its tree-sitter grammar.
package lang

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/kotlin"
)

// Dialect is a canonical source dialect name.
type Dialect string

const (
	Java   Dialect = "java"
	Kotlin Dialect = "kotlin"
)

// extToDialect maps file extensions to dialects.
var extToDialect = map[string]Dialect{
	".java": Java,
	".kt":   Kotlin,
	".kts":  Kotlin,
}

// dialectToGrammar is lazily initialized on first use.
var (
	dialectToGrammar map[Dialect]*sitter.Language
	grammarsOnce     sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		dialectToGrammar = map[Dialect]*sitter.Language{
			Java:   java.GetLanguage(),
			Kotlin: kotlin.GetLanguage(),
		}
	})
}

// ForFile returns the dialect of a file path based on its extension.
// Returns ("", false) if the extension is not recognized.
func ForFile(path string) (Dialect, bool) {
	d, ok := extToDialect[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// Lookup resolves a dialect by name, as given on the command line or in a
// configuration file.
func Lookup(name string) (Dialect, bool) {
	d := Dialect(strings.ToLower(strings.TrimSpace(name)))
	switch d {
	case Java, Kotlin:
		return d, true
	}
	return "", false
}

// All returns every supported dialect in name order.
func All() []Dialect {
	initGrammars()
	out := make([]Dialect, 0, len(dialectToGrammar))
	for d := range dialectToGrammar {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Grammar returns the tree-sitter language for a dialect.
// Returns (nil, false) if the dialect is not supported.
func Grammar(d Dialect) (*sitter.Language, bool) {
	initGrammars()
	l, ok := dialectToGrammar[d]
	return l, ok
}

// Parse parses src with the grammar of dialect d. The caller owns the
// returned tree and must Close it.
func Parse(ctx context.Context, d Dialect, src []byte) (*sitter.Tree, error) {
	grammar, ok := Grammar(d)
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", d, err)
	}
	return tree, nil
}
