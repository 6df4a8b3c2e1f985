// Package sharon converts Java and Kotlin source files into normalized XML
// documentation documents built on tree-sitter.
//
// # Pipeline
//
// A run has three phases:
//
//  1. Discover: explicit files and directory trees are expanded into the
//     list of supported source files (.java, .kt, .kts).
//
//  2. Assign: each file is given a content-addressed identity, the xxhash
//     of its absolute path plus a sequence number, and an output path
//     {outdir}/{id}.xml. Assignment is serial and recorded in a SQLite
//     filemap table whose uniqueness constraint resolves collisions.
//
//  3. Convert: a bounded worker pool parses every file with the dialect's
//     grammar and streams its document through a dialect visitor. The
//     package of each file is written back to the filemap as soon as it
//     is seen. A failing file never stops its siblings.
//
// # Usage
//
//	e, err := sharon.New("filemap.db", sharon.WithOutputDir("out"))
//	if err != nil { ... }
//	defer e.Close()
//
//	res, err := e.Run(ctx, []string{"src/main/java"})
//	err = e.ExportFile("out/files.jsonl")
//
// Run returns a [*RunError] listing every [*FileError] when some files could
// not be converted; the documents of the other files are complete.
//
// # Documents
//
// Every document is rooted at a "file" element. Declarations become class,
// record, enum, annotation, field and method elements carrying a "fullname"
// built from the enclosing package and types. Documentation comments are
// folded into a "javadoc" element; method bodies become a "code" element
// holding conditions, loops, try blocks and the pseudo-assignments written
// in "///" comments.
package sharon
