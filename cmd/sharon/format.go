package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/jward/sharon"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	pathColor = color.New(color.FgYellow)
)

// formatFilesText formats the converted files as aligned columns.
func formatFilesText(w io.Writer, files []*sharon.FileRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPACKAGE\tNAME\tSOURCE")
	for _, f := range files {
		pkg := "-"
		if f.Package != nil {
			pkg = *f.Package
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, pkg, f.FileName, f.SrcFile)
	}
	tw.Flush()
}

// formatFailures writes one line per failed file.
func formatFailures(w io.Writer, runErr *sharon.RunError) {
	failColor.Fprintf(w, "%d file(s) failed:\n", len(runErr.Files))
	for _, f := range runErr.Files {
		fmt.Fprintf(w, "  %s: %v\n", pathColor.Sprint(f.Path), f.Err)
	}
}
