package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/treeio/phyloxml"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("phylodump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	countOnly := fs.Bool("count", false, "print the number of trees instead of the document")
	tagsOnly := fs.Bool("tags", false, "print one line per tree with its name and clade count")
	outPath := fs.String("o", "", "write the document to this path instead of stdout (\".gz\" compresses)")
	indent := fs.String("indent", "  ", "indent string for document output")
	encoding := fs.String("encoding", "", "declaration encoding for document output")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [flags] <document.phyloxml[.gz]>\n\n", os.Args[0]),
			writeln(stderr, "Reads a phyloXML document and writes it back out, optionally"),
			writeln(stderr, "summarizing its trees instead."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one phyloXML file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	path := remaining[0]

	if *countOnly || *tagsOnly {
		return summarize(path, *countOnly, stdout, stderr)
	}

	doc, err := phyloxml.ReadFile(path)
	if err != nil {
		if writeErr := writef(stderr, "error reading %s: %v\n", path, err); writeErr != nil {
			return 1
		}
		return 1
	}

	opts := []phyloxml.WriteOption{phyloxml.WithIndent(*indent)}
	if *encoding != "" {
		opts = append(opts, phyloxml.WithEncoding(*encoding))
	}
	if *outPath != "" {
		err = phyloxml.WriteFile(doc, *outPath, opts...)
	} else {
		err = phyloxml.Write(doc, stdout, opts...)
	}
	if err != nil {
		if writeErr := writef(stderr, "error writing: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

// summarize streams the document one tree at a time so arbitrarily large
// files stay cheap.
func summarize(path string, countOnly bool, stdout, stderr io.Writer) int {
	n := 0
	for phy, err := range phyloxml.ParseFile(path) {
		if err != nil {
			if writeErr := writef(stderr, "error parsing %s: %v\n", path, err); writeErr != nil {
				return 1
			}
			return 1
		}
		n++
		if countOnly {
			continue
		}
		name := phy.Name
		if name == "" {
			name = "(unnamed)"
		}
		if err := writef(stdout, "%d\t%s\t%d clades\n", n, name, countClades(phy.Root)); err != nil {
			return 1
		}
	}
	if countOnly {
		if err := writef(stdout, "%d\n", n); err != nil {
			return 1
		}
	}
	return 0
}

func countClades(c *phyloxml.Clade) int {
	if c == nil {
		return 0
	}
	n := 1
	for _, child := range c.Clades {
		n += countClades(child)
	}
	return n
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
