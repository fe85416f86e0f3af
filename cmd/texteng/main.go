// Package main is a small CLI that exercises the text-engine core end to
// end: open or mmap a file, apply an edit, search, and write the result
// back out.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/texteng/internal/config"
	"github.com/dshills/texteng/internal/engine/document"
	"github.com/dshills/texteng/internal/search"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	file       string
	insertAt   int
	insertText string
	search     string
	reverse    bool
	saveAs     string
	inPlace    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	commonlog.Configure(1, nil)
	logger := commonlog.GetLoggerf("texteng.cli")

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	doc, err := openDocument(opts, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open %q: %v\n", opts.file, err)
		return 1
	}
	defer doc.Close()

	if opts.insertText != "" {
		if _, err := doc.Insert(document.ByteOffset(opts.insertAt), opts.insertText); err != nil {
			fmt.Fprintf(os.Stderr, "Error: insert failed: %v\n", err)
			return 1
		}
		logger.Infof("inserted %d bytes at offset %d", len(opts.insertText), opts.insertAt)
	}

	if opts.search != "" {
		if err := runSearch(doc, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: search failed: %v\n", err)
			return 1
		}
	}

	if opts.saveAs != "" {
		if err := doc.SaveAs(opts.saveAs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save failed: %v\n", err)
			return 1
		}
		logger.Infof("wrote %s", opts.saveAs)
	} else if opts.inPlace {
		if err := doc.Save(); err != nil {
			if errors.Is(err, document.ErrNoBackingFile) {
				fmt.Fprintf(os.Stderr, "Error: -in-place requires -file to name an existing file\n")
				return 1
			}
			fmt.Fprintf(os.Stderr, "Error: save failed: %v\n", err)
			return 1
		}
		logger.Infof("wrote %s in place", opts.file)
	}

	return 0
}

func openDocument(opts options, settings config.Settings) (*document.Document, error) {
	docOpts := []document.Option{
		document.WithCacheEntries(settings.Engine.MmapCacheEntries),
	}
	if opts.file == "" {
		return document.New(docOpts...), nil
	}
	return document.NewFromPath(opts.file, docOpts...)
}

func runSearch(doc *document.Document, opts options) error {
	pattern := []byte(opts.search)

	var c *search.Cursor
	if opts.reverse {
		c = doc.FindReverse(pattern, nil)
	} else {
		c = doc.Find(pattern, nil)
	}

	found := 0
	for {
		pos, ok := c.Current()
		if !ok {
			break
		}
		fmt.Printf("match at offset %d\n", pos)
		found++
		if !c.Next() {
			break
		}
	}
	if err := c.Err(); err != nil {
		return err
	}
	if found == 0 {
		fmt.Println("no matches")
	}
	return nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.file, "file", "", "path to open (mmap'd if it exists)")
	flag.IntVar(&opts.insertAt, "at", 0, "byte offset for -insert")
	flag.StringVar(&opts.insertText, "insert", "", "text to insert at -at")
	flag.StringVar(&opts.search, "search", "", "byte pattern to search for")
	flag.BoolVar(&opts.reverse, "reverse", false, "search backward from the end")
	flag.StringVar(&opts.saveAs, "save-as", "", "write the result to a new path")
	flag.BoolVar(&opts.inPlace, "in-place", false, "write the result back to -file")
	flag.BoolVar(&showVersion, "version", false, "print version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "texteng - piece-tree text engine CLI\n\n")
		fmt.Fprintf(os.Stderr, "Usage: texteng [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  texteng -file a.txt -search needle\n")
		fmt.Fprintf(os.Stderr, "  texteng -file a.txt -insert \"hi\" -at 0 -in-place\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("texteng %s (%s)\n", version, commit)
		os.Exit(0)
	}

	return opts
}
