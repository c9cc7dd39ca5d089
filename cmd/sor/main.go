// Command sor decodes Bellcore SR-4731 / Telcordia GR-196 OTDR trace files
// and reports, stores, or charts what it finds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/banshee-data/sorparser/internal/sor"
	"github.com/banshee-data/sorparser/internal/sorchart"
	"github.com/banshee-data/sorparser/internal/sorreport"
	"github.com/banshee-data/sorparser/internal/sorstore"
)

const version = "0.1.0"

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "parse":
		handleParse(args)
	case "version":
		fmt.Printf("sor version %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sor - Standard OTDR Record (SOR) trace file decoder

Usage: sor <command> [options]

Commands:
  parse      Decode a .sor file and print/store/chart its contents
  version    Show sor version
  help       Show this help message

Examples:
  sor parse trace.sor
  sor parse trace.sor --json --pretty
  sor parse trace.sor --store traces.db
  sor parse trace.sor --chart trace.html --png trace.png`)
}

func handleParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "Print the decoded record as JSON")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output (implies --json)")
	storePath := fs.String("store", "", "Persist the decoded record into a SQLite database at this path")
	chartPath := fs.String("chart", "", "Write an interactive HTML chart of key events to this path")
	pngPath := fs.String("png", "", "Write a static PNG loss profile to this path")
	withSamples := fs.Bool("with-samples", false, "Include raw DataPts sample values in the decoded record")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: a .sor file path is required")
		fs.Usage()
		os.Exit(1)
	}
	path := fs.Arg(0)

	type outputFlag struct {
		path string
		exts []string
	}
	for _, out := range []outputFlag{
		{*storePath, []string{".db", ".sqlite", ".sqlite3"}},
		{*chartPath, []string{".html", ".htm"}},
		{*pngPath, []string{".png"}},
	} {
		if out.path == "" {
			continue
		}
		if err := validateOutputPath(out.path, out.exts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: rejecting output path %q: %v\n", out.path, err)
			os.Exit(1)
		}
	}

	rec, err := sor.ParseWithOptions(path, sor.ParseOptions{IncludeSamples: *withSamples})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to parse %s: %v\n", path, err)
		os.Exit(1)
	}

	if *storePath != "" {
		if err := storeRecord(*storePath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to store record: %v\n", err)
			os.Exit(1)
		}
	}
	if *chartPath != "" {
		if err := writeChart(*chartPath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write chart: %v\n", err)
			os.Exit(1)
		}
	}
	if *pngPath != "" {
		if err := sorchart.SavePNG(*pngPath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write PNG: %v\n", err)
			os.Exit(1)
		}
	}

	if wantsJSON(*jsonOut, *pretty) {
		if err := printJSON(rec, *pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := sorreport.Write(os.Stdout, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to print summary: %v\n", err)
		os.Exit(1)
	}
}

// wantsJSON reports whether the parse output should be rendered as JSON:
// either --json was passed directly, or --pretty was, since pretty-printing
// only makes sense for the JSON encoder.
func wantsJSON(jsonFlag, prettyFlag bool) bool {
	return jsonFlag || prettyFlag
}

func printJSON(rec *sor.Record, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}

func storeRecord(path string, rec *sor.Record) error {
	db, err := sorstore.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	runID, err := db.SaveRecord(rec)
	if err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	fmt.Fprintf(os.Stderr, "stored run %s in %s\n", runID, path)
	return nil
}

func writeChart(path string, rec *sor.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return sorchart.WriteHTML(f, rec)
}
