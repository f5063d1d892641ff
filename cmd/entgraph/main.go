package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"entgraph/internal/analysis"
	"entgraph/internal/config"
	"entgraph/internal/ibytes"
	"entgraph/internal/log"
	"entgraph/internal/resultstore"
)

var (
	filePath   = flag.String("file", "", "path of the file to analyze")
	chunks     = flag.Int("chunks", 0, "number of chunks the file is split into; higher gives more detail (0 uses the configured default)")
	ibytesDoc  = flag.String("ibytes", "", `JSON of byte groups to track, e.g. "{\"0's\": [0], \"Exploit\": [44, 144]}"; set to "{}" to disable tracking`)
	blobMode   = flag.Bool("blob", false, "treat the file as a raw byte stream, skipping executable structure annotations")
	configPath = flag.String("config", "", "optional TOML configuration file")
	outPath    = flag.String("out", "", "write the result JSON to this file instead of stdout")
	upload     = flag.String("upload", "", "bucket URL for uploading the result (file://, gs://, s3://)")
	listModes  = flag.Bool("list-modes", false, "prints out the available analysis modes")
	help       = flag.Bool("help", false, "print help on available options")
)

func printAnalysisModes() {
	fmt.Println("Available analysis modes:")
	for _, mode := range analysis.AllModes() {
		fmt.Println(mode)
	}
	fmt.Println()
}

// resolveSpec decides which interesting-bytes document applies: the
// -ibytes flag beats the config file, which beats the built-in defaults.
func resolveSpec(flagDoc, configDoc string) (ibytes.Spec, error) {
	doc := configDoc
	if flagDoc != "" {
		doc = flagDoc
	}
	if doc == "" {
		return ibytes.Default(), nil
	}
	return ibytes.Parse(doc)
}

func run(ctx context.Context) error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	chunkCount := cfg.Chunks
	if *chunks > 0 {
		chunkCount = *chunks
	}

	spec, err := resolveSpec(*ibytesDoc, cfg.IBytes)
	if err != nil {
		return err
	}

	mode := analysis.Binary
	if *blobMode {
		mode = analysis.Blob
	}

	ctx = log.ContextWithAttrs(ctx, slog.String("file", *filePath))
	result, err := analysis.Analyze(ctx, *filePath, analysis.Config{
		ChunkCount: chunkCount,
		IBytes:     spec,
		Mode:       mode,
	})
	if err != nil {
		return err
	}

	storeURL := cfg.Store
	if *upload != "" {
		storeURL = *upload
	}
	if storeURL != "" {
		rs := resultstore.New(storeURL)
		if err := rs.Save(ctx, result.Filename, result); err != nil {
			return fmt.Errorf("uploading result: %w", err)
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if *outPath != "" {
		return os.WriteFile(*outPath, out, 0o666)
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	log.Initialize(os.Getenv("LOGGER_ENV"))

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if *listModes {
		printAnalysisModes()
		return
	}
	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "Analysis failed", "error", err)
		os.Exit(1)
	}
}
