package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docstruct/internal/config"
	"github.com/dgallion1/docstruct/internal/outline"
	"github.com/dgallion1/docstruct/internal/pipeline"
	"github.com/dgallion1/docstruct/internal/source"
	"github.com/spf13/cobra"
)

var (
	runSource   string
	runInput    string
	runOut      string
	runWorkers  int
	runPatterns string
	runInclude  []string
	runExclude  []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse every supported document under a directory or S3 prefix",
	Long: `Parse documents in batch and write one JSON file per input.

Examples:
  # Convert a directory tree
  docstruct run --input ./docs --out ./parsed

  # Only Markdown files, eight workers
  docstruct run --input ./docs --out ./parsed --include '**/*.md' --workers 8

  # Use custom classification patterns
  docstruct run --input ./docs --out ./parsed --patterns patterns.yaml

  # Read from S3 (endpoint and credentials from S3_* environment variables)
  docstruct run --source s3 --out ./parsed
`,
	RunE: runBatch,
}

func init() {
	runCmd.Flags().StringVar(&runSource, "source", "filesystem", "Source type: filesystem or s3")
	runCmd.Flags().StringVarP(&runInput, "input", "i", ".", "Input directory for the filesystem source")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "parsed", "Output directory")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 4, "Number of parallel workers")
	runCmd.Flags().StringVarP(&runPatterns, "patterns", "p", "", "YAML file with classification pattern overrides")
	runCmd.Flags().StringSliceVar(&runInclude, "include", nil, "Glob patterns of files to include (default: all supported)")
	runCmd.Flags().StringSliceVar(&runExclude, "exclude", nil, "Glob patterns of files to exclude")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("interrupted, finishing in-flight documents")
		cancel()
	}()

	parser, err := newParserFromPatterns(runPatterns)
	if err != nil {
		return err
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	sum, err := pipeline.RunBatch(ctx, src, parser, runOut, runWorkers, log)
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(sum, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if sum.Failed > 0 {
		return fmt.Errorf("%d document(s) failed", sum.Failed)
	}
	return nil
}

func newParserFromPatterns(path string) (*pipeline.Parser, error) {
	var cfg outline.Config
	if path != "" {
		p, err := outline.LoadPatterns(path)
		if err != nil {
			return nil, err
		}
		cfg.Patterns = p
	}
	return pipeline.NewParser(cfg)
}

func newSource() (source.Source, error) {
	switch runSource {
	case "filesystem":
		return source.NewFilesystemSource(source.FilesystemConfig{
			BaseDir:         runInput,
			IncludePatterns: runInclude,
			ExcludePatterns: runExclude,
		})
	case "s3":
		cfg := config.Load()
		return source.NewS3Source(source.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			AccessKey:       cfg.S3AccessKey,
			SecretKey:       cfg.S3SecretKey,
			UseSSL:          cfg.S3UseSSL,
			IncludePatterns: runInclude,
			ExcludePatterns: runExclude,
		})
	default:
		return nil, fmt.Errorf("unknown source type: %s", runSource)
	}
}
