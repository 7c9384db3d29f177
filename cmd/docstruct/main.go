package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Docstruct - document title and outline extraction",
	Long: `Docstruct infers document structure from layout signals.

It reads PDF, DOCX, HTML, Markdown, and plain-text files, reconstructs
the flat sequence of text fragments each one prints, and derives the
document title plus an H1/H2 outline from font sizes, boldness, and
page placement rather than from format-specific metadata.

Use docstruct to convert directory trees or S3 prefixes in batch, or to
run the HTTP parsing service.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
