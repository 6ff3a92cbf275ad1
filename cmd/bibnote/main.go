// Package main provides the bibnote CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibnote",
	Short: "Keep Markdown reference sections in sync with BibTeX files",
	Long: `bibnote rewrites the "Reference" section of Markdown notes.

Each note declares a bibliography file and citation keys in its YAML
frontmatter; bibnote looks the keys up in the BibTeX file and
regenerates the HTML reference list between the managed markers:

  <!-- BEGIN:references -->
  ...
  <!-- END:references -->

Notes carrying a frontmatter date are renamed to <date>-<slug>.<ext>
so filenames stay in step with their metadata. The original file is
copied to tmp-<slug>.bak before being overwritten.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpdate,
}

func init() {
	rootCmd.Flags().StringVar(&folder, "folder", "", "Folder containing Markdown files")
	rootCmd.Flags().BoolVar(&styleInline, "style-inline", false, "Insert the <style> block above the reference list")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned changes without writing files")
	rootCmd.Version = Version
}
