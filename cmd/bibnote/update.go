package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zejiany/bibnote/internal/bibtex"
	"github.com/zejiany/bibnote/internal/config"
	"github.com/zejiany/bibnote/internal/notes"
)

var (
	folder      string
	styleInline bool
	dryRun      bool
)

func runUpdate(cmd *cobra.Command, args []string) error {
	// Load .env file if present (for BIBNOTE_FOLDER)
	_ = godotenv.Load()

	dir, err := config.ResolveFolder(folder)
	if err != nil {
		if errors.Is(err, config.ErrFolderNotConfigured) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			os.Exit(ExitConfigError)
		}
		exitWithError(ExitConfigError, "resolving folder: %v", err)
	}

	opts := notes.Options{
		Folder:      dir,
		InlineStyle: styleInline,
		DryRun:      dryRun,
	}
	if _, _, err := notes.Run(os.Stdout, opts, bibtex.NewCache()); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return nil
}
