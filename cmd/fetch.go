package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/cricsheet"
)

// fetch command flags.
var (
	// fetchZstd stores extracted matches as .json.zst.
	fetchZstd bool
	// fetchTimeout bounds the whole archive download.
	fetchTimeout time.Duration
	// fetchKeep keeps the downloaded archive next to the matches directory.
	fetchKeep bool
)

// fetchCmd is the cobra command for downloading a cricsheet match archive.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and unpack a cricsheet match archive",
	Long: `Download a cricsheet JSON zip archive (IPL by default) and extract every
match file into the matches directory, replacing files with the same name.

Examples:
  cricstats fetch
  cricstats fetch --url https://cricsheet.org/downloads/t20s_json.zip --matches t20i/matches
  cricstats fetch --zstd`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("url", "", "archive URL (default cricsheet IPL JSON zip)")
	fetchCmd.Flags().BoolVar(&fetchZstd, "zstd", false, "store matches zstd-compressed as .json.zst")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "download timeout")
	fetchCmd.Flags().BoolVar(&fetchKeep, "keep-archive", false, "keep the downloaded zip next to the matches directory")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	client := cricsheet.NewClient(fetchTimeout)

	archive := filepath.Join(filepath.Dir(filepath.Clean(cfg.MatchesDir)), filepath.Base(cfg.Fetch.URL))
	if !fetchKeep {
		tmpDir, err := os.MkdirTemp("", "cricstats-*")
		if err != nil {
			return fmt.Errorf("temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)
		archive = filepath.Join(tmpDir, "matches.zip")
	}

	fmt.Fprintf(os.Stderr, "Downloading %s\n", cfg.Fetch.URL)
	n, err := client.Download(cmd.Context(), cfg.Fetch.URL, archive)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  %s received\n", humanize.Bytes(uint64(n)))

	count, err := cricsheet.ExtractMatches(archive, cfg.MatchesDir, cricsheet.ExtractOptions{Compress: fetchZstd})
	if err != nil {
		return fmt.Errorf("extract archive: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Extracted %s match files into %s\n", humanize.Comma(int64(count)), cfg.MatchesDir)
	return nil
}
