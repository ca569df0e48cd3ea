// Package cricsheet downloads ball-by-ball match archives published by
// cricsheet.org and unpacks them into a matches directory.
package cricsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)


// Client is a minimal cricsheet download client.
type Client struct {
	http *http.Client
}

// NewClient returns a client whose requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Download fetches url into dst and returns the number of bytes written.
// dst is only replaced once the body has been read completely.
func (c *Client) Download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create download dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return 0, fmt.Errorf("rename download: %w", err)
	}
	return n, nil
}

// ExtractOptions controls ExtractMatches.
type ExtractOptions struct {
	// Compress writes each match as <id>.json.zst instead of plain JSON.
	Compress bool
}

// ExtractMatches unpacks every *.json entry of the archive at zipPath into
// dir, flattening any directories inside the archive. Other entries
// (README, CSV indexes) are ignored. It returns the number of matches written.
func ExtractMatches(zipPath, dir string, opts ExtractOptions) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create matches dir: %w", err)
	}

	var enc *zstd.Encoder
	if opts.Compress {
		if enc, err = zstd.NewWriter(nil); err != nil {
			return 0, fmt.Errorf("zstd: %w", err)
		}
		defer enc.Close()
	}

	written := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		// Base strips any path in the entry name, so nothing escapes dir.
		name := filepath.Base(f.Name)
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		if err := extractOne(f, dir, name, enc); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func extractOne(f *zip.File, dir, name string, enc *zstd.Encoder) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	if enc == nil {
		out, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
		return out.Close()
	}

	raw, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return os.WriteFile(filepath.Join(dir, name+".zst"), enc.EncodeAll(raw, nil), 0o644)
}
