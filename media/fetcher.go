// Package media downloads remote files to local disk in bounded chunks. It
// backs both upload staging and the download helpers on media, profile
// pictures and QR codes.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mbenaiss/whatsapp-client/logging"
	"github.com/mbenaiss/whatsapp-client/metrics"
)

// ChunkSize is the size of each read from the remote body.
const ChunkSize = 64 * 1024

// Fetcher streams remote resources to local files.
type Fetcher struct {
	httpClient *http.Client
	log        *logging.Logger
}

// NewFetcher creates a fetcher. A nil httpClient gets a 30 second timeout,
// a nil logger discards output.
func NewFetcher(httpClient *http.Client, log *logging.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logging.Nop()
	}

	return &Fetcher{
		httpClient: httpClient,
		log:        log,
	}
}

// Fetch downloads rawURL into dir and returns the local path. When filename
// is empty it is taken from the last segment of the URL path. On failure no
// partial file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dir, filename string) (localPath string, err error) {
	defer func() {
		result := "ok"
		var dlErr *DownloadError
		if errors.As(err, &dlErr) {
			result = string(dlErr.Op)
		}
		metrics.IncMediaDownload(result)
	}()

	if rawURL == "" {
		return "", &DownloadError{Op: OpUnavailable}
	}

	if filename == "" {
		filename = FilenameFromURL(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &DownloadError{Op: OpOpen, URL: rawURL, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &DownloadError{Op: OpOpen, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &DownloadError{Op: OpOpen, URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	localPath = filepath.Join(dir, filename)
	out, err := os.Create(localPath)
	if err != nil {
		return "", &DownloadError{Op: OpCreate, URL: rawURL, Path: localPath, Err: err}
	}

	n, copyErr := copyChunked(out, resp.Body)
	closeErr := out.Close()
	if copyErr == nil && closeErr != nil {
		copyErr = &DownloadError{Op: OpWrite, URL: rawURL, Path: localPath, Err: closeErr}
	}
	if copyErr != nil {
		var dlErr *DownloadError
		if errors.As(copyErr, &dlErr) {
			dlErr.URL = rawURL
			dlErr.Path = localPath
		}
		if rmErr := os.Remove(localPath); rmErr != nil && !os.IsNotExist(rmErr) {
			f.log.Warn().Err(rmErr).Str("path", localPath).Msg("failed to remove partial download")
		}
		return "", copyErr
	}

	f.log.Debug().Str("url", rawURL).Str("path", localPath).Int64("bytes", n).Msg("media downloaded")

	return localPath, nil
}

// copyChunked copies src to dst through a fixed size buffer, tagging the
// failing side of the copy.
func copyChunked(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			written += int64(nw)
			if writeErr == nil && nw != nr {
				writeErr = io.ErrShortWrite
			}
			if writeErr != nil {
				return written, &DownloadError{Op: OpWrite, Err: writeErr}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &DownloadError{Op: OpRead, Err: readErr}
		}
	}
}

// FilenameFromURL returns the last path segment of rawURL, or a random
// wa_ prefixed name when the URL has none.
func FilenameFromURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return "wa_" + uuid.NewString()
}
