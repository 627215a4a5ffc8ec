package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/mbenaiss/whatsapp-client/media"
	"github.com/mbenaiss/whatsapp-client/metrics"
)

const genericErrorMessage = "Unexpected HTTP error."

// Params are request parameters. Nil values are dropped before encoding.
type Params map[string]any

// compact returns the non-nil entries of p.
func (p Params) compact() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// sortedKeys returns the keys of p in order so encoded bodies are stable.
func (p Params) sortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// optional maps the zero value of v to nil so it is left out of a request.
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// execute performs one authenticated call against the gateway. file, when
// not empty, is a local path or remote URL sent as the multipart "file"
// field.
func (c *Client) execute(ctx context.Context, path, method string, params Params, file string) (map[string]any, error) {
	if method == "" {
		method = http.MethodGet
	}
	params = params.compact()

	start := time.Now()
	route := routeLabel(path)

	var (
		body        io.Reader
		contentType string
		readFailed  chan error
		endpoint    = c.host + "/" + path
	)

	log := c.log.With("route", route).With("method", method)

	switch {
	case file != "":
		localPath, cleanup, err := c.stage(ctx, file)
		if err != nil {
			return nil, err
		}
		defer cleanup()

		mime, err := mimetype.DetectFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to detect mime type of %s: %w", localPath, err)
		}

		f, err := openUpload(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", localPath, err)
		}
		defer f.Close()

		src := &uploadReader{r: f}
		readFailed = make(chan error, 1)
		pr, pw := io.Pipe()
		mw := multipart.NewWriter(pw)
		contentType = mw.FormDataContentType()
		body = pr
		go func() {
			err := writeMultipart(mw, params, src, uploadName(file), mime.String())
			if src.err != nil {
				readFailed <- fmt.Errorf("failed to read upload %s: %w", localPath, src.err)
			}
			pw.CloseWithError(err)
		}()
		defer pr.Close()
	case method == http.MethodGet && len(params) > 0:
		endpoint += "?" + encodeQuery(params)
	case len(params) > 0:
		payload, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		select {
		case readErr := <-readFailed:
			log.Warn().Err(readErr).Msg("upload aborted")
			return nil, readErr
		default:
		}

		metrics.ObserveRequest(route, method, metrics.OutcomeTransport, time.Since(start))
		log.Warn().Err(err).Msg("gateway unreachable")
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveRequest(route, method, metrics.OutcomeTransport, time.Since(start))
		return nil, newTransportError(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		decoded = nil
	}

	if reqErr := checkResponse(resp.StatusCode, decoded); reqErr != nil {
		metrics.ObserveRequest(route, method, metrics.OutcomeRejected, time.Since(start))
		log.Debug().
			Int("status", resp.StatusCode).
			Str("error", reqErr.Message).
			Msg("gateway rejected request")
		return nil, reqErr
	}

	metrics.ObserveRequest(route, method, metrics.OutcomeSuccess, time.Since(start))
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("gateway request completed")

	return decoded, nil
}

// checkResponse turns a completed exchange into a RequestError when the HTTP
// status or the body status reports a failure.
func checkResponse(statusCode int, body map[string]any) *RequestError {
	failed := statusCode >= http.StatusBadRequest
	if status, ok := body["status"].(bool); ok && !status {
		failed = true
	}
	if !failed {
		return nil
	}

	message := genericErrorMessage
	if msg, ok := body["error"].(string); ok && msg != "" {
		message = msg
	}

	return &RequestError{
		Message:    message,
		StatusCode: statusCode,
		Details:    body["details"],
	}
}

// stage returns a local path for file, downloading it into the temp dir
// when it is not an existing local file. cleanup removes staged copies.
func (c *Client) stage(ctx context.Context, file string) (string, func(), error) {
	if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
		return file, func() {}, nil
	}

	staged, err := c.fetcher.Fetch(ctx, file, os.TempDir(), "wa_"+uuid.NewString()+".tmp")
	if err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
			c.log.Warn().Err(err).Str("path", staged).Msg("failed to remove staged upload")
		}
	}
	return staged, cleanup, nil
}

var openUpload = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// uploadReader remembers the last read failure so a broken source file is
// not reported as a transport error.
type uploadReader struct {
	r   io.Reader
	err error
}

func (u *uploadReader) Read(p []byte) (int, error) {
	n, err := u.r.Read(p)
	if err != nil && err != io.EOF {
		u.err = err
	}
	return n, err
}

func writeMultipart(mw *multipart.Writer, params Params, src io.Reader, filename, mimeType string) error {
	for _, k := range params.sortedKeys() {
		if err := mw.WriteField(k, scalar(params[k])); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	if _, err := io.CopyBuffer(part, src, make([]byte, media.ChunkSize)); err != nil {
		return err
	}

	return mw.Close()
}

func encodeQuery(params Params) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, scalar(v))
	}
	return values.Encode()
}

func scalar(v any) string {
	return fmt.Sprint(v)
}

// uploadName is the basename of a local path or of a URL path, stripped of
// control characters so it cannot break the part header.
func uploadName(file string) string {
	name := filepath.Base(file)
	if u, err := url.Parse(file); err == nil && u.Scheme != "" && u.Host != "" {
		name = media.FilenameFromURL(file)
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "upload"
	}
	return name
}

// routeLabel keeps metrics cardinality bounded by dropping path arguments.
func routeLabel(path string) string {
	route, _, _ := strings.Cut(path, "/")
	return route
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
