package media

import "fmt"

// Op identifies the step of a download that failed.
type Op string

const (
	OpUnavailable Op = "unavailable"
	OpOpen        Op = "open"
	OpCreate      Op = "create"
	OpRead        Op = "read"
	OpWrite       Op = "write"
)

// DownloadError reports a failed media download. Path is empty unless the
// local destination had already been chosen.
type DownloadError struct {
	Op   Op
	URL  string
	Path string
	Err  error
}

func (e *DownloadError) Error() string {
	switch e.Op {
	case OpUnavailable:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "media is not available for download"
	case OpOpen:
		return fmt.Sprintf("unable to open remote file %s: %v", e.URL, e.Err)
	case OpCreate:
		return fmt.Sprintf("unable to create local file %s: %v", e.Path, e.Err)
	case OpRead:
		return fmt.Sprintf("error reading remote file %s: %v", e.URL, e.Err)
	case OpWrite:
		return fmt.Sprintf("error writing local file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("media download failed: %v", e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
