package delivery

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// CacheControl is sent with every image response
const CacheControl = "public, max-age=31536000"

// DefaultContentType is used when neither the extension nor the content is recognized
const DefaultContentType = "application/octet-stream"

// ErrStat is returned when the file cannot be inspected after it was resolved
var ErrStat = errors.New("failed to stat file")

// ErrShortBody reports a body copy that ended before Content-Length bytes
var ErrShortBody = errors.New("short image body")

// Decision is the outcome of evaluating request validators
type Decision int

const (
	// Deliver means a full 200 response
	Deliver Decision = iota
	// NotModified means a 304 response without body
	NotModified
)

func (d Decision) String() string {
	if d == NotModified {
		return "not_modified"
	}
	return "ok"
}

// Validators holds the weak cache validators of one file
type Validators struct {
	ETag         string
	LastModified string
	ModTime      time.Time
	Size         int64
}

// NewValidators computes validators from file metadata.
// The ETag combines the nanosecond mtime and the byte size.
func NewValidators(info fs.FileInfo) Validators {
	mtime := info.ModTime()
	return Validators{
		ETag:         fmt.Sprintf(`W/"%d-%d"`, mtime.UnixNano(), info.Size()),
		LastModified: mtime.UTC().Format(http.TimeFormat),
		ModTime:      mtime,
		Size:         info.Size(),
	}
}

// Evaluate applies If-None-Match, then If-Modified-Since.
// Empty header values mean the header was absent; unparseable dates are ignored.
func Evaluate(v Validators, ifNoneMatch, ifModifiedSince string) Decision {
	if ifNoneMatch != "" && strings.TrimSpace(ifNoneMatch) == v.ETag {
		return NotModified
	}

	if ifModifiedSince != "" {
		since, err := http.ParseTime(strings.TrimSpace(ifModifiedSince))
		if err == nil && !v.ModTime.Truncate(time.Second).After(since) {
			return NotModified
		}
	}

	return Deliver
}

// ContentType guesses the media type of path from its extension, falling
// back to content sniffing.
func ContentType(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	if detected, err := mimetype.DetectFile(path); err == nil && detected != nil {
		return detected.String()
	}
	return DefaultContentType
}

// Result describes what Serve wrote
type Result struct {
	Decision Decision
	Status   int
	Bytes    int64
	// CopyErr is set when the body copy failed after headers were sent.
	// It wraps ErrShortBody.
	CopyErr error
}

// Serve answers a GET or HEAD for path with conditional-request handling.
// The file must already be known to exist. Stat or open failures return an
// error wrapping ErrStat before anything is written.
func Serve(w http.ResponseWriter, r *http.Request, path string, includeBody bool) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrStat, err)
	}

	v := NewValidators(info)
	h := w.Header()
	h.Set("ETag", v.ETag)
	h.Set("Last-Modified", v.LastModified)
	h.Set("Cache-Control", CacheControl)

	if Evaluate(v, r.Header.Get("If-None-Match"), r.Header.Get("If-Modified-Since")) == NotModified {
		w.WriteHeader(http.StatusNotModified)
		return Result{Decision: NotModified, Status: http.StatusNotModified}, nil
	}

	if !includeBody {
		h.Set("Content-Type", ContentType(path))
		h.Set("Content-Length", strconv.FormatInt(v.Size, 10))
		w.WriteHeader(http.StatusOK)
		return Result{Decision: Deliver, Status: http.StatusOK}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		h.Del("ETag")
		h.Del("Last-Modified")
		h.Del("Cache-Control")
		return Result{}, fmt.Errorf("%w: %v", ErrStat, err)
	}
	defer f.Close()

	h.Set("Content-Type", ContentType(path))
	h.Set("Content-Length", strconv.FormatInt(v.Size, 10))
	w.WriteHeader(http.StatusOK)

	result := Result{Decision: Deliver, Status: http.StatusOK}
	result.Bytes, err = io.CopyN(w, f, v.Size)
	if err != nil {
		result.CopyErr = fmt.Errorf("%w: wrote %d of %d bytes: %v", ErrShortBody, result.Bytes, v.Size, err)
	}
	return result, nil
}
