// Package staging holds uploaded payloads for the lifetime of one request.
//
// A Stager accepts a stream and returns an Upload that can be reopened any
// number of times until it is released. Callers defer Release immediately
// after a successful Stage so the payload is discarded on every exit path.
//
// Two modes exist. ModeMemory buffers the payload in memory and is the
// default. ModeDisk writes it to a scratch directory as
// "<uuid>_<basename>" and removes the file on Release.
package staging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/textart-server/internal/domain"
)

// Mode selects where staged payloads live.
type Mode string

const (
	ModeMemory Mode = "memory"
	ModeDisk   Mode = "disk"
)

// ErrReleased is returned by Open after Release.
var ErrReleased = errors.New("upload already released")

// Options configures a Stager.
type Options struct {
	Mode Mode
	// Dir is the scratch directory for ModeDisk. Empty means os.TempDir().
	Dir string
	// MaxBytes caps the payload size; zero or less means no cap.
	MaxBytes int64
}

// Stager stages uploads according to its Options. It is safe for
// concurrent use.
type Stager struct {
	opts Options
}

// New validates opts and, for ModeDisk, makes sure the directory exists.
func New(opts Options) (*Stager, error) {
	const op = "staging.new"

	if opts.Mode == "" {
		opts.Mode = ModeMemory
	}
	switch opts.Mode {
	case ModeMemory:
	case ModeDisk:
		if opts.Dir == "" {
			opts.Dir = os.TempDir()
		}
		if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
			return nil, domain.NewError(op, domain.KindInternal, fmt.Errorf("failed to create staging directory: %w", err))
		}
	default:
		return nil, domain.Errorf(op, domain.KindInvalidInput, "unknown staging mode %q", opts.Mode)
	}
	return &Stager{opts: opts}, nil
}

// Mode reports the configured mode.
func (s *Stager) Mode() Mode { return s.opts.Mode }

// Stage copies r into staging under a name derived from name. A payload
// larger than MaxBytes is rejected as domain.KindInvalidInput and nothing
// is left behind.
func (s *Stager) Stage(r io.Reader, name string) (*Upload, error) {
	const op = "staging.stage"

	src := r
	if s.opts.MaxBytes > 0 {
		src = io.LimitReader(r, s.opts.MaxBytes+1)
	}

	if s.opts.Mode == ModeMemory {
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, domain.NewError(op, domain.KindInternal, fmt.Errorf("failed to read upload: %w", err))
		}
		if s.tooLarge(int64(len(data))) {
			return nil, s.sizeError(op)
		}
		return &Upload{name: name, data: data}, nil
	}

	path := filepath.Join(s.opts.Dir, uuid.NewString()+"_"+safeBase(name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, domain.NewError(op, domain.KindInternal, fmt.Errorf("failed to create staging file: %w", err))
	}

	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return nil, domain.NewError(op, domain.KindInternal, fmt.Errorf("failed to write staging file: %w", err))
	}
	if s.tooLarge(n) {
		_ = os.Remove(path)
		return nil, s.sizeError(op)
	}

	return &Upload{name: name, path: path, size: n}, nil
}

func (s *Stager) tooLarge(n int64) bool {
	return s.opts.MaxBytes > 0 && n > s.opts.MaxBytes
}

func (s *Stager) sizeError(op string) error {
	return domain.Errorf(op, domain.KindInvalidInput, "upload exceeds %d bytes", s.opts.MaxBytes)
}

// safeBase strips directories and separators from a client supplied name.
func safeBase(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return base
}

// Upload is one staged payload.
type Upload struct {
	name string
	data []byte
	path string
	size int64

	mu       sync.Mutex
	released bool
}

// Name returns the client supplied name.
func (u *Upload) Name() string { return u.name }

// Path returns the scratch file path, or "" for in-memory uploads.
func (u *Upload) Path() string { return u.path }

// Size returns the payload length in bytes.
func (u *Upload) Size() int64 {
	if u.path == "" {
		return int64(len(u.data))
	}
	return u.size
}

// Open returns a fresh reader over the payload.
func (u *Upload) Open() (io.ReadCloser, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.released {
		return nil, ErrReleased
	}
	if u.path == "" {
		return io.NopCloser(bytes.NewReader(u.data)), nil
	}
	f, err := os.Open(u.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged upload: %w", err)
	}
	return f, nil
}

// Release discards the payload. It is idempotent; a missing scratch file
// is not an error.
func (u *Upload) Release() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.released {
		return nil
	}
	u.released = true
	u.data = nil

	if u.path == "" {
		return nil
	}
	if err := os.Remove(u.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove staged upload: %w", err)
	}
	return nil
}
