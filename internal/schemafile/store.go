// Package schemafile loads and persists schema documents for the
// migration pipeline.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrorKind classifies store failures.
type ErrorKind string

const (
	// KindSourceNotFound means the document could not be read from its
	// location. Nothing was transformed.
	KindSourceNotFound ErrorKind = "source not found"
	// KindWriteFailure means the transformed document could not be
	// persisted. The original document is still in place.
	KindWriteFailure ErrorKind = "write failure"
)

// Error is a store failure carrying its kind and the affected location.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsSourceNotFound reports whether err is a store error of kind
// KindSourceNotFound.
func IsSourceNotFound(err error) bool { return hasKind(err, KindSourceNotFound) }

// IsWriteFailure reports whether err is a store error of kind
// KindWriteFailure.
func IsWriteFailure(err error) bool { return hasKind(err, KindWriteFailure) }

func hasKind(err error, kind ErrorKind) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Kind == kind
}

// Load reads the schema document at path. Every read failure comes back
// as KindSourceNotFound; no migration starts without a loaded document.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Kind: KindSourceNotFound, Path: path, Err: err}
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("schema loaded")
	return string(data), nil
}

// Save writes text over the document at path. The text goes to a
// temporary file in the same directory first and is renamed into place
// once fully synced, so a failed write leaves the original document
// untouched. Every failure comes back as KindWriteFailure.
func Save(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		tmp.Close()
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode()
	}
	if err := tmp.Chmod(mode); err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	if _, err := tmp.WriteString(text); err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &Error{Kind: KindWriteFailure, Path: path, Err: err}
	}
	committed = true

	log.Debug().Str("path", path).Int("bytes", len(text)).Msg("schema saved")
	return nil
}
