package ziparchive

import (
	"fmt"
	"io"

	"github.com/yeka/zip"

	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/port"
)

// Document is the handle for a password-protected ZIP archive.
type Document struct {
	Path string
}

// Open validates that the file is a readable ZIP archive with at least one
// encrypted entry. The archive itself stays closed between attempts; the
// oracle reopens it per try.
func Open(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.IsEncrypted() {
			return &Document{Path: path}, nil
		}
	}
	return nil, fmt.Errorf("%w: archive %q has no encrypted entries", domain.ErrInvalidDocument, path)
}

// Oracle checks candidate passwords by decrypting the first encrypted entry
// and reading it to the end. A decryption or checksum error is a plain wrong
// password; anything preventing the archive from being read at all is a
// fatal oracle failure.
type Oracle struct{}

func NewOracle() *Oracle {
	return &Oracle{}
}

var _ port.UnlockOracle = (*Oracle)(nil)

func (o *Oracle) TryUnlock(doc port.DocumentHandle, password string) (bool, error) {
	d, ok := doc.(*Document)
	if !ok {
		return false, fmt.Errorf("%w: expected *ziparchive.Document, got %T", domain.ErrInvalidDocument, doc)
	}

	r, err := zip.OpenReader(d.Path)
	if err != nil {
		return false, fmt.Errorf("open zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !f.IsEncrypted() {
			continue
		}

		f.SetPassword(password)
		rc, err := f.Open()
		if err != nil {
			return false, nil
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		return err == nil, nil
	}

	return false, fmt.Errorf("%w: archive %q has no encrypted entries", domain.ErrInvalidDocument, d.Path)
}
