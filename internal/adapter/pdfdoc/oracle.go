package pdfdoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/port"
)

// Document is the handle for an encrypted PDF file.
type Document struct {
	Path string
}

func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", domain.ErrInvalidDocument, path)
	}
	return &Document{Path: path}, nil
}

// Oracle checks candidate passwords by validating the PDF with the candidate
// as user password.
type Oracle struct{}

func NewOracle() *Oracle {
	return &Oracle{}
}

var _ port.UnlockOracle = (*Oracle)(nil)

func (o *Oracle) TryUnlock(doc port.DocumentHandle, password string) (bool, error) {
	d, ok := doc.(*Document)
	if !ok {
		return false, fmt.Errorf("%w: expected *pdfdoc.Document, got %T", domain.ErrInvalidDocument, doc)
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password

	err := api.ValidateFile(d.Path, conf)
	if err == nil {
		return true, nil
	}
	if isWrongPassword(err) {
		return false, nil
	}
	return false, fmt.Errorf("validate pdf: %w", err)
}

// pdfcpu reports both a missing and a wrong user password through the same
// "please provide the correct password" error.
func isWrongPassword(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "password")
}
