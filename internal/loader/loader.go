package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies a supported document format. The set is closed: adding a
// format means adding a Kind and its Loader, not another branch in callers.
type Kind string

const (
	KindPDF      Kind = "pdf"
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindDOCX     Kind = "docx"
	KindXLSX     Kind = "xlsx"
	KindODS      Kind = "ods"
)

// ErrUnsupportedFormat is returned for file extensions outside the closed
// set of kinds.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Page is one unit of loaded text. Formats without pages produce a single
// page numbered 1; sheets and slides map one unit per sheet.
type Page struct {
	Number  int
	Content string
}

// Loader extracts the text units of one document format.
type Loader interface {
	Load(filePath string) ([]Page, error)
}

var loaders = map[Kind]Loader{
	KindPDF:      pdfLoader{},
	KindText:     textLoader{},
	KindMarkdown: markdownLoader{},
	KindDOCX:     docxLoader{},
	KindXLSX:     xlsxLoader{},
	KindODS:      odsLoader{},
}

// KindForPath resolves the document kind from the file extension.
func KindForPath(filePath string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return KindPDF, nil
	case ".txt":
		return KindText, nil
	case ".md", ".markdown":
		return KindMarkdown, nil
	case ".docx":
		return KindDOCX, nil
	case ".xlsx":
		return KindXLSX, nil
	case ".ods":
		return KindODS, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ForKind returns the loader for a kind.
func ForKind(kind Kind) (Loader, error) {
	l, ok := loaders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
	return l, nil
}

// Load resolves the kind from the path and loads the document.
func Load(filePath string) ([]Page, error) {
	kind, err := KindForPath(filePath)
	if err != nil {
		return nil, err
	}
	l, err := ForKind(kind)
	if err != nil {
		return nil, err
	}
	return l.Load(filePath)
}
