package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
	}{
		{path: "report.pdf", kind: KindPDF},
		{path: "dir/NOTES.TXT", kind: KindText},
		{path: "readme.md", kind: KindMarkdown},
		{path: "doc.markdown", kind: KindMarkdown},
		{path: "contract.docx", kind: KindDOCX},
		{path: "sheet.xlsx", kind: KindXLSX},
		{path: "sheet.ods", kind: KindODS},
	}
	for _, tt := range tests {
		kind, err := KindForPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.kind, kind)
	}
}

func TestKindForPath_Unsupported(t *testing.T) {
	for _, path := range []string{"photo.jpg", "archive.zip", "noextension"} {
		_, err := KindForPath(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestForKind_Unknown(t *testing.T) {
	_, err := ForKind(Kind("jpeg"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTextLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text content"), 0o644))

	pages, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "plain text content", pages[0].Content)
}

func TestTextLoader_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestMarkdownLoader_ExtractsPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	source := "# Title\n\nSome *emphasised* text with a [link](https://example.com).\n\n- item one\n- item two\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	pages, err := Load(path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	content := pages[0].Content
	assert.Contains(t, content, "Title")
	assert.Contains(t, content, "emphasised")
	assert.Contains(t, content, "link")
	assert.Contains(t, content, "item one")
	assert.NotContains(t, content, "#")
	assert.NotContains(t, content, "*")
	assert.NotContains(t, content, "https://example.com")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8}, 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPDFLoader_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
