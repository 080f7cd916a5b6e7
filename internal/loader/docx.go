package loader

import (
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type docxLoader struct{}

func (docxLoader) Load(filePath string) ([]Page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc := r.Editable()
	content := extractDocxText(doc.GetContent())
	return []Page{{Number: 1, Content: content}}, nil
}

// extractDocxText pulls the text runs out of the document XML.
func extractDocxText(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<w:t")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		// skip the rest of the opening tag
		closeIdx := strings.Index(part, ">")
		if closeIdx < 0 {
			continue
		}
		part = part[closeIdx+1:]
		endIdx := strings.Index(part, "</w:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx])
			text.WriteString(" ")
		}
	}
	return strings.TrimSpace(text.String())
}
