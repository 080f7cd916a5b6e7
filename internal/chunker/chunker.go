// Package chunker splits loaded document text into fixed-size overlapping
// chunks. Chunks are exact slices of the input: concatenating them with the
// overlap removed reconstructs the original text, and chunk boundaries may
// span page boundaries.
package chunker

import (
	"project-rag/internal/loader"
	"project-rag/internal/models"
)

type Chunker struct {
	size    int
	overlap int
}

// New returns a chunker producing chunks of at most size bytes with the
// given overlap. Out-of-range values fall back to the defaults.
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = models.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Chunker{size: size, overlap: overlap}
}

// SplitText splits content into overlapping slices. Content no longer than
// the chunk size yields exactly one chunk; empty content yields none.
func (c *Chunker) SplitText(content string) []string {
	if len(content) == 0 {
		return nil
	}
	if len(content) <= c.size {
		return []string{content}
	}

	var chunks []string
	step := c.size - c.overlap
	start := 0
	for {
		end := start + c.size
		if end >= len(content) {
			chunks = append(chunks, content[start:])
			return chunks
		}
		chunks = append(chunks, content[start:end])
		start += step
	}
}

// Split concatenates the page units and slices them into chunks. Each chunk
// is tagged with the page its first byte falls on.
func (c *Chunker) Split(pages []loader.Page) []models.Chunk {
	var content string
	type bound struct {
		offset int
		page   int
	}
	var bounds []bound
	for _, p := range pages {
		bounds = append(bounds, bound{offset: len(content), page: p.Number})
		content += p.Content
	}

	pageAt := func(offset int) int {
		page := 1
		for _, b := range bounds {
			if b.offset > offset {
				break
			}
			page = b.page
		}
		return page
	}

	var chunks []models.Chunk
	step := c.size - c.overlap
	for i, text := range c.SplitText(content) {
		chunks = append(chunks, models.Chunk{
			Content:    text,
			PageNumber: pageAt(i * step),
			ChunkID:    i + 1,
		})
	}
	return chunks
}
