package chunker

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-rag/internal/loader"
)

func expectedCount(length, size, overlap int) int {
	if length <= size {
		return 1
	}
	return int(math.Ceil(float64(length-overlap) / float64(size-overlap)))
}

func TestSplitText_ChunkCount(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{name: "shorter than chunk size", length: 500, size: 1000, overlap: 200},
		{name: "exactly chunk size", length: 1000, size: 1000, overlap: 200},
		{name: "one byte over", length: 1001, size: 1000, overlap: 200},
		{name: "three chunks", length: 2400, size: 1000, overlap: 200},
		{name: "boundary multiple of step", length: 1800, size: 1000, overlap: 200},
		{name: "large", length: 12345, size: 1000, overlap: 200},
		{name: "small chunks", length: 97, size: 10, overlap: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Repeat("a", tt.length)
			chunks := New(tt.size, tt.overlap).SplitText(content)
			assert.Len(t, chunks, expectedCount(tt.length, tt.size, tt.overlap))
			for _, chunk := range chunks {
				assert.NotEmpty(t, chunk)
				assert.LessOrEqual(t, len(chunk), tt.size)
			}
		})
	}
}

func TestSplitText_ExactSlices(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 2400; i++ {
		sb.WriteByte(byte('a' + i%26))
	}
	content := sb.String()

	chunks := New(1000, 200).SplitText(content)
	require.Len(t, chunks, 3)
	assert.Equal(t, content[0:1000], chunks[0])
	assert.Equal(t, content[800:1800], chunks[1])
	assert.Equal(t, content[1600:2400], chunks[2])
}

func TestSplitText_Reconstruction(t *testing.T) {
	for _, length := range []int{1, 999, 1000, 1001, 2400, 5000, 7777} {
		var sb strings.Builder
		for i := 0; i < length; i++ {
			sb.WriteByte(byte('a' + (i*7)%26))
		}
		content := sb.String()

		chunks := New(1000, 200).SplitText(content)
		var rebuilt strings.Builder
		for i, chunk := range chunks {
			if i == 0 {
				rebuilt.WriteString(chunk)
				continue
			}
			rebuilt.WriteString(chunk[200:])
		}
		assert.Equal(t, content, rebuilt.String(), "length %d", length)
	}
}

func TestSplitText_Empty(t *testing.T) {
	assert.Nil(t, New(1000, 200).SplitText(""))
}

func TestNew_SanitizesArguments(t *testing.T) {
	c := New(0, -5)
	assert.Equal(t, 1000, c.size)
	assert.Equal(t, 0, c.overlap)

	c = New(100, 100)
	assert.Equal(t, 50, c.overlap)
}

func TestSplit_PageAttribution(t *testing.T) {
	pages := []loader.Page{
		{Number: 1, Content: strings.Repeat("x", 900)},
		{Number: 2, Content: strings.Repeat("y", 900)},
	}

	chunks := New(1000, 200).Split(pages)
	require.Len(t, chunks, 2)

	// chunk 1 starts at offset 0 (page 1), chunk 2 at offset 800 (still page 1)
	assert.Equal(t, 1, chunks[0].PageNumber)
	assert.Equal(t, 1, chunks[1].PageNumber)
	assert.Equal(t, 1, chunks[0].ChunkID)
	assert.Equal(t, 2, chunks[1].ChunkID)

	// overlap spans the page boundary
	assert.Contains(t, chunks[1].Content, "x")
	assert.Contains(t, chunks[1].Content, "y")
}

func TestSplit_SingleShortPage(t *testing.T) {
	chunks := New(1000, 200).Split([]loader.Page{{Number: 1, Content: "hello world"}})
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Content)
	assert.Equal(t, 1, chunks[0].PageNumber)
}

func TestSplit_NoPages(t *testing.T) {
	assert.Empty(t, New(1000, 200).Split(nil))
}
