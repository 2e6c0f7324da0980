package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextToChunksByByte(t *testing.T) {
	text := strings.Repeat("Câu thứ nhất. ", 400)
	chunks := splitTextToChunksByByte(text, 4500)

	require.Greater(t, len(chunks), 1)

	var total int
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 4500)
		total += len(chunk)
	}
	assert.Equal(t, len(text), total)
}

func TestSplitTextToChunksByByteShortText(t *testing.T) {
	chunks := splitTextToChunksByByte("ngắn thôi", 4500)
	require.Len(t, chunks, 1)
	assert.Equal(t, "ngắn thôi", chunks[0])
}

func TestSplitTextToChunksByByteKeepsRunesIntact(t *testing.T) {
	// Văn bản dài toàn ký tự nhiều byte, không có dấu câu nào để cắt
	text := "x" + strings.Repeat("à", 2500)
	chunks := splitTextToChunksByByte(text, 4500)

	require.Greater(t, len(chunks), 1)

	var total int
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d chứa UTF-8 hỏng", i)
		total += len(chunk)
	}
	assert.Equal(t, len(text), total)
}

func TestSplitTextToChunksByBytePrefersSentenceBoundary(t *testing.T) {
	text := "Đoạn một. Đoạn hai rất dài không có dấu chấm nào nữa đâu"
	chunks := splitTextToChunksByByte(text, 20)

	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "."))
}
