package rag

// DefaultChunkSize is the maximum chunk length in runes.
const DefaultChunkSize = 500

// SplitText slices text into consecutive non-overlapping chunks of at most
// size runes, in original order. Concatenating the result reproduces the
// input exactly; no whitespace or encoding normalization is applied. Empty
// input yields nil.
func SplitText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
