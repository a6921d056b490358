package utils

// SplitText splits a long string into chunks of at most 'chunkSize' runes
// using a sliding window with 'overlap' runes of shared context at each
// boundary. Concatenating the chunks while dropping the first 'overlap'
// runes of every chunk after the first reconstructs the input exactly.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)

	if totalLen == 0 {
		return nil
	}
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
