package usecase

// chunkTokens splits a token list into batches of at most size tokens,
// preserving order. Every token appears in exactly one batch.
func chunkTokens(tokens []string, size int) [][]string {
	if size <= 0 || len(tokens) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(tokens)+size-1)/size)
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		batches = append(batches, tokens[start:end])
	}
	return batches
}
