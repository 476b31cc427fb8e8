package embedder

// meanPool averages the per-token hidden states of each sample into a single
// sentence vector, counting only positions the attention mask marks as real
// tokens. Padding contributes nothing.
//
// hidden is flat [batchSize * seqLen * dim] float32, mask is flat
// [batchSize * seqLen] int64. The result is flat [batchSize * dim], one
// vector per sample; an all-padding sample pools to the zero vector.
func meanPool(hidden []float32, mask []int64, batchSize, seqLen, dim int64) []float32 {
	out := make([]float32, batchSize*dim)

	for b := int64(0); b < batchSize; b++ {
		maskOff := b * seqLen
		hiddenOff := b * seqLen * dim
		outOff := b * dim

		var realTokens float32
		for s := int64(0); s < seqLen; s++ {
			if mask[maskOff+s] != 1 {
				continue
			}
			realTokens++
			tokOff := hiddenOff + s*dim
			for d := int64(0); d < dim; d++ {
				out[outOff+d] += hidden[tokOff+d]
			}
		}
		if realTokens == 0 {
			continue
		}

		inv := 1.0 / realTokens
		for d := int64(0); d < dim; d++ {
			out[outOff+d] *= inv
		}
	}

	return out
}
