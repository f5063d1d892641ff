package sampling

import "math"

/*
Entropy computes the Shannon entropy of a chunk of bytes,

	H = - sum(i) { p(i) * log2(p(i)) },

where p(i) = c(i) / |chunk| and c(i) counts occurrences of byte value i.
The result is normalized by 8, the maximum possible entropy over an 8-bit
alphabet, so it always lies in [0, 1]. A chunk consisting of a single
repeated byte value has entropy 0; a chunk with all 256 values equally
frequent has entropy 1.
*/
func Entropy(chunk []byte) float64 {
	if len(chunk) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range chunk {
		counts[b]++
	}

	total := float64(len(chunk))
	entropy := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy / 8
}
