package dedup

// similarityRatio is the classic sequence-matcher measure: twice the total
// length of matching blocks divided by the combined length of both strings.
// Matching blocks are found by repeatedly taking the longest common
// substring and recursing into the pieces on either side of it.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matched := matchingTotal([]byte(a), []byte(b))
	return 2.0 * float64(matched) / float64(len(a)+len(b))
}

func matchingTotal(a, b []byte) int {
	alo, ahi := 0, len(a)
	blo, bhi := 0, len(b)
	return matchRange(a, b, alo, ahi, blo, bhi)
}

func matchRange(a, b []byte, alo, ahi, blo, bhi int) int {
	ai, bj, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}

	total := size
	total += matchRange(a, b, alo, ai, blo, bj)
	total += matchRange(a, b, ai+size, ahi, bj+size, bhi)
	return total
}

// longestMatch finds the longest matching block within a[alo:ahi] and
// b[blo:bhi], preferring the earliest match in a, then in b.
func longestMatch(a, b []byte, alo, ahi, blo, bhi int) (int, int, int) {
	// Positions of each byte value in b[blo:bhi].
	b2j := make(map[byte][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	bestI, bestJ, bestSize := alo, blo, 0

	// j2len[j] = length of the longest match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	return bestI, bestJ, bestSize
}
