package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// sampleIndices draws k distinct indices from [0, n) uniformly without
// replacement, via a partial Fisher-Yates shuffle. Quest content must not be
// predictable by a client probing the endpoint, so the randomness comes from
// crypto/rand rather than math/rand.
func sampleIndices(n, k int) ([]int, error) {
	if k < 0 || n < k {
		return nil, fmt.Errorf("cannot sample %d of %d indices", k, n)
	}

	swapped := make(map[int]int, k)
	value := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	picks := make([]int, 0, k)
	for i := 0; i < k; i++ {
		r, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return nil, fmt.Errorf("secure random sampling failed: %w", err)
		}
		j := i + int(r.Int64())
		picks = append(picks, value(j))
		swapped[j] = value(i)
	}
	return picks, nil
}
