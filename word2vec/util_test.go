package word2vec

import "math/rand"

// recordRand records the results of Intn.
type recordRand struct {
	*rand.Rand
	Ints []int
}

func newRecordRand(seed int64) *recordRand {
	return &recordRand{Rand: rand.New(rand.NewSource(seed))}
}

func (r *recordRand) Intn(n int) int {
	x := r.Rand.Intn(n)
	r.Ints = append(r.Ints, x)
	return x
}

func rangeDoc(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = i
	}
	return res
}
