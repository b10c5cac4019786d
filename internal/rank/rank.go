// Package rank scores a query vector against the whole corpus and selects
// the top-k matches by cosine similarity.
package rank

import (
	"math"
	"sort"

	"courseqa/internal/domain"
)

// TopK returns the min(k, len(segments)) highest-scoring segments for the
// query vector, sorted by descending cosine similarity. Equal scores keep
// their original corpus order.
func TopK(query []float64, segments []domain.Segment, k int) []domain.RankedSegment {
	if k <= 0 {
		k = 5
	}
	scores := make([]float64, len(segments))
	qn := norm(query)
	for i := range segments {
		scores[i] = cosine(query, qn, segments[i].Embedding)
	}
	idxs := make([]int, len(segments))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if k > len(idxs) {
		k = len(idxs)
	}
	out := make([]domain.RankedSegment, 0, k)
	for _, j := range idxs[:k] {
		out = append(out, domain.RankedSegment{Segment: &segments[j], Score: scores[j]})
	}
	return out
}

func cosine(query []float64, queryNorm float64, v []float64) float64 {
	n := len(query)
	if len(v) < n {
		n = len(v)
	}
	dot := 0.0
	for i := 0; i < n; i++ {
		dot += query[i] * v[i]
	}
	vn := norm(v)
	if queryNorm == 0 || vn == 0 {
		return 0
	}
	return dot / (queryNorm * vn)
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
