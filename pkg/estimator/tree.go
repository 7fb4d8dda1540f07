package estimator

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// node of a CART regression tree. Leaves have left == nil.
type node struct {
	feature     int
	threshold   float64
	left, right *node
	value       float64
}

func (n *node) predict(x []float64) float64 {
	for n.left != nil {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type treeBuilder struct {
	X        mat.Matrix
	y        []float64
	maxDepth int
	minLeaf  int
}

// build grows a least squares tree over the rows in idx.
func (b *treeBuilder) build(idx []int, depth int) *node {
	sum := 0.0
	for _, i := range idx {
		sum += b.y[i]
	}
	n := &node{value: sum / float64(len(idx))}
	if depth >= b.maxDepth || len(idx) < 2*b.minLeaf {
		return n
	}

	feature, threshold, ok := b.bestSplit(idx, sum)
	if !ok {
		return n
	}

	var left, right []int
	for _, i := range idx {
		if b.X.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	n.feature = feature
	n.threshold = threshold
	n.left = b.build(left, depth+1)
	n.right = b.build(right, depth+1)
	return n
}

// bestSplit maximises sumL²/nL + sumR²/nR, which is the same as minimising the
// squared error of both children. Ties keep the first feature and threshold found.
func (b *treeBuilder) bestSplit(idx []int, total float64) (int, float64, bool) {
	_, cols := b.X.Dims()
	count := float64(len(idx))
	best := total * total / count
	bestFeature, bestThreshold, found := 0, 0.0, false

	sorted := make([]int, len(idx))
	for f := 0; f < cols; f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool {
			return b.X.At(sorted[a], f) < b.X.At(sorted[c], f)
		})

		leftSum := 0.0
		for k := 1; k < len(sorted); k++ {
			leftSum += b.y[sorted[k-1]]
			if k < b.minLeaf || len(sorted)-k < b.minLeaf {
				continue
			}
			lo, hi := b.X.At(sorted[k-1], f), b.X.At(sorted[k], f)
			if lo == hi {
				continue
			}
			nl, nr := float64(k), count-float64(k)
			rightSum := total - leftSum
			score := leftSum*leftSum/nl + rightSum*rightSum/nr
			if score > best+1e-12 {
				best = score
				bestFeature = f
				bestThreshold = lo + (hi-lo)/2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}
