package diff

import "sort"

// Patience computes an edit script from a to b using patience diff: common prefixes and suffixes are trimmed, elements that occur exactly once on both sides become anchor
// candidates, the longest run of candidates that is increasing on both sides is kept, and the gaps between the kept anchors are diffed recursively.
//
// equal decides equality for prefix/suffix trimming; if nil, == is used. Anchor candidates are always matched by value (==), which is what makes uniqueness well-defined.
//
// The result is deterministic for a given input. The script is not guaranteed to be minimal: a range with no unique common elements is emitted as all deletes followed by all inserts.
func Patience[T comparable](a, b []T, equal func(T, T) bool) []Edit[T] {
	if equal == nil {
		equal = func(x, y T) bool { return x == y }
	}
	p := patience[T]{a: a, b: b, equal: equal}
	return p.diffRange(0, len(a), 0, len(b))
}

type patience[T comparable] struct {
	a, b  []T
	equal func(T, T) bool
}

// anchor is an index pair (i into a, j into b) of a value unique in both ranges.
type anchor struct {
	i, j int
}

// diffRange diffs a[aStart:aEnd] against b[bStart:bEnd] and returns the edits for exactly that range.
func (p *patience[T]) diffRange(aStart, aEnd, bStart, bEnd int) []Edit[T] {
	var out []Edit[T]

	for aStart < aEnd && bStart < bEnd && p.equal(p.a[aStart], p.b[bStart]) {
		out = append(out, Equal[T]{A: p.a[aStart], B: p.b[bStart]})
		aStart++
		bStart++
	}

	// Suffix equals are collected back to front and appended after the inner result.
	var suffix []Edit[T]
	for aStart < aEnd && bStart < bEnd && p.equal(p.a[aEnd-1], p.b[bEnd-1]) {
		aEnd--
		bEnd--
		suffix = append(suffix, Equal[T]{A: p.a[aEnd], B: p.b[bEnd]})
	}
	appendSuffix := func(out []Edit[T]) []Edit[T] {
		for k := len(suffix) - 1; k >= 0; k-- {
			out = append(out, suffix[k])
		}
		return out
	}

	if aStart == aEnd {
		for j := bStart; j < bEnd; j++ {
			out = append(out, Insert[T]{B: p.b[j]})
		}
		return appendSuffix(out)
	}
	if bStart == bEnd {
		for i := aStart; i < aEnd; i++ {
			out = append(out, Delete[T]{A: p.a[i]})
		}
		return appendSuffix(out)
	}

	anchors := longestIncreasing(p.uniqueCandidates(aStart, aEnd, bStart, bEnd))
	if len(anchors) == 0 {
		for i := aStart; i < aEnd; i++ {
			out = append(out, Delete[T]{A: p.a[i]})
		}
		for j := bStart; j < bEnd; j++ {
			out = append(out, Insert[T]{B: p.b[j]})
		}
		return appendSuffix(out)
	}

	ai, bi := aStart, bStart
	for _, an := range anchors {
		if ai < an.i || bi < an.j {
			out = append(out, p.diffRange(ai, an.i, bi, an.j)...)
		}
		out = append(out, Equal[T]{A: p.a[an.i], B: p.b[an.j]})
		ai, bi = an.i+1, an.j+1
	}
	if ai < aEnd || bi < bEnd {
		out = append(out, p.diffRange(ai, aEnd, bi, bEnd)...)
	}
	return appendSuffix(out)
}

// uniqueCandidates returns, in ascending i order, the pairs (i, j) where a[i] occurs once in a[aStart:aEnd], and the same value occurs once in b[bStart:bEnd], at j.
func (p *patience[T]) uniqueCandidates(aStart, aEnd, bStart, bEnd int) []anchor {
	aCount := make(map[T]int, aEnd-aStart)
	for i := aStart; i < aEnd; i++ {
		aCount[p.a[i]]++
	}
	bCount := make(map[T]int, bEnd-bStart)
	bIndex := make(map[T]int, bEnd-bStart)
	for j := bStart; j < bEnd; j++ {
		bCount[p.b[j]]++
		bIndex[p.b[j]] = j
	}

	var candidates []anchor
	for i := aStart; i < aEnd; i++ {
		v := p.a[i]
		if aCount[v] != 1 || bCount[v] != 1 {
			continue
		}
		candidates = append(candidates, anchor{i: i, j: bIndex[v]})
	}
	return candidates
}

// longestIncreasing returns the longest subsequence of candidates (already ascending in i) whose j values strictly increase, using patience sorting.
//
// piles[k] holds the index of the candidate currently on top of pile k, i.e. the candidate ending an increasing run of length k+1 with the smallest j seen so far. A candidate
// replaces the top of the first pile whose top has j >= its own; on equal keys the later candidate wins. The result is rebuilt through predecessor links from the top of the last pile.
func longestIncreasing(candidates []anchor) []anchor {
	if len(candidates) == 0 {
		return nil
	}

	piles := make([]int, 0, len(candidates))
	predecessor := make([]int, len(candidates))
	for c, cand := range candidates {
		lo := sort.Search(len(piles), func(k int) bool { return candidates[piles[k]].j >= cand.j })

		predecessor[c] = -1
		if lo > 0 {
			predecessor[c] = piles[lo-1]
		}
		if lo == len(piles) {
			piles = append(piles, c)
		} else {
			piles[lo] = c
		}
	}

	lis := make([]anchor, len(piles))
	k := len(lis) - 1
	for c := piles[len(piles)-1]; c >= 0; c = predecessor[c] {
		lis[k] = candidates[c]
		k--
	}
	return lis
}
