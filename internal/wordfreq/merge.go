package wordfreq

// Merge implements C4: given k partial maps, merge them pairwise in a
// balanced binary tree so total work is bounded by hash costs and peak
// additional memory is proportional to the largest subtree's output. The
// merger always folds the smaller map into the larger one, and the inputs
// may be consumed destructively — callers must not reuse them afterward.
func Merge(maps []Map) Map {
	switch len(maps) {
	case 0:
		return New()
	case 1:
		return maps[0]
	}

	mid := len(maps) / 2
	left := Merge(maps[:mid])
	right := Merge(maps[mid:])
	return mergeTwo(left, right)
}

// mergeTwo folds the smaller of the two maps into the larger, returning
// the larger (now combined) map.
func mergeTwo(a, b Map) Map {
	if len(a) < len(b) {
		a, b = b, a
	}
	for w, n := range b {
		a[w] += n
	}
	return a
}
