package btree

// Range is a half-open span of the leaf list, [ (firstLeaf, startIdx),
// (lastLeaf, endIdx) ), produced by SearchRange and its wrappers.
type Range[K, V any] struct {
	tree       *Tree[K, V]
	firstLeaf  *leaf[K, V]
	startIndex int
	lastLeaf   *leaf[K, V]
	endIndex   int
}

// Forward returns an iterator walking the range from its lower bound to
// its upper bound.
func (r *Range[K, V]) Forward() *Iterator[K, V] {
	return &Iterator[K, V]{
		cur: r.firstLeaf, idx: r.startIndex,
		end: r.lastLeaf, endIdx: r.endIndex,
	}
}

// Backward returns an iterator walking the range from its upper bound
// down to its lower bound.
func (r *Range[K, V]) Backward() *Iterator[K, V] {
	return &Iterator[K, V]{
		cur: r.lastLeaf, idx: r.endIndex,
		begin: r.firstLeaf, beginIdx: r.startIndex,
		reverse: true,
	}
}

func (t *Tree[K, V]) fullRange() *Range[K, V] {
	endIdx := 0
	if t.last != nil {
		endIdx = len(t.last.items)
	}
	return &Range[K, V]{tree: t, firstLeaf: t.first, startIndex: 0, lastLeaf: t.last, endIndex: endIdx}
}

// SearchRange returns the items whose key falls within [start, end],
// honoring inclusiveStart/inclusiveEnd at those boundaries. A nil bound
// is the "no bound on this side" sentinel (spec's range_start/range_end).
func (t *Tree[K, V]) SearchRange(start, end *K, inclusiveStart, inclusiveEnd bool) *Range[K, V] {
	full := t.fullRange()
	switch {
	case start == nil && end == nil:
		return full
	case start != nil && end == nil:
		return t.searchFrom(*start, inclusiveStart, full)
	case start == nil && end != nil:
		return t.searchTo(*end, inclusiveEnd, full)
	default:
		// A start bound above the end bound, or equal bounds with either
		// side exclusive, can hold no key.
		if c := t.cmp(*start, *end); c > 0 || (c == 0 && !(inclusiveStart && inclusiveEnd)) {
			return &Range[K, V]{tree: t}
		}
		left := t.searchFrom(*start, inclusiveStart, full)
		right := t.searchTo(*end, inclusiveEnd, full)
		return &Range[K, V]{
			tree:       t,
			firstLeaf:  left.firstLeaf,
			startIndex: left.startIndex,
			lastLeaf:   right.lastLeaf,
			endIndex:   right.endIndex,
		}
	}
}

func (t *Tree[K, V]) searchFrom(start K, inclusiveStart bool, full *Range[K, V]) *Range[K, V] {
	firstLeaf := t.findLeaf(start, inclusiveStart)
	firstIndex := 0
	if firstLeaf != nil {
		for ; firstIndex < len(firstLeaf.items); firstIndex++ {
			k := firstLeaf.items[firstIndex].Key
			c := t.cmp(k, start)
			if (inclusiveStart && c == 0) || c > 0 {
				break
			}
		}
		if firstIndex == len(firstLeaf.items) && firstLeaf.rightLeaf != nil {
			firstLeaf = firstLeaf.rightLeaf
			firstIndex = 0
		}
	}
	return &Range[K, V]{
		tree:       t,
		firstLeaf:  firstLeaf,
		startIndex: firstIndex,
		lastLeaf:   full.lastLeaf,
		endIndex:   full.endIndex,
	}
}

func (t *Tree[K, V]) searchTo(end K, inclusiveEnd bool, full *Range[K, V]) *Range[K, V] {
	lastLeaf := t.findLeaf(end, inclusiveEnd)
	lastIndex := 0
	if lastLeaf != nil && len(lastLeaf.items) != 0 {
		lastIndex = len(lastLeaf.items)
		for ; lastIndex != 0; lastIndex-- {
			k := lastLeaf.items[lastIndex-1].Key
			c := t.cmp(k, end)
			if (inclusiveEnd && c == 0) || c < 0 {
				break
			}
		}
		if lastIndex == len(lastLeaf.items) && lastLeaf.rightLeaf != nil {
			lastLeaf = lastLeaf.rightLeaf
			lastIndex = 0
		}
	}
	return &Range[K, V]{
		tree:       t,
		firstLeaf:  full.firstLeaf,
		startIndex: full.startIndex,
		lastLeaf:   lastLeaf,
		endIndex:   lastIndex,
	}
}

// ScanAll returns every item in the tree.
func (t *Tree[K, V]) ScanAll() *Range[K, V] {
	return t.SearchRange(nil, nil, true, true)
}

// ScanFrom returns every item with key >= start (or > start if
// inclusive is explicitly false).
func (t *Tree[K, V]) ScanFrom(start K, inclusive ...bool) *Range[K, V] {
	inc := true
	if len(inclusive) > 0 {
		inc = inclusive[0]
	}
	return t.SearchRange(&start, nil, inc, true)
}

// ScanTo returns every item with key <= end (or < end if inclusive is
// explicitly false).
func (t *Tree[K, V]) ScanTo(end K, inclusive ...bool) *Range[K, V] {
	inc := true
	if len(inclusive) > 0 {
		inc = inclusive[0]
	}
	return t.SearchRange(nil, &end, true, inc)
}

// ScanBetween returns every item with key between start and end,
// honoring inclusiveStart/inclusiveEnd.
func (t *Tree[K, V]) ScanBetween(start, end K, inclusiveStart, inclusiveEnd bool) *Range[K, V] {
	return t.SearchRange(&start, &end, inclusiveStart, inclusiveEnd)
}
