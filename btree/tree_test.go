package btree

import "testing"

func intCmp(a, b int) int { return a - b }

func collect[K, V any](it *Iterator[K, V]) []pair[K, V] {
	var out []pair[K, V]
	for it.Next() {
		out = append(out, pair[K, V]{Key: it.Key(), Value: it.Value()})
	}
	return out
}

func TestEmptyTreeScansEmpty(t *testing.T) {
	tr := NewTree[int, bool](4, 8, intCmp)
	if tr.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", tr.Size())
	}
	if got := collect(tr.ScanAll().Forward()); len(got) != 0 {
		t.Fatalf("ScanAll on empty tree = %v, want empty", got)
	}
}

func TestAddOne(t *testing.T) {
	tr := NewTree[int, bool](4, 8, intCmp)
	tr.Add(0x5AD, true)
	if tr.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", tr.Size())
	}
	got := collect(tr.ScanAll().Forward())
	if len(got) != 1 || got[0].Key != 0x5AD || got[0].Value != true {
		t.Fatalf("ScanAll = %v, want [{0x5AD true}]", got)
	}
}

func TestSearchEmptyTreeHasNoMatch(t *testing.T) {
	tr := NewTree[int, bool](4, 8, intCmp)
	r := tr.ScanBetween(0, 0xFFFF, true, true)
	if got := collect(r.Forward()); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestSearchOneExactKey(t *testing.T) {
	tr := NewTree[int, bool](4, 8, intCmp)
	tr.Add(0x5AD, true)

	got := collect(tr.ScanBetween(0x5AD, 0x5AD, true, true).Forward())
	if len(got) != 1 || got[0].Key != 0x5AD {
		t.Fatalf("inclusive exact match = %v, want [{0x5AD}]", got)
	}

	got = collect(tr.ScanBetween(0x5AD, 0x5AD, false, false).Forward())
	if len(got) != 0 {
		t.Fatalf("exclusive exact match = %v, want empty", got)
	}
}

func TestSearchTwoKeysInclusiveExclusiveBounds(t *testing.T) {
	tr := NewTree[int, bool](4, 8, intCmp)
	tr.Add(0x5AD, true)
	tr.Add(0xC0FFEE, true)

	all := collect(tr.ScanAll().Forward())
	if len(all) != 2 || all[0].Key != 0x5AD || all[1].Key != 0xC0FFEE {
		t.Fatalf("ScanAll = %v, want ascending [0x5AD, 0xC0FFEE]", all)
	}

	fromInclusive := collect(tr.ScanFrom(0x5AD, true).Forward())
	if len(fromInclusive) != 2 {
		t.Fatalf("ScanFrom(0x5AD, inclusive) = %v, want 2 items", fromInclusive)
	}

	fromExclusive := collect(tr.ScanFrom(0x5AD, false).Forward())
	if len(fromExclusive) != 1 || fromExclusive[0].Key != 0xC0FFEE {
		t.Fatalf("ScanFrom(0x5AD, exclusive) = %v, want [{0xC0FFEE}]", fromExclusive)
	}

	toInclusive := collect(tr.ScanTo(0xC0FFEE, true).Forward())
	if len(toInclusive) != 2 {
		t.Fatalf("ScanTo(0xC0FFEE, inclusive) = %v, want 2 items", toInclusive)
	}

	toExclusive := collect(tr.ScanTo(0xC0FFEE, false).Forward())
	if len(toExclusive) != 1 || toExclusive[0].Key != 0x5AD {
		t.Fatalf("ScanTo(0xC0FFEE, exclusive) = %v, want [{0x5AD}]", toExclusive)
	}
}

func TestSearchSameKeyTwicePreservesBothPairs(t *testing.T) {
	tr := NewTree[int, string](4, 8, intCmp)
	tr.Add(0x5AD, "first")
	tr.Add(0x5AD, "second")

	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}
	got := collect(tr.ScanAll().Forward())
	if len(got) != 2 || got[0].Value != "first" || got[1].Value != "second" {
		t.Fatalf("duplicate-key scan = %v, want insertion order preserved", got)
	}
}

func TestUnsortedInsertsScanForwardAndBackward(t *testing.T) {
	tr := NewTree[int, int](4, 8, intCmp)
	keys := []int{5, 1, 3, 2, 4}
	for _, k := range keys {
		tr.Add(k, k*10)
	}

	forward := collect(tr.ScanAll().Forward())
	if len(forward) != 5 {
		t.Fatalf("forward scan length = %d, want 5", len(forward))
	}
	for i := range forward {
		if forward[i].Key != i+1 {
			t.Fatalf("forward[%d].Key = %d, want %d", i, forward[i].Key, i+1)
		}
	}

	backward := collect(tr.ScanAll().Backward())
	if len(backward) != 5 {
		t.Fatalf("backward scan length = %d, want 5", len(backward))
	}
	for i := range backward {
		if backward[i].Key != 5-i {
			t.Fatalf("backward[%d].Key = %d, want %d", i, backward[i].Key, 5-i)
		}
	}
}

func TestScanBetweenExcludesOutOfRangeKeys(t *testing.T) {
	tr := NewTree[int, int](4, 8, intCmp)
	for _, k := range []int{1, 2, 3, 4, 5} {
		tr.Add(k, k)
	}

	got := collect(tr.ScanBetween(2, 4, true, true).Forward())
	if len(got) != 3 || got[0].Key != 2 || got[2].Key != 4 {
		t.Fatalf("ScanBetween(2,4,incl,incl) = %v, want [2,3,4]", got)
	}

	got = collect(tr.ScanBetween(2, 4, false, false).Forward())
	if len(got) != 1 || got[0].Key != 3 {
		t.Fatalf("ScanBetween(2,4,excl,excl) = %v, want [3]", got)
	}
}
