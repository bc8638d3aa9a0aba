package wordfreq

import "testing"

func TestMergeIsAssociativeInCounts(t *testing.T) {
	maps := []Map{
		{"a": 1, "b": 2},
		{"a": 3},
		{"c": 5},
		{"b": 1, "c": 1},
	}

	got := Merge(maps)
	want := map[string]int{"a": 4, "b": 3, "c": 6}

	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %d, want %d", k, got[k], v)
		}
	}
}

func TestMergeEmptyInput(t *testing.T) {
	got := Merge(nil)
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestMergeSingleInput(t *testing.T) {
	m := Map{"x": 7}
	got := Merge([]Map{m})
	if got["x"] != 7 {
		t.Fatalf("expected x=7, got %v", got)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	build := func(order []int) Map {
		src := []Map{{"a": 1}, {"a": 2}, {"a": 3}, {"a": 4}, {"a": 5}}
		reordered := make([]Map, len(order))
		for i, idx := range order {
			reordered[i] = Map{"a": src[idx]["a"]}
		}
		return Merge(reordered)
	}

	a := build([]int{0, 1, 2, 3, 4})
	b := build([]int{4, 3, 2, 1, 0})

	if a["a"] != b["a"] {
		t.Fatalf("merge order changed the result: %d vs %d", a["a"], b["a"])
	}
}
