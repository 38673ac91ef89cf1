package cow

import "testing"

func TestCloneIsolatesMutation(t *testing.T) {
	m := NewMap[int, string]()
	m.Set(1, "a")
	m.Set(2, "b")

	snap := m.Clone()
	m.Set(1, "changed")
	m.Set(3, "c")

	if v, _ := snap.Get(1); v != "a" {
		t.Errorf("snapshot saw mutation: got %q, want %q", v, "a")
	}
	if _, ok := snap.Get(3); ok {
		t.Error("snapshot saw key inserted after clone")
	}
	if v, _ := m.Get(1); v != "changed" {
		t.Errorf("live map lost mutation: got %q", v)
	}
}

func TestSameIdentity(t *testing.T) {
	m := NewMap[int, int]()
	m.Set(1, 1)

	snap := m.Clone()
	if !Same(m, snap) {
		t.Error("clone without mutation should share identity")
	}

	m.Set(2, 2)
	if Same(m, snap) {
		t.Error("mutation should break identity with the snapshot")
	}
}

func TestDeleteAbsentKeyKeepsSharing(t *testing.T) {
	m := NewMap[int, int]()
	m.Set(1, 1)
	snap := m.Clone()

	// Deleting an absent key must not trigger a copy.
	m.Delete(99)
	if !Same(m, snap) {
		t.Error("no-op delete should not copy the table")
	}

	m.Delete(1)
	if Same(m, snap) {
		t.Error("real delete should copy the table")
	}
	if _, ok := snap.Get(1); !ok {
		t.Error("snapshot lost entry after delete on live map")
	}
}

func TestRangeAndKeys(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i*i)
	}

	if got := len(m.Keys()); got != 10 {
		t.Fatalf("Keys() len = %d, want 10", got)
	}

	count := 0
	m.Range(func(k, v int) bool {
		if v != k*k {
			t.Errorf("Range saw (%d, %d), want (%d, %d)", k, v, k, k*k)
		}
		count++
		return true
	})
	if count != 10 {
		t.Errorf("Range visited %d entries, want 10", count)
	}

	stopped := 0
	m.Range(func(int, int) bool {
		stopped++
		return false
	})
	if stopped != 1 {
		t.Errorf("Range did not stop early: visited %d", stopped)
	}
}
