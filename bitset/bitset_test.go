package bitset

import "testing"

func TestAddTest(t *testing.T) {
	s := New(40)
	s.Add(0)
	s.Add(31)
	s.Add(32)
	s.Add(39)

	tests := []struct {
		bit  int
		want bool
	}{
		{0, true},
		{1, false},
		{31, true},
		{32, true},
		{33, false},
		{39, true},
	}
	for _, tt := range tests {
		if got := s.Test(tt.bit); got != tt.want {
			t.Errorf("Test(%d) = %v, want %v", tt.bit, got, tt.want)
		}
	}
}

func TestUnionChangeDetection(t *testing.T) {
	a := New(8)
	b := New(8)
	b.Add(3)

	if changed := a.Union(b); !changed {
		t.Fatal("Union should report a change on first union")
	}
	if changed := a.Union(b); changed {
		t.Fatal("Union should report no change when already a superset")
	}
	if !a.Test(3) {
		t.Fatal("bit 3 should be set after union")
	}
}

func TestClone(t *testing.T) {
	a := New(8)
	a.Add(2)
	b := a.Clone()
	b.Add(5)

	if a.Test(5) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !b.Test(2) || !b.Test(5) {
		t.Fatal("clone should carry over original bits plus its own")
	}
}

func TestEmpty(t *testing.T) {
	s := New(8)
	if !s.Empty() {
		t.Fatal("fresh set should be empty")
	}
	s.Add(7)
	if s.Empty() {
		t.Fatal("set with a bit set should not be empty")
	}
}
