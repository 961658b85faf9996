package types

import "testing"

type fakeHierarchy struct {
	ancestors map[ClassID]ClassID // child -> parent, absent = root
}

func (h fakeHierarchy) IsAncestor(ancestor, of ClassID) bool {
	for c := of; ; {
		if c == ancestor {
			return true
		}
		p, ok := h.ancestors[c]
		if !ok {
			return false
		}
		c = p
	}
}

func (h fakeHierarchy) NearestCommonAncestor(a, b ClassID) (ClassID, bool) {
	seen := map[ClassID]bool{}
	for c := a; ; {
		seen[c] = true
		p, ok := h.ancestors[c]
		if !ok {
			break
		}
		c = p
	}
	for c := b; ; {
		if seen[c] {
			return c, true
		}
		p, ok := h.ancestors[c]
		if !ok {
			return 0, false
		}
		c = p
	}
}

func (h fakeHierarchy) HasFiniteInstances(t Type) bool { return true }

func TestBasicTypeStrings(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"Bool", NewBool(), "Bool"},
		{"Int", NewInt(), "Int"},
		{"Real", NewReal(), "Real"},
		{"Interval", NewInterval(1, 5), "1..5"},
		{"Undefined", NewUndefined(), "Undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSingletonIsIntervalOfOne(t *testing.T) {
	s := NewSingleton(3)
	if !s.IsInterval() {
		t.Fatalf("NewSingleton(3) is not an Interval: %v", s)
	}
	lo, hi := s.Bounds()
	if lo != 3 || hi != 3 {
		t.Errorf("Bounds() = (%d,%d), want (3,3)", lo, hi)
	}
}

func TestIsSubtypeOf(t *testing.T) {
	h := fakeHierarchy{ancestors: map[ClassID]ClassID{2: 1}}

	tests := []struct {
		name string
		t, u Type
		want bool
	}{
		{"interval narrows into wider interval", NewInterval(2, 4), NewInterval(0, 10), true},
		{"interval does not widen", NewInterval(0, 10), NewInterval(2, 4), false},
		{"interval conforms to Int", NewInterval(2, 4), NewInt(), true},
		{"interval conforms to Real", NewInterval(2, 4), NewReal(), true},
		{"Int conforms to Real", NewInt(), NewReal(), true},
		{"Real does not conform to Int", NewReal(), NewInt(), false},
		{"subclass conforms to ancestor", NewClass(2), NewClass(1), true},
		{"ancestor does not conform to subclass", NewClass(1), NewClass(2), false},
		{"reflexive", NewBool(), NewBool(), true},
		{"Bool and Int incomparable", NewBool(), NewInt(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSubtypeOf(tt.t, tt.u, h); got != tt.want {
				t.Errorf("IsSubtypeOf(%v, %v) = %v, want %v", tt.t, tt.u, got, tt.want)
			}
		})
	}
}

func TestIsCompatibleForEqualityOverlappingIntervals(t *testing.T) {
	h := fakeHierarchy{}
	a := NewInterval(0, 5)
	b := NewInterval(3, 8)
	if !IsCompatibleForEquality(a, b, h) {
		t.Errorf("overlapping intervals %v and %v should be equality-compatible", a, b)
	}

	c := NewInterval(10, 20)
	if IsCompatibleForEquality(a, c, h) {
		t.Errorf("disjoint intervals %v and %v should not be equality-compatible", a, c)
	}
}

func TestCommonType(t *testing.T) {
	h := fakeHierarchy{ancestors: map[ClassID]ClassID{2: 1, 3: 1}}

	tests := []struct {
		name string
		t, u Type
		want Type
	}{
		{"two intervals join to covering interval", NewInterval(1, 3), NewInterval(2, 5), NewInterval(1, 5)},
		{"Int and Interval join to Int", NewInt(), NewInterval(1, 3), NewInt()},
		{"Real and Int join to Real", NewReal(), NewInt(), NewReal()},
		{"siblings join to common ancestor", NewClass(2), NewClass(3), NewClass(1)},
		{"Bool and Int have no common type", NewBool(), NewInt(), NewUndefined()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommonType(tt.t, tt.u, h)
			if !got.Equal(tt.want) {
				t.Errorf("CommonType(%v, %v) = %v, want %v", tt.t, tt.u, got, tt.want)
			}
		})
	}
}

func TestIsBounded(t *testing.T) {
	h := fakeHierarchy{}
	if !NewBool().IsBounded(h) {
		t.Error("Bool should be bounded")
	}
	if !NewInterval(1, 10).IsBounded(h) {
		t.Error("Interval should be bounded")
	}
	if NewInt().IsBounded(h) {
		t.Error("Int should not be bounded")
	}
	if NewReal().IsBounded(h) {
		t.Error("Real should not be bounded")
	}
}
