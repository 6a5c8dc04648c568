package bitset

import "testing"

func TestSetUnsetTest(t *testing.T) {
	b := New(200)
	if b.Test(130) {
		t.Errorf("expected bit 130 clear on a fresh bitset")
	}
	b.Set(130)
	if !b.Test(130) {
		t.Errorf("expected bit 130 set")
	}
	b.Unset(130)
	if b.Test(130) {
		t.Errorf("expected bit 130 clear after unset")
	}
}

func TestRfind(t *testing.T) {
	b := New(200)
	if r := b.Rfind(199); r != -1 {
		t.Errorf("expected -1 on empty bitset, got %v", r)
	}
	b.Set(5)
	b.Set(70)
	b.Set(130)
	if r := b.Rfind(199); r != 130 {
		t.Errorf("expected 130, got %v", r)
	}
	if r := b.Rfind(130); r != 130 {
		t.Errorf("expected 130 (inclusive of i), got %v", r)
	}
	if r := b.Rfind(129); r != 70 {
		t.Errorf("expected 70, got %v", r)
	}
	if r := b.Rfind(69); r != 5 {
		t.Errorf("expected 5, got %v", r)
	}
	if r := b.Rfind(4); r != -1 {
		t.Errorf("expected -1, got %v", r)
	}
}

func TestFindLowestClear(t *testing.T) {
	b := New(10)
	for i := 0; i < 5; i++ {
		b.Set(i)
	}
	if r := b.FindLowestClear(10); r != 5 {
		t.Errorf("expected 5, got %v", r)
	}
	for i := 5; i < 10; i++ {
		b.Set(i)
	}
	if r := b.FindLowestClear(10); r != -1 {
		t.Errorf("expected -1 once full, got %v", r)
	}
}

func TestAtomicOrAndDrainCell(t *testing.T) {
	b := New(128)
	b.AtomicOr(3)
	b.AtomicOr(9)
	b.AtomicOr(9) // idempotent
	x := b.DrainCell(0)
	if x != (1<<3)|(1<<9) {
		t.Errorf("expected bits 3 and 9 set, got %#x", x)
	}
	if y := b.DrainCell(0); y != 0 {
		t.Errorf("expected drained cell to read back empty, got %#x", y)
	}
}

func TestEmpty(t *testing.T) {
	b := New(64)
	if !b.Empty() {
		t.Errorf("expected fresh bitset to be empty")
	}
	b.Set(40)
	if b.Empty() {
		t.Errorf("expected non-empty bitset after Set")
	}
}

func TestLsb(t *testing.T) {
	if x := Lsb(2, 1<<5); x != 2*64+5 {
		t.Errorf("expected %v, got %v", 2*64+5, x)
	}
}
