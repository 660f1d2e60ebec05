package rng

import "testing"

func TestNextU32KnownValues(t *testing.T) {
	v, s := NextU32(1)
	if v != 270369 || s != v {
		t.Fatalf("NextU32(1) = (%d, %d), expected (270369, 270369)", v, s)
	}
	v, _ = NextU32(s)
	if v != 67634689 {
		t.Errorf("second value = %d, expected 67634689", v)
	}
}

func TestZeroSeedFallsBack(t *testing.T) {
	r := New(0)
	if r.State() != DefaultSeed {
		t.Fatalf("State() = %#x, expected %#x", r.State(), DefaultSeed)
	}

	expected := []uint32{2274908837, 358294691}
	for i, want := range expected {
		if got := r.Uint32(); got != want {
			t.Errorf("value %d = %d, expected %d", i, got, want)
		}
	}
	if f := r.Float(); f < 0.2817528 || f > 0.2817529 {
		t.Errorf("Float() = %f, expected ~0.28175287", f)
	}
	if n := r.Intn(10); n != 5 {
		t.Errorf("Intn(10) = %d, expected 5", n)
	}
}

func TestDeterminism(t *testing.T) {
	a := New(987654321)
	b := New(987654321)
	for i := 0; i < 1000; i++ {
		if a.Uint32() != b.Uint32() {
			t.Fatalf("streams diverged at %d", i)
		}
	}
}

func TestFloatAndIntnRange(t *testing.T) {
	r := New(42)
	for i := 0; i < 10000; i++ {
		f := r.Float()
		if f < 0 || f >= 1 {
			t.Fatalf("Float() = %f out of [0,1)", f)
		}
		n := r.Intn(7)
		if n < 0 || n >= 7 {
			t.Fatalf("Intn(7) = %d out of range", n)
		}
	}
	before := r.State()
	if r.Intn(0) != 0 || r.State() != before {
		t.Error("Intn(0) should return 0 without advancing the stream")
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		seed  uint32
		index int
		want  uint32
	}{
		{0, 0, 0x9e3779b9},
		{0x12345678, 0, 0x12345678 ^ 0x9e3779b9},
		{0x12345678, 1, 0x12345678 ^ 0x3c6ef372},
	}
	for _, tc := range tests {
		if got := Mix(tc.seed, tc.index); got != tc.want {
			t.Errorf("Mix(%#x, %d) = %#x, expected %#x", tc.seed, tc.index, got, tc.want)
		}
	}
}

func TestShufflePermutes(t *testing.T) {
	r := New(7)
	xs := []int{0, 1, 2, 3, 4, 5, 6, 7}
	r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

	seen := make(map[int]bool)
	for _, x := range xs {
		seen[x] = true
	}
	if len(seen) != 8 {
		t.Errorf("Shuffle lost elements: %v", xs)
	}
}
