package gen

import (
	"slices"
	"testing"
)

func TestGenerateChunkKnownSeed(t *testing.T) {
	tests := []struct {
		name       string
		seed       uint32
		idx        int
		freeCount  int
		pathPrefix []int
		lastKey    int
	}{
		{"classic seed chunk 0", 0x12345678, 0, 78, []int{24, 23, 48, 47, 46, 71, 70, 69}, 299},
		{"classic seed chunk 1", 0x12345678, 1, 78, []int{324, 323, 322, 347, 346, 321, 320, 345}, 599},
		{"classic seed chunk 5", 0x12345678, 5, 38, []int{1524, 1549, 1548, 1523, 1522, 1547, 1572, 1597}, 1799},
		{"seed 1 chunk 0", 1, 0, 58, []int{24, 23, 22, 21, 20, 19, 44, 45}, 299},
		{"seed 42 chunk 3", 42, 3, 66, []int{924, 923, 948, 973, 974, 999, 998, 1023}, 1199},
	}

	p := DefaultChunkParams()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := GenerateChunk(tc.seed, tc.idx, tc.idx+1, p)
			if c.FreeCount() != tc.freeCount {
				t.Errorf("FreeCount() = %d, expected %d", c.FreeCount(), tc.freeCount)
			}
			if !slices.Equal(c.Path[:len(tc.pathPrefix)], tc.pathPrefix) {
				t.Errorf("path prefix = %v, expected %v", c.Path[:len(tc.pathPrefix)], tc.pathPrefix)
			}
			if last := c.Path[len(c.Path)-1]; last != tc.lastKey {
				t.Errorf("last path key = %d, expected %d", last, tc.lastKey)
			}
		})
	}
}

func TestChunkEntryAndExit(t *testing.T) {
	p := DefaultChunkParams()
	c := GenerateChunk(0x12345678, 0, 1, p)

	first, last := c.Path[0], c.Path[len(c.Path)-1]
	if first%p.Width != p.Width-1 || last%p.Width != p.Width-1 {
		t.Errorf("path columns = %d..%d, expected both %d", first%p.Width, last%p.Width, p.Width-1)
	}
	if first/p.Width != 0 || last/p.Width != p.Height-1 {
		t.Errorf("path rows = %d..%d, expected 0..%d", first/p.Width, last/p.Width, p.Height-1)
	}
}

func TestChunkSolvableByConstruction(t *testing.T) {
	p := DefaultChunkParams()
	for s := uint32(1); s < 200; s++ {
		seed := s * 2654435761
		for idx := 0; idx < 40; idx += 3 {
			c := GenerateChunk(seed, idx, idx+1, p)

			count := 0
			c.ForEachFree(func(x, y int) { count++ })
			if count != len(c.Path) {
				t.Fatalf("seed %d idx %d: %d free cells, path length %d", seed, idx, count, len(c.Path))
			}

			for i := 1; i < len(c.Path); i++ {
				a, b := c.Path[i-1], c.Path[i]
				d := abs(a%p.Width-b%p.Width) + abs(a/p.Width-b/p.Width)
				if d != 1 {
					t.Fatalf("seed %d idx %d: path step %d->%d is not 4-adjacent", seed, idx, a, b)
				}
			}

			for _, k := range c.Path {
				if !c.IsFree(k%p.Width, k/p.Width) {
					t.Fatalf("seed %d idx %d: path cell %d is not free", seed, idx, k)
				}
			}
		}
	}
}

func TestGenerateChunkDeterministic(t *testing.T) {
	p := DefaultChunkParams()
	for idx := 0; idx < 20; idx++ {
		a := GenerateChunk(0xdeadbeef, idx, idx+1, p)
		b := GenerateChunk(0xdeadbeef, idx, idx+1, p)
		if !slices.Equal(a.Path, b.Path) || !slices.Equal(a.free, b.free) {
			t.Fatalf("chunk %d differs between calls", idx)
		}
	}
}

func TestChunkLinesOrientation(t *testing.T) {
	p := DefaultChunkParams()
	c := GenerateChunk(0x12345678, 0, 1, p)
	lines := c.Lines()

	if len(lines) != p.Height {
		t.Fatalf("Lines() returned %d rows, expected %d", len(lines), p.Height)
	}
	// Bottom row (y=0) is printed last and holds the entry cell.
	if lines[p.Height-1][p.Width-1] != '.' {
		t.Errorf("entry cell should be free in the last printed line: %q", lines[p.Height-1])
	}
}

func TestTurnDifficultyRamp(t *testing.T) {
	tests := []struct {
		loaded   int
		expected float64
	}{
		{0, 0},
		{1, 0},
		{8, 0.5},
		{15, 1},
		{40, 1},
	}
	for _, tc := range tests {
		if got := TurnDifficulty(tc.loaded, 1); got != tc.expected {
			t.Errorf("TurnDifficulty(%d) = %f, expected %f", tc.loaded, got, tc.expected)
		}
	}
}

func TestTuningAtFullDifficulty(t *testing.T) {
	tn := TuningFor(1, DefaultChunkParams())
	if tn.RequiredDips != 4 || tn.ShiftMax != 2 || tn.ForcedReversals != 8 {
		t.Errorf("TuningFor(1) = %+v", tn)
	}
	if tn.EdgeSweepChance < 0.0349 || tn.EdgeSweepChance > 0.0351 {
		t.Errorf("EdgeSweepChance = %f, expected 0.035", tn.EdgeSweepChance)
	}

	easy := TuningFor(0, DefaultChunkParams())
	if easy.ShiftMax != 5 || easy.RequiredDips != 0 {
		t.Errorf("TuningFor(0) = %+v", easy)
	}
}

func TestChunkParamsValidate(t *testing.T) {
	if err := DefaultChunkParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	odd := DefaultChunkParams()
	odd.Height = 11
	if err := odd.Validate(); err == nil {
		t.Error("odd chunk height should be rejected")
	}

	narrow := DefaultChunkParams()
	narrow.Width = 3
	if err := narrow.Validate(); err == nil {
		t.Error("width 3 should be rejected")
	}
}
