package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jerecoder/cave-snake/internal/gen"
	"github.com/jerecoder/cave-snake/internal/rng"
)

func TestWriteChunksStacksTopFirst(t *testing.T) {
	p := gen.DefaultChunkParams()
	var buf bytes.Buffer
	if err := writeChunks(&buf, 7, 2, p); err != nil {
		t.Fatalf("writeChunks() failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+2*p.Height {
		t.Fatalf("lines = %d, expected header plus %d rows", len(lines), 2*p.Height)
	}
	top := gen.GenerateChunk(7, 1, 2, p).Lines()
	bottom := gen.GenerateChunk(7, 0, 1, p).Lines()
	if lines[1] != top[0] {
		t.Errorf("first row %q, expected the top of chunk 1 %q", lines[1], top[0])
	}
	if last := lines[len(lines)-1]; last != bottom[len(bottom)-1] {
		t.Errorf("last row %q, expected the bottom of chunk 0 %q", last, bottom[len(bottom)-1])
	}
}

func TestWriteChunksRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		n    int
		p    gen.ChunkParams
	}{
		{"no chunks", 0, gen.DefaultChunkParams()},
		{"narrow board", 2, gen.ChunkParams{Width: 2, Height: 12, StartChunks: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := writeChunks(&bytes.Buffer{}, 1, tt.n, tt.p); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestWriteMazeMatchesGameSeeding(t *testing.T) {
	mp := gen.MazeParams{Width: 31, Height: 31}
	var buf bytes.Buffer
	if err := writeMaze(&buf, 42, 3, mp); err != nil {
		t.Fatalf("writeMaze() failed: %v", err)
	}

	cw, ch := mp.LogicalSize()
	mp.Loops = gen.LoopsForFloor(2, cw*ch)
	want := gen.GenerateMaze(rng.New(rng.Mix(42, 3)), mp)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+len(want.Lines) {
		t.Fatalf("lines = %d, expected header plus %d rows", len(lines), len(want.Lines))
	}
	for i, l := range want.Lines {
		if lines[i+1] != l {
			t.Fatalf("row %d = %q, expected %q", i, lines[i+1], l)
		}
	}

	if err := writeMaze(&bytes.Buffer{}, 42, 0, mp); err == nil {
		t.Error("expected floor 0 to be rejected")
	}
}
