package buffer

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func mustLines(t *testing.T, alloc Allocator, lines ...string) *LineStore {
	t.Helper()
	s, err := FromLines(alloc, lines)
	if err != nil {
		t.Fatalf("FromLines(%q): %v", lines, err)
	}
	return s
}

func assertLines(t *testing.T, s *LineStore, want ...string) {
	t.Helper()
	if got := s.Lines(); !slices.Equal(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func TestNewStore(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	assertLines(t, s, "")
	if s.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", s.LineCount())
	}
}

func TestFromLinesRejectsNewline(t *testing.T) {
	if _, err := FromLines(nil, []string{"a\nb"}); !errors.Is(err, ErrNewline) {
		t.Errorf("err = %v, want ErrNewline", err)
	}
}

func TestFromLinesEmpty(t *testing.T) {
	s := mustLines(t, nil)
	assertLines(t, s, "")
}

func TestInsertChar(t *testing.T) {
	s := mustLines(t, nil, "hello")

	if !s.InsertChar(0, 0, 'H') {
		t.Fatal("insert at 0 failed")
	}
	assertLines(t, s, "Hhello")

	if !s.InsertChar(0, 6, '!') {
		t.Fatal("insert at end failed")
	}
	assertLines(t, s, "Hhello!")

	if !s.InsertChar(0, 3, '-') {
		t.Fatal("insert in middle failed")
	}
	assertLines(t, s, "Hhe-llo!")
}

func TestInsertCharInvalid(t *testing.T) {
	s := mustLines(t, nil, "ab")
	tests := []struct {
		name     string
		row, col int
		b        byte
	}{
		{"col past end", 0, 3, 'x'},
		{"negative col", 0, -1, 'x'},
		{"row past end", 1, 0, 'x'},
		{"newline byte", 0, 1, '\n'},
	}
	for _, tc := range tests {
		if s.InsertChar(tc.row, tc.col, tc.b) {
			t.Errorf("%s: InsertChar should fail", tc.name)
		}
	}
	assertLines(t, s, "ab")
}

func TestDeleteCharForward(t *testing.T) {
	s := mustLines(t, nil, "abc")
	if !s.DeleteCharForward(0, 1) {
		t.Fatal("delete failed")
	}
	assertLines(t, s, "ac")
}

func TestDeleteCharForwardAtEndDoesNotJoin(t *testing.T) {
	s := mustLines(t, nil, "ab", "cd")
	if s.DeleteCharForward(0, 2) {
		t.Error("delete at end of line should be a no-op")
	}
	assertLines(t, s, "ab", "cd")
}

func TestBackspaceWithinLine(t *testing.T) {
	s := mustLines(t, nil, "hello")
	row, col, ok := s.Backspace(0, 5)
	if !ok || row != 0 || col != 4 {
		t.Errorf("Backspace = (%d, %d, %v), want (0, 4, true)", row, col, ok)
	}
	assertLines(t, s, "hell")
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	s := mustLines(t, nil, "abc", "def")
	row, col, ok := s.Backspace(0, 0)
	if ok || row != 0 || col != 0 {
		t.Errorf("Backspace = (%d, %d, %v), want (0, 0, false)", row, col, ok)
	}
	assertLines(t, s, "abc", "def")
}

func TestBackspaceJoinsLines(t *testing.T) {
	s := mustLines(t, nil, "ab", "cd")
	row, col, ok := s.Backspace(1, 0)
	if !ok || row != 0 || col != 2 {
		t.Errorf("Backspace = (%d, %d, %v), want (0, 2, true)", row, col, ok)
	}
	assertLines(t, s, "abcd")
}

func TestBackspaceJoinsMiddleLine(t *testing.T) {
	s := mustLines(t, nil, "one", "two", "three")
	row, col, ok := s.Backspace(1, 0)
	if !ok || row != 0 || col != 3 {
		t.Errorf("Backspace = (%d, %d, %v), want (0, 3, true)", row, col, ok)
	}
	assertLines(t, s, "onetwo", "three")
	if s.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", s.LineCount())
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		row   int
		col   int
		want  []string
	}{
		{"middle", []string{"hello world"}, 0, 5, []string{"hello", " world"}},
		{"start", []string{"abc"}, 0, 0, []string{"", "abc"}},
		{"end", []string{"abc"}, 0, 3, []string{"abc", ""}},
		{"empty", []string{""}, 0, 0, []string{"", ""}},
		{"second of three", []string{"a", "bc", "d"}, 1, 1, []string{"a", "b", "c", "d"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := mustLines(t, nil, tc.lines...)
			row, col, ok := s.SplitLine(tc.row, tc.col)
			if !ok || row != tc.row+1 || col != 0 {
				t.Errorf("SplitLine = (%d, %d, %v), want (%d, 0, true)", row, col, ok, tc.row+1)
			}
			assertLines(t, s, tc.want...)
		})
	}
}

func TestSplitLineDoesNotAlias(t *testing.T) {
	s := mustLines(t, nil, "abcdef")
	s.SplitLine(0, 3)
	// Growing the left half must not overwrite the right half.
	s.InsertChar(0, 3, 'X')
	s.InsertChar(0, 4, 'Y')
	assertLines(t, s, "abcXY", "def")
}

func TestOperationsKeepOneLine(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s, _ := New(nil)
	row, col := 0, 0

	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			if s.InsertChar(row, col, byte('a'+rng.Intn(26))) {
				col++
			}
		case 1:
			s.DeleteCharForward(row, col)
		case 2:
			row, col, _ = s.Backspace(row, col)
		case 3:
			row, col, _ = s.SplitLine(row, col)
		}
		if s.LineCount() < 1 {
			t.Fatalf("step %d: LineCount = %d", i, s.LineCount())
		}
		if row < 0 || row >= s.LineCount() || col < 0 || col > s.LineLen(row) {
			t.Fatalf("step %d: cursor (%d, %d) out of bounds", i, row, col)
		}
	}
}

func TestRelease(t *testing.T) {
	heap := NewHeap(1024)
	s := mustLines(t, heap, "abc", "de")
	if heap.Used() == 0 {
		t.Fatal("heap should account for the lines")
	}
	s.Release()
	if heap.Used() != 0 {
		t.Errorf("heap.Used after Release = %d, want 0", heap.Used())
	}
	if s.LineCount() != 0 || !s.Released() {
		t.Errorf("released store: LineCount = %d, Released = %v", s.LineCount(), s.Released())
	}
	if s.InsertChar(0, 0, 'x') {
		t.Error("InsertChar after Release should fail")
	}
	if _, _, ok := s.SplitLine(0, 0); ok {
		t.Error("SplitLine after Release should fail")
	}
	s.Release()
}

func TestHeapAccountingFollowsEdits(t *testing.T) {
	heap := NewHeap(1024)
	s := mustLines(t, heap, "ab", "cd")
	want := 4 + 2*LineOverhead
	if heap.Used() != want {
		t.Fatalf("Used = %d, want %d", heap.Used(), want)
	}

	s.InsertChar(0, 0, 'x')
	want++
	if heap.Used() != want {
		t.Errorf("after insert: Used = %d, want %d", heap.Used(), want)
	}

	s.SplitLine(0, 1)
	want += LineOverhead
	if heap.Used() != want {
		t.Errorf("after split: Used = %d, want %d", heap.Used(), want)
	}

	s.Backspace(1, 0)
	want -= LineOverhead
	if heap.Used() != want {
		t.Errorf("after join: Used = %d, want %d", heap.Used(), want)
	}

	s.DeleteCharForward(0, 0)
	want--
	if heap.Used() != want {
		t.Errorf("after delete: Used = %d, want %d", heap.Used(), want)
	}
}

func TestInsertCharOutOfMemory(t *testing.T) {
	heap := NewHeap(3 + LineOverhead)
	s := mustLines(t, heap, "abc")
	if s.InsertChar(0, 1, 'x') {
		t.Error("InsertChar should fail when the heap is full")
	}
	assertLines(t, s, "abc")
}

func TestSplitLineOutOfMemory(t *testing.T) {
	heap := NewHeap(4 + 2*LineOverhead)
	s := mustLines(t, heap, "ab", "cd")
	before := heap.Used()

	row, col, ok := s.SplitLine(0, 1)
	if ok || row != 0 || col != 1 {
		t.Errorf("SplitLine = (%d, %d, %v), want (0, 1, false)", row, col, ok)
	}
	assertLines(t, s, "ab", "cd")
	if heap.Used() != before {
		t.Errorf("failed split changed accounting: %d -> %d", before, heap.Used())
	}
}

func TestBackspaceJoinOutOfMemory(t *testing.T) {
	heap := NewHeap(4 + 2*LineOverhead)
	s := mustLines(t, heap, "ab", "cd")

	row, col, ok := s.Backspace(1, 0)
	if ok || row != 1 || col != 0 {
		t.Errorf("Backspace = (%d, %d, %v), want (1, 0, false)", row, col, ok)
	}
	assertLines(t, s, "ab", "cd")

	// An empty line needs no growth to be joined.
	s2 := mustLines(t, NewHeap(2+2*LineOverhead), "ab", "")
	if _, _, ok := s2.Backspace(1, 0); !ok {
		t.Error("joining an empty line should not need memory")
	}
	assertLines(t, s2, "ab")
}

func TestFromLinesOutOfMemoryFreesClaims(t *testing.T) {
	heap := NewHeap(LineOverhead + 3)
	if _, err := FromLines(heap, []string{"abc", "def"}); !errors.Is(err, ErrNoMemory) {
		t.Fatalf("err = %v, want ErrNoMemory", err)
	}
	if heap.Used() != 0 {
		t.Errorf("Used = %d after failed build, want 0", heap.Used())
	}
}

func TestBytes(t *testing.T) {
	s := mustLines(t, nil, "hi", "", "there")
	if got := string(s.Bytes()); got != "hi\n\nthere\n" {
		t.Errorf("Bytes = %q", got)
	}
}

func TestLineReturnsCopy(t *testing.T) {
	s := mustLines(t, nil, "abc")
	l := s.Line(0)
	l[0] = 'X'
	assertLines(t, s, "abc")
	if s.Line(5) != nil {
		t.Error("Line out of range should be nil")
	}
	if s.LineLen(-1) != 0 {
		t.Error("LineLen out of range should be 0")
	}
}
