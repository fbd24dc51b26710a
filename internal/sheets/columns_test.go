package sheets

import "testing"

func TestColumnIndex(t *testing.T) {
	cases := []struct {
		letter string
		index  int
	}{
		{"A", 0},
		{"H", 7},
		{"O", 14},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
		{" h ", 7},
	}
	for _, c := range cases {
		got, err := ColumnIndex(c.letter)
		if err != nil {
			t.Fatalf("ColumnIndex(%q): %v", c.letter, err)
		}
		if got != c.index {
			t.Errorf("ColumnIndex(%q) = %d, want %d", c.letter, got, c.index)
		}
	}
}

func TestColumnIndexRejectsGarbage(t *testing.T) {
	for _, letter := range []string{"", "1", "A1", "가"} {
		if _, err := ColumnIndex(letter); err == nil {
			t.Errorf("ColumnIndex(%q) accepted invalid input", letter)
		}
	}
}

func TestColumnLetterRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		letter := ColumnLetter(i)
		back, err := ColumnIndex(letter)
		if err != nil {
			t.Fatalf("ColumnIndex(%q): %v", letter, err)
		}
		if back != i {
			t.Errorf("round trip %d -> %q -> %d", i, letter, back)
		}
	}
}
