package flows

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestBuildOMRTable_Layout(t *testing.T) {
	html := BuildOMRTable(10, 4, 4, OptionAlphabetic)

	if got := strings.Count(html, "<tr>"); got != 3 {
		t.Fatalf("rows: got %d, want 3", got)
	}
	if got := strings.Count(html, `<td class="omr-cell empty"></td>`); got != 2 {
		t.Errorf("empty cells: got %d, want 2", got)
	}

	// Questions run down each column: row 0 holds 1, 4, 7, 10.
	numbers := regexp.MustCompile(`<span class="q-no">(\d+)\.</span>`)
	firstRow := strings.SplitN(html, "</tr>", 2)[0]
	var got []string
	for _, m := range numbers.FindAllStringSubmatch(firstRow, -1) {
		got = append(got, m[1])
	}
	if want := []string{"1", "4", "7", "10"}; !reflect.DeepEqual(got, want) {
		t.Errorf("first row questions: got %v, want %v", got, want)
	}

	if html != BuildOMRTable(10, 4, 4, OptionAlphabetic) {
		t.Error("table is not deterministic")
	}
	if got := strings.Count(html, `<span class="bubble">`); got != 40 {
		t.Errorf("bubbles: got %d, want 40", got)
	}
}

func TestOMRQuestionMapping(t *testing.T) {
	rows := OMRRows(10, 4)
	if rows != 3 {
		t.Fatalf("rows = %d", rows)
	}
	seen := map[int]bool{}
	for row := 0; row < rows; row++ {
		for col := 0; col < 4; col++ {
			q := OMRQuestionAt(row, col, rows)
			if q != row+rows*col+1 {
				t.Fatalf("(%d,%d) = %d", row, col, q)
			}
			if q <= 10 {
				seen[q] = true
			}
		}
	}
	if len(seen) != 10 {
		t.Errorf("every question must appear once, saw %d", len(seen))
	}
	if OMRRows(0, 4) != 0 || OMRRows(8, 4) != 2 {
		t.Error("row count edge cases")
	}
}

func TestOptionLabels(t *testing.T) {
	tests := []struct {
		style OptionStyle
		n     int
		want  []string
	}{
		{OptionAlphabetic, 4, []string{"A", "B", "C", "D"}},
		{OptionNumeric, 3, []string{"1", "2", "3"}},
		{OptionRoman, 10, []string{"i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x"}},
	}
	for _, tt := range tests {
		if got := OptionLabels(tt.style, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.style, got, tt.want)
		}
	}
}

func TestBuildOMRTable_DefaultColumns(t *testing.T) {
	if BuildOMRTable(10, 4, 0, OptionNumeric) != BuildOMRTable(10, 4, DefaultOMRColumns, OptionNumeric) {
		t.Error("zero columns should use the default")
	}
}
