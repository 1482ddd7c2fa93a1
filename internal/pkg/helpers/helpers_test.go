package helpers

import (
	"math"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPaginate_ConcatenationReproducesInput(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for _, size := range []int{1, 4, 5, 12} {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			var joined []int
			info := NewPaginationInfo(n, 1, size)
			for page := 1; page <= info.TotalPages; page++ {
				chunk, _ := Paginate(items, page, size)
				if page == info.TotalPages && n > 0 {
					want := n % size
					if want == 0 {
						want = size
					}
					if len(chunk) != want {
						t.Fatalf("n=%d size=%d: last page len %d, want %d", n, size, len(chunk), want)
					}
				}
				joined = append(joined, chunk...)
			}
			if len(joined) != n {
				t.Fatalf("n=%d size=%d: joined len %d", n, size, len(joined))
			}
			for i, v := range joined {
				if v != i {
					t.Fatalf("n=%d size=%d: joined[%d]=%d", n, size, i, v)
				}
			}
		}
	}
}

func TestPaginate_PastEnd(t *testing.T) {
	chunk, info := Paginate([]string{"a", "b", "c"}, 5, 2)
	if len(chunk) != 0 {
		t.Errorf("expected empty page, got %v", chunk)
	}
	if info.TotalPages != 2 || info.TotalItems != 3 || info.CurrentPage != 5 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 12, math.MaxInt/12 + 2} {
		chunk, info := Paginate([]int{1, 2, 3}, page, 12)
		if len(chunk) != 0 {
			t.Errorf("page %d: got %v", page, chunk)
		}
		if info.TotalPages != 1 {
			t.Errorf("page %d: info %+v", page, info)
		}
	}
	if chunk, _ := Paginate([]int{}, math.MaxInt, 12); len(chunk) != 0 {
		t.Errorf("empty input: got %v", chunk)
	}
}

func TestParsePaginationParams_Bounds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limits := PageLimits{Default: 12, Max: 60}
	tests := []struct {
		query    string
		page     int
		wantSize int
	}{
		{"", 1, 12},
		{"page=3&size=20", 3, 20},
		{"page=-4&size=0", 1, 12},
		{"page=abc&size=61", 1, 12},
		{"page=9223372036854775807", MaxPage, 12},
		{"page=99999999999999999999", 1, 12},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/resources?"+tt.query, nil)
		page, size := ParsePaginationParams(c, limits)
		if page != tt.page || size != tt.wantSize {
			t.Errorf("%q: got %d/%d, want %d/%d", tt.query, page, size, tt.page, tt.wantSize)
		}
	}
}

func TestPageOffset(t *testing.T) {
	if got := PageOffset(3, 10); got != 20 {
		t.Errorf("PageOffset(3, 10) = %d", got)
	}
	if got := PageOffset(0, 0); got != 0 {
		t.Errorf("PageOffset(0, 0) = %d", got)
	}
	if got := PageOffset(math.MaxInt, 60); got != (MaxPage-1)*60 {
		t.Errorf("PageOffset(max) = %d", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Class 11 Physics":          "class-11-physics",
		"  JEE -- Main PYQ (2024) ": "jee-main-pyq-2024",
		"Maths: Algebra & Calculus": "maths-algebra-calculus",
		"Résumé":                    "r-sum",
		"":                          "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("**Newton**\n\n- first law\n- second law\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("MarkdownToHTML: %v", err)
	}
	if !strings.Contains(html, "<strong>Newton</strong>") || !strings.Contains(html, "<li>second law</li>") {
		t.Errorf("unexpected html: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw html leaked: %s", html)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if got := Deref(NilIfEmpty("x")); !reflect.DeepEqual(got, "x") {
		t.Errorf("round trip: got %q", got)
	}
}
