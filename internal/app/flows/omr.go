package flows

import (
	"strconv"
	"strings"
)

// DefaultOMRColumns is the grid width used when a request leaves it out.
const DefaultOMRColumns = 4

// OMRRows is the number of grid rows needed for questionCount questions.
func OMRRows(questionCount, columns int) int {
	if questionCount <= 0 || columns <= 0 {
		return 0
	}
	return (questionCount + columns - 1) / columns
}

// OMRQuestionAt is the 1-based question shown at (row, col). Questions run down
// each column before moving to the next one.
func OMRQuestionAt(row, col, rows int) int {
	return row + rows*col + 1
}

// OptionLabels returns the bubble labels for n options in the given style.
func OptionLabels(style OptionStyle, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		switch style {
		case OptionNumeric:
			labels[i] = strconv.Itoa(i + 1)
		case OptionRoman:
			labels[i] = roman(i + 1)
		default:
			labels[i] = string(rune('A' + i))
		}
	}
	return labels
}

// BuildOMRTable renders the answer grid as an HTML table. Cells past questionCount
// are left empty. The output depends only on the arguments.
func BuildOMRTable(questionCount, optionsPerQuestion, columns int, style OptionStyle) string {
	if columns <= 0 {
		columns = DefaultOMRColumns
	}
	rows := OMRRows(questionCount, columns)
	labels := OptionLabels(style, optionsPerQuestion)

	var b strings.Builder
	b.WriteString(`<table class="omr-grid">` + "\n<tbody>\n")
	for row := 0; row < rows; row++ {
		b.WriteString("<tr>")
		for col := 0; col < columns; col++ {
			q := OMRQuestionAt(row, col, rows)
			if q > questionCount {
				b.WriteString(`<td class="omr-cell empty"></td>`)
				continue
			}
			b.WriteString(`<td class="omr-cell"><span class="q-no">`)
			b.WriteString(strconv.Itoa(q))
			b.WriteString(".</span>")
			for _, label := range labels {
				b.WriteString(`<span class="bubble">`)
				b.WriteString(label)
				b.WriteString("</span>")
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// roman renders small positive integers as lower-case roman numerals.
func roman(n int) string {
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
