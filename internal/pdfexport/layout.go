package pdfexport

import (
	"strings"
	"unicode/utf8"
)

// Wrapper разбивает текст на строки не шире width.
type Wrapper interface {
	Wrap(text string, width float64) []string
}

// Geometry вертикальная раскладка страницы, в единицах документа (мм).
type Geometry struct {
	Margin           float64
	LineHeight       float64
	ParagraphSpacing float64
	// PageHeight <= 0 отключает переход на новую страницу.
	PageHeight float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		Margin:           15,
		LineHeight:       8,
		ParagraphSpacing: 6,
		PageHeight:       297,
	}
}

// Placement строка, которую нужно вывести: страница с 1, Y по базовой линии.
type Placement struct {
	Page int
	Y    float64
	Text string
}

// Layout раскладывает строки сверху вниз. Пустая строка (кроме первой) не
// выводится и добавляет ParagraphSpacing; остальные добавляют LineHeight.
func Layout(lines []string, g Geometry) []Placement {
	out := make([]Placement, 0, len(lines))
	page := 1
	y := g.Margin
	bottom := g.PageHeight - g.Margin

	for i, line := range lines {
		if line == "" && i > 0 {
			y += g.ParagraphSpacing
			continue
		}
		if g.PageHeight > 0 && y > bottom {
			page++
			y = g.Margin
		}
		out = append(out, Placement{Page: page, Y: y, Text: line})
		y += g.LineHeight
	}
	return out
}

// WidthWrapper жадный перенос по словам с внешней функцией измерения ширины.
// Пустая строка исходного текста даёт ровно одну пустую строку результата.
type WidthWrapper struct {
	measure func(string) float64
}

func NewWidthWrapper(measure func(string) float64) WidthWrapper {
	return WidthWrapper{measure: measure}
}

func (w WidthWrapper) Wrap(text string, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if w.measure(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for w.measure(word) > width {
				head, tail := w.splitWord(word, width)
				lines = append(lines, head)
				word = tail
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// splitWord отрезает самый длинный префикс, который помещается; минимум один символ.
func (w WidthWrapper) splitWord(word string, width float64) (string, string) {
	cut := 0
	for i := range word {
		if i > 0 && w.measure(word[:i]) > width {
			break
		}
		cut = i
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(word)
		cut = size
	}
	return word[:cut], word[cut:]
}
