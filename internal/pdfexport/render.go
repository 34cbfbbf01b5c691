package pdfexport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Filename имя файла, под которым браузер сохраняет письмо.
const Filename = "Cover_Letter.pdf"

var ErrEmptyText = errors.New("nothing to export")

type Options struct {
	Geometry
	FontFamily string
	FontSize   float64
	WrapWidth  float64
}

// DefaultOptions A4, Times 11pt, поля 15 мм, ширина строки 180 мм.
func DefaultOptions() Options {
	return Options{
		Geometry:   DefaultGeometry(),
		FontFamily: "Times",
		FontSize:   11,
		WrapWidth:  180,
	}
}

// Render пишет PDF с текстом письма в w.
func Render(w io.Writer, text string, opts Options) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Cover Letter", true)
	doc.SetCreator("coverletter", true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	doc.AddPage()
	doc.SetFont(opts.FontFamily, "", opts.FontSize)

	// Встроенные шрифты работают в cp1252.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	wrapper := NewWidthWrapper(func(s string) float64 {
		return doc.GetStringWidth(tr(s))
	})

	geometry := opts.Geometry
	if _, pageHeight := doc.GetPageSize(); pageHeight > 0 {
		geometry.PageHeight = pageHeight
	}

	page := 1
	for _, p := range Layout(wrapper.Wrap(text, opts.WrapWidth), geometry) {
		for page < p.Page {
			doc.AddPage()
			page++
		}
		if p.Text != "" {
			doc.Text(geometry.Margin, p.Y, tr(p.Text))
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
