package ui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"coverletter/internal/coverletter"
	"coverletter/internal/middleware"
	"coverletter/internal/pdfexport"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const missingFieldsMessage = "Please fill in Name, Skills, Job Title and Company Name."

type PagesDeps struct {
	Generator Generator
	Logger    *slog.Logger
	Export    pdfexport.Options
}

// Pages серверная версия одностраничной формы: каждый запрос строит свою Model.
type Pages struct {
	gen      Generator
	logger   *slog.Logger
	export   pdfexport.Options
	tmpl     *template.Template
	markdown goldmark.Markdown
	static   http.Handler
}

type pageView struct {
	ShowForm   bool
	Fields     coverletter.Request
	Error      string
	Letter     string
	LetterHTML template.HTML
}

func NewPages(deps PagesDeps) (*Pages, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}

	return &Pages{
		gen:    deps.Generator,
		logger: deps.Logger,
		export: deps.Export,
		tmpl:   tmpl,
		// Сырой HTML из ответа модели не выводится (goldmark по умолчанию его вырезает).
		markdown: goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(sub))),
	}, nil
}

func (p *Pages) Static() http.Handler {
	return p.static
}

// Form пустая форма; это же и "Generate New Cover Letter".
func (p *Pages) Form(w http.ResponseWriter, r *http.Request) {
	m := NewModel(p.gen, p.export)
	p.render(w, r, http.StatusOK, m)
}

// Submit отправляет форму в API и показывает письмо либо ошибку над формой.
func (p *Pages) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	m := NewModelWithFields(p.gen, p.export, coverletter.Request{
		Name:        r.PostFormValue("name"),
		Skills:      r.PostFormValue("skills"),
		JobTitle:    r.PostFormValue("jobTitle"),
		CompanyName: r.PostFormValue("companyName"),
	})

	err := m.Submit(r.Context())
	switch {
	case errors.Is(err, ErrMissingFields):
		p.renderView(w, r, http.StatusBadRequest, pageView{
			ShowForm: true,
			Fields:   m.Fields(),
			Error:    missingFieldsMessage,
		})
		return
	case err != nil:
		p.logError(r, "generate cover letter", err)
	}
	p.render(w, r, http.StatusOK, m)
}

// Export отдаёт присланное письмо как Cover_Letter.pdf.
func (p *Pages) Export(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	m := NewModel(p.gen, p.export)
	if err := m.Restore(r.PostFormValue("coverLetter")); err != nil {
		http.Error(w, ErrNoLetter.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := m.ExportPDF(&buf); err != nil {
		p.logError(r, "export pdf", err)
		http.Error(w, "failed to export PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdfexport.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, m *Model) {
	state := m.State()
	view := pageView{
		ShowForm: state.Editable(),
		Fields:   m.Fields(),
	}
	if msg, ok := state.Message(); ok {
		view.Error = msg
	}
	if letter, ok := state.Letter(); ok {
		view.Letter = letter
		view.LetterHTML = p.letterHTML(r, letter)
	}
	p.renderView(w, r, status, view)
}

func (p *Pages) renderView(w http.ResponseWriter, r *http.Request, status int, view pageView) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "index.html", view); err != nil {
		p.logError(r, "render template", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (p *Pages) letterHTML(r *http.Request, letter string) template.HTML {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(letter), &buf); err != nil {
		p.logError(r, "render letter", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(letter) + "</pre>")
	}
	return template.HTML(buf.String())
}

func (p *Pages) logError(r *http.Request, msg string, err error) {
	if p.logger == nil {
		return
	}
	p.logger.Error(msg,
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetRequestID(r)))
}
