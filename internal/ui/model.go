package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"coverletter/internal/coverletter"
	"coverletter/internal/pdfexport"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrBusy          = errors.New("a cover letter is already being generated")
	ErrNotEditable   = errors.New("form is not shown; start a new cover letter first")
	ErrNoLetter      = errors.New("no cover letter to export")
)

// Generator вызывает API генерации.
type Generator interface {
	Generate(ctx context.Context, req coverletter.Request) (string, error)
}

// Model состояние формы и результата. Одновременно выполняется не больше
// одного запроса: пока состояние Loading, Submit и Reset отклоняются.
type Model struct {
	mu     sync.Mutex
	gen    Generator
	export pdfexport.Options
	fields coverletter.Request
	state  State
}

func NewModel(gen Generator, export pdfexport.Options) *Model {
	return NewModelWithFields(gen, export, coverletter.Request{})
}

// NewModelWithFields модель в состоянии Form с уже заполненными полями.
func NewModelWithFields(gen Generator, export pdfexport.Options, fields coverletter.Request) *Model {
	return &Model{
		gen:    gen,
		export: export,
		fields: fields,
		state:  FormState(),
	}
}

func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Model) Fields() coverletter.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields
}

// SetFields меняет значения формы; доступно только в Form и Error.
func (m *Model) SetFields(fields coverletter.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.Editable() {
		if m.state.Busy() {
			return ErrBusy
		}
		return ErrNotEditable
	}
	m.fields = fields
	return nil
}

// Submit отправляет один запрос. При пустом поле запрос не уходит и состояние
// не меняется. Успех переводит в Result, ошибка в Error с её текстом.
func (m *Model) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Busy() {
		m.mu.Unlock()
		return ErrBusy
	}
	if !m.state.Editable() {
		m.mu.Unlock()
		return ErrNotEditable
	}
	if len(m.fields.Missing()) > 0 {
		m.mu.Unlock()
		return ErrMissingFields
	}
	req := m.fields
	m.state = LoadingState()
	m.mu.Unlock()

	letter, err := m.gen.Generate(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil && strings.TrimSpace(letter) == "" {
		err = ErrNoLetter
	}
	if err != nil {
		// Причина неудачного запроса остаётся в err для логов, пользователю только общий текст.
		msg := err.Error()
		if errors.Is(err, ErrRequestFailed) {
			msg = ErrRequestFailed.Error()
		}
		m.state = ErrorState(msg)
		return err
	}
	m.state = ResultState(letter)
	return nil
}

// Restore переводит модель в Result с уже полученным письмом, например когда
// страница присылает его обратно для экспорта.
func (m *Model) Restore(letter string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Busy() {
		return ErrBusy
	}
	if strings.TrimSpace(letter) == "" {
		return ErrNoLetter
	}
	m.state = ResultState(letter)
	return nil
}

// Reset очищает поля и результат и возвращает форму.
func (m *Model) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Busy() {
		return ErrBusy
	}
	m.fields = coverletter.Request{}
	m.state = FormState()
	return nil
}

// ExportPDF рендерит текущее письмо в PDF.
func (m *Model) ExportPDF(w io.Writer) error {
	letter, ok := m.State().Letter()
	if !ok {
		return ErrNoLetter
	}
	return pdfexport.Render(w, letter, m.export)
}
