package ui

// Kind вариант состояния страницы.
type Kind int

const (
	KindForm Kind = iota
	KindLoading
	KindResult
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindForm:
		return "form"
	case KindLoading:
		return "loading"
	case KindResult:
		return "result"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// State одно из {Form, Loading, Result(text), Error(message)}.
// Нулевое значение соответствует Form.
type State struct {
	kind Kind
	text string
}

func FormState() State                { return State{kind: KindForm} }
func LoadingState() State             { return State{kind: KindLoading} }
func ResultState(letter string) State { return State{kind: KindResult, text: letter} }
func ErrorState(message string) State { return State{kind: KindError, text: message} }

func (s State) Kind() Kind { return s.kind }

// Busy true, пока запрос в полёте.
func (s State) Busy() bool { return s.kind == KindLoading }

// Letter текст письма, если состояние Result.
func (s State) Letter() (string, bool) {
	if s.kind != KindResult {
		return "", false
	}
	return s.text, true
}

// Message текст ошибки, если состояние Error.
func (s State) Message() (string, bool) {
	if s.kind != KindError {
		return "", false
	}
	return s.text, true
}

// Editable форма видна и её можно отправить.
func (s State) Editable() bool {
	return s.kind == KindForm || s.kind == KindError
}
