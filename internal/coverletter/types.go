package coverletter

import (
	"errors"
	"strings"
)

// GenericFailure единственное сообщение об ошибке, которое видит клиент.
const GenericFailure = "Failed to generate cover letter."

var ErrMissingFields = errors.New("name, skills, jobTitle and companyName are required")

// Request данные формы; живёт только в рамках одного запроса.
type Request struct {
	Name        string `json:"name"`
	Skills      string `json:"skills"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
}

// Missing возвращает JSON-имена незаполненных полей.
func (r Request) Missing() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"skills", r.Skills},
		{"jobTitle", r.JobTitle},
		{"companyName", r.CompanyName},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Result ответ API: заполнено ровно одно поле.
type Result struct {
	CoverLetter string `json:"coverLetter,omitempty"`
	Error       string `json:"error,omitempty"`
}
