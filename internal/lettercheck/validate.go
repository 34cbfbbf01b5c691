package lettercheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Salutation is the opening every generated letter is asked to start with.
const Salutation = "Dear Hiring Team"

// MaxWords is a rough upper bound for a letter that still fits on one page
// at 11pt with the export layout.
const MaxWords = 450

var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[[^\[\]\n]{1,80}\]`),
	regexp.MustCompile(`\{\{[^{}\n]*\}\}`),
	regexp.MustCompile(`<(?i:your|company|hiring|insert|date|address)[^<>\n]*>`),
}

// Expectations carries request values the letter is expected to mention.
type Expectations struct {
	Name        string
	CompanyName string
}

// ValidationResult carries validation details.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// Validate checks a generated letter against the shape the prompt asks for.
// Errors are contract violations; warnings are soft signals.
func Validate(letter string, want Expectations) ValidationResult {
	result := ValidationResult{}

	text := strings.TrimSpace(letter)
	if text == "" {
		result.Errors = append(result.Errors, "letter is empty")
		return result
	}

	if !strings.HasPrefix(text, Salutation) {
		first, _, _ := strings.Cut(text, "\n")
		result.Errors = append(result.Errors, fmt.Sprintf("letter must start with %q, got %q", Salutation, truncate(first, 40)))
	}

	for _, p := range Placeholders(text) {
		result.Errors = append(result.Errors, fmt.Sprintf("placeholder found: %s", p))
	}

	if want.Name != "" && !containsFold(text, want.Name) {
		result.Warnings = append(result.Warnings, "applicant name is not mentioned")
	}
	if want.CompanyName != "" && !containsFold(text, want.CompanyName) {
		result.Warnings = append(result.Warnings, "company name is not mentioned")
	}
	if words := len(strings.Fields(text)); words > MaxWords {
		result.Warnings = append(result.Warnings, fmt.Sprintf("letter has %d words and may not fit on one page", words))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// Placeholders returns fill-in tokens such as "[Your Address]" or "{{date}}".
func Placeholders(text string) []string {
	var found []string
	for _, re := range placeholderPatterns {
		found = append(found, re.FindAllString(text, -1)...)
	}
	return found
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
