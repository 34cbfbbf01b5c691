package coverletter

import "fmt"

const promptTemplate = "Write a professional cover letter for %s, highlighting their skills (%s) and suitability for the role of %s at %s, " +
	"help fit it in less than one page and keep it short. " +
	"Do not include header information at the top, just start off with Dear Hiring Team " +
	"and no need for placeholders that the user has to input in the generated cover letter."

// BuildPrompt собирает однократный промпт для модели.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate, req.Name, req.Skills, req.JobTitle, req.CompanyName)
}
