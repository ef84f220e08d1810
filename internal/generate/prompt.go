package generate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ContentType selects the content instruction appended to a prompt.
type ContentType string

const (
	ContentExplanation    ContentType = "explanation"
	ContentList           ContentType = "list"
	ContentTutorial       ContentType = "tutorial"
	ContentCode           ContentType = "code"
	ContentCreative       ContentType = "creative"
	ContentAnalysis       ContentType = "analysis"
	ContentQuestionAnswer ContentType = "question_answer"
)

// Format selects the output format instruction appended to a prompt.
type Format string

const (
	FormatText       Format = "text"
	FormatStructured Format = "structured"
	FormatJSON       Format = "json"
	FormatMarkdown   Format = "markdown"
)

var contentInstructions = map[ContentType]string{
	ContentExplanation:    "Da una explicación clara y detallada, organizada en introducción, desarrollo y conclusión.",
	ContentList:           "Presenta la información como una lista estructurada de elementos breves.",
	ContentTutorial:       "Escribe un tutorial paso a paso con instrucciones progresivas.",
	ContentCode:           "Incluye ejemplos de código comentados y explicaciones técnicas precisas.",
	ContentCreative:       "Genera contenido original e interesante.",
	ContentAnalysis:       "Haz un análisis crítico con conclusiones fundamentadas.",
	ContentQuestionAnswer: "Responde de forma directa y completa a todos los aspectos de la pregunta.",
}

var formatInstructions = map[Format]string{
	FormatStructured: "Estructura la respuesta con títulos y subtítulos claros en formato markdown.",
	FormatJSON:       "Si es apropiado, incluye datos estructurados en JSON válido.",
	FormatMarkdown:   "Usa markdown completo: títulos, listas, enlaces y bloques de código.",
	FormatText:       "Presenta la información en texto plano bien organizado.",
}

const examplesInstruction = " Incluye ejemplos prácticos y casos de uso cuando sea relevante."

// StructuredRequest describes a prompt for structured content generation.
type StructuredRequest struct {
	Prompt          string
	Context         string
	ContentType     ContentType
	Format          Format
	IncludeExamples bool
}

// Normalized fills defaults: explanation content, structured format.
func (r StructuredRequest) Normalized() StructuredRequest {
	if _, ok := contentInstructions[r.ContentType]; !ok {
		r.ContentType = ContentExplanation
	}
	if _, ok := formatInstructions[r.Format]; !ok {
		r.Format = FormatStructured
	}
	return r
}

// BuildStructuredPrompt builds the full prompt sent to the generator.
func BuildStructuredPrompt(req StructuredRequest) string {
	req = req.Normalized()

	var sb strings.Builder
	if req.Context != "" {
		sb.WriteString(fmt.Sprintf("Contexto: %s\n\nPregunta: ", req.Context))
	}
	sb.WriteString(req.Prompt)
	sb.WriteString("\n\n")
	sb.WriteString(contentInstructions[req.ContentType])
	sb.WriteString("\n\n")
	sb.WriteString(formatInstructions[req.Format])
	if req.IncludeExamples {
		sb.WriteString(examplesInstruction)
	}
	return sb.String()
}

// ApplyTemplate substitutes prompt into the first {user_prompt} placeholder
// of tpl. An empty template returns prompt unchanged.
func ApplyTemplate(tpl, prompt string) string {
	if tpl == "" {
		return prompt
	}
	return strings.Replace(tpl, "{user_prompt}", prompt, 1)
}

// MaxTitleSource is the longest response accepted for title generation.
const MaxTitleSource = 5000

// TitlePrompt asks for a short descriptive title of a previous response.
func TitlePrompt(response string) string {
	return "Genera un título conciso y descriptivo (máximo 12 palabras) para el siguiente contenido. " +
		"Responde solo con el título, sin comillas ni explicaciones.\n\n" + response
}

// CleanTitle strips quotes, markdown markers and extra lines from a
// generated title.
func CleanTitle(s string) string {
	s = strings.TrimSpace(s)
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = line
	}
	s = strings.TrimLeft(s, "# ")
	s = strings.Trim(s, "\"'*` ")
	return strings.TrimSpace(s)
}

// EstimateTokens approximates token usage at four characters per token.
func EstimateTokens(s string) int {
	n := utf8.RuneCountInString(s)
	return (n + 3) / 4
}
