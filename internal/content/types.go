package content

// Difficulty is the ordinal complexity tier of a document.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// CodeSnippet is a literal code region found inside a section.
type CodeSnippet struct {
	Language    string `json:"language"`
	Code        string `json:"code"` // Verbatim, whitespace-trimmed only.
	Description string `json:"description,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// Section is a titled, contiguous span of the document.
type Section struct {
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	KeyPoints    []string      `json:"keyPoints"`
	CodeSnippets []CodeSnippet `json:"codeSnippets"`
	Examples     []string      `json:"examples,omitempty"`
	Subsections  []Section     `json:"subsections,omitempty"`
}

// StructuredContent is the hierarchical document built from raw model output.
type StructuredContent struct {
	Summary           string     `json:"summary"`
	MainTopic         string     `json:"mainTopic"`
	Sections          []Section  `json:"sections"`
	KeyTakeaways      []string   `json:"keyTakeaways"`
	RelatedTopics     []string   `json:"relatedTopics,omitempty"`
	Difficulty        Difficulty `json:"difficulty,omitempty"`
	EstimatedReadTime string     `json:"estimatedReadTime,omitempty"`
}

const (
	maxKeyPoints     = 5
	maxInlineCode    = 3
	maxExamples      = 3
	maxTakeaways     = 5
	maxRelatedTopics = 5
)
