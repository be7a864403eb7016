package assistant

import "docpilot/internal/model"

// Category is one of the six closed task categories.
type Category string

const (
	CategoryWriting   Category = "writing"
	CategoryReading   Category = "reading"
	CategoryQA        Category = "qa"
	CategoryAnalysis  Category = "analysis"
	CategoryReasoning Category = "reasoning"
	CategoryCreative  Category = "creative"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryWriting,
	CategoryReading,
	CategoryQA,
	CategoryAnalysis,
	CategoryReasoning,
	CategoryCreative,
}

// ParseCategory maps a raw classifier reply to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// State is the working record threaded through one pipeline invocation.
// Each stage receives the current State by value and returns the updated
// one; fields a stage does not touch keep their prior value. A State is
// never shared across concurrent requests.
type State struct {
	Input            string
	FilePaths        []string
	FileContents     []model.FileBlob
	Category         Category
	Embedding        []float32
	RetrievedContext []string
	MemoryContext    string
	ReasoningSteps   []string
	Response         string
	History          []model.Turn
}

// RunInput is the orchestrator entry input.
type RunInput struct {
	Input     string
	FilePaths []string
	History   []model.Turn
}

// RunOutput is the final state returned to the caller on success.
type RunOutput struct {
	Response       string
	History        []model.Turn
	TaskType       string
	ReasoningSteps []string
	SimilarContent []string
	MemoryContext  string
}
