package usecase

const (
	// MaxFileExcerptChars caps the per-file excerpt injected into prompts.
	MaxFileExcerptChars = 1000

	// MaxHistoryTailChars caps the history tail used for the second
	// memory query.
	MaxHistoryTailChars = 1000

	// MaxContextMatches caps the merged memory matches injected into a prompt.
	MaxContextMatches = 5

	// QueryTopK is the per-query memory match limit.
	QueryTopK = 3

	// MaxConcurrentFileReads bounds ingestion fan-out.
	MaxConcurrentFileReads = 4

	// MaxSourceExcerptChars caps the input excerpt stored in record metadata.
	MaxSourceExcerptChars = 200
)

// Response labels, one per handler.
const (
	LabelWriting   = "[Writing Assistant]"
	LabelReading   = "[Reading Assistant]"
	LabelQA        = "[Q&A Assistant]"
	LabelReasoning = "[Reasoning Assistant]"
	LabelCreative  = "[Creative Assistant]"
)

// Handler personas.
const (
	PersonaWriting = "You are an expert writing assistant. Produce clear, well-structured prose tailored to the request."

	PersonaReading = "You are an expert reading and document analysis assistant. Summarize and explain the provided material accurately without inventing content."

	PersonaQA = "You are a helpful question answering assistant. Answer using the provided context when it is relevant, and say clearly when you do not know."

	PersonaReasoning = "You are an advanced reasoning assistant using chain-of-thought. Break the problem into numbered steps (Step 1:, Step 2:, ...) before giving the final answer."

	PersonaCreative = "You are an imaginative creative writing assistant. Invent vivid, original content."

	ClassifierInstruction = "You are a task classifier for a document assistant. Categorize the user request as exactly one of: writing, reading, qa, analysis, reasoning, creative. Respond with only the category name."
)

// Context block header rendered ahead of retrieved memories.
const MemoryContextHeader = "Relevant context from memory:"

// Generation settings.
const (
	ChatTemperature       = 0.3
	ReasoningTemperature  = 0.2
	GenerativeTemperature = 0.7
	CreativeTemperature   = 0.9
	ClassifyMaxTokens     = 16
	ResponseMaxTokens     = 1024
)
