package domain

// Reward image upload limits.
const MaxImageBytes = 1024 * 1024

var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

// Template linking / analysis tuning.
const (
	UnlinkedEventsLimit   = 50
	SuggestionSampleLimit = 30
	ConfidenceFloor       = 0.6
	AnalysisSampleSize    = 100
	MinGeneratedTemplates = 5
	MaxGeneratedTemplates = 15
)

// Similarity search defaults.
const (
	DefaultSimilarityThreshold = 0.6
	DefaultSimilarityLimit     = 10
)

// Batch embedding updates are chunked with a pause between chunks so we
// stay under the embedding API's rate limit.
const (
	EmbeddingChunkSize = 20
)
