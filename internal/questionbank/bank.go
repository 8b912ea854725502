// Package questionbank stores the technical question corpus in an embedded
// vector database and retrieves questions by semantic similarity.
package questionbank

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/extract"
)

// Config holds the vector store and embedding endpoint settings.
type Config struct {
	// Path is the directory for persistent storage.
	Path string

	// Collection is the chromem collection name.
	Collection string

	// Embedding endpoint (OpenAI-compatible, e.g. DashScope compatible mode).
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string
}

// Chunking parameters for imported corpus files.
const (
	chunkSize = 1000
)

// Result is one retrieved corpus chunk.
type Result struct {
	Content    string
	Similarity float32
	Source     string
}

// Bank is the question corpus: import files once, query by similarity many
// times. chromem-go persists collections to disk, so the corpus survives
// restarts without an external database service.
type Bank struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// New opens (or creates) the persistent question bank using an
// OpenAI-compatible embeddings endpoint.
func New(cfg Config) (*Bank, error) {
	ef := chromem.NewEmbeddingFuncOpenAICompat(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, nil)
	return NewWithEmbedding(cfg, ef)
}

// NewWithEmbedding opens the bank with a caller-supplied embedding function.
func NewWithEmbedding(cfg Config, ef chromem.EmbeddingFunc) (*Bank, error) {
	db, err := chromem.NewPersistentDB(cfg.Path, false)
	if err != nil {
		return nil, fmt.Errorf("questionbank.New: open db: %w", err)
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("questionbank.New: collection %q: %w", cfg.Collection, err)
	}

	return &Bank{db: db, collection: collection}, nil
}

// ImportFile extracts text from a corpus file (PDF, text, or markdown),
// splits it into chunks, and adds them to the collection. Returns the number
// of chunks imported.
func (b *Bank) ImportFile(ctx context.Context, path string) (int, error) {
	text, err := extract.FromFile(path)
	if err != nil {
		return 0, fmt.Errorf("questionbank.ImportFile: %w", err)
	}

	chunks := chunkText(text, chunkSize)
	if len(chunks) == 0 {
		return 0, nil
	}

	source := filepath.Base(path)
	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:       uuid.New().String(),
			Content:  chunk,
			Metadata: map[string]string{"source": source},
		}
	}

	if err := b.collection.AddDocuments(ctx, docs, 1); err != nil {
		return 0, fmt.Errorf("questionbank.ImportFile: add documents: %w", err)
	}

	log.Info().Str("source", source).Int("chunks", len(chunks)).Msg("question corpus imported")

	return len(chunks), nil
}

// Search returns up to k corpus chunks ranked by similarity to the query.
func (b *Bank) Search(ctx context.Context, query string, k int) ([]Result, error) {
	count := b.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := b.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("questionbank.Search: %w", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Content:    r.Content,
			Similarity: r.Similarity,
			Source:     r.Metadata["source"],
		}
	}

	return out, nil
}

// Count returns the number of stored corpus chunks.
func (b *Bank) Count() int {
	return b.collection.Count()
}

// chunkText splits text into chunks of roughly size bytes along paragraph
// boundaries. Oversized single paragraphs become their own chunk.
func chunkText(text string, size int) []string {
	var (
		chunks  []string
		current strings.Builder
	)

	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > size {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
