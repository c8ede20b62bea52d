package kb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/philippgille/chromem-go"

	"github.com/accessly/a11ybot/pkg/logger"
)

// SearchResult is a single semantic search hit.
type SearchResult struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float32 `json:"score"`
	Source  string  `json:"source"` // "articles" or "conversations"
}

// VectorStore indexes knowledge base articles and conversation turns
// for semantic lookup. Backed by a persistent chromem database under
// <workspace>/kb/vectors.
type VectorStore struct {
	db            *chromem.DB
	articles      *chromem.Collection
	conversations *chromem.Collection
}

// NewVectorStore opens (or creates) the vector database. embeddingFn
// supplies embeddings for both indexing and queries.
func NewVectorStore(workspace string, embeddingFn chromem.EmbeddingFunc) (*VectorStore, error) {
	dbPath := filepath.Join(workspace, "kb", "vectors")
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("create vector dir: %w", err)
	}

	db, err := chromem.NewPersistentDB(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}

	articles, err := db.GetOrCreateCollection("articles", nil, embeddingFn)
	if err != nil {
		return nil, fmt.Errorf("create articles collection: %w", err)
	}

	conversations, err := db.GetOrCreateCollection("conversations", nil, embeddingFn)
	if err != nil {
		return nil, fmt.Errorf("create conversations collection: %w", err)
	}

	logger.InfoCF("kb", "Vector store initialized", map[string]interface{}{
		"path":                dbPath,
		"articles_count":      articles.Count(),
		"conversations_count": conversations.Count(),
	})

	return &VectorStore{
		db:            db,
		articles:      articles,
		conversations: conversations,
	}, nil
}

// IndexArticles embeds the knowledge base articles. Document IDs are
// derived from topics, so re-indexing on startup is idempotent.
func (vs *VectorStore) IndexArticles(ctx context.Context, base *Base) error {
	for _, a := range base.Articles() {
		doc := chromem.Document{
			ID:      "article:" + a.Topic,
			Content: a.Question + "\n" + a.Answer,
			Metadata: map[string]string{
				"topic": a.Topic,
			},
		}
		if err := vs.articles.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("index article %q: %w", a.Topic, err)
		}
	}
	return nil
}

// IndexConversation embeds one question/answer pair. Failures are
// logged, not surfaced; indexing is best-effort and never blocks a
// response.
func (vs *VectorStore) IndexConversation(ctx context.Context, sessionKey, userMsg, assistantMsg string) {
	ts := time.Now()
	doc := chromem.Document{
		ID:      fmt.Sprintf("%s:%d", sessionKey, ts.UnixNano()),
		Content: fmt.Sprintf("User: %s\nAssistant: %s", userMsg, assistantMsg),
		Metadata: map[string]string{
			"session_key": sessionKey,
			"timestamp":   ts.Format(time.RFC3339),
		},
	}

	if err := vs.conversations.AddDocument(ctx, doc); err != nil {
		logger.ErrorCF("kb", "Failed to index conversation", map[string]interface{}{
			"error":       err.Error(),
			"session_key": sessionKey,
		})
	}
}

// Search queries both collections and returns the best hits across
// them, highest similarity first.
func (vs *VectorStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	var results []SearchResult

	for _, c := range []struct {
		name string
		coll *chromem.Collection
	}{
		{"articles", vs.articles},
		{"conversations", vs.conversations},
	} {
		n := limit
		if count := c.coll.Count(); n > count {
			n = count
		}
		if n == 0 {
			continue
		}

		hits, err := c.coll.Query(ctx, query, n, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", c.name, err)
		}
		for _, h := range hits {
			results = append(results, SearchResult{
				ID:      h.ID,
				Content: h.Content,
				Score:   h.Similarity,
				Source:  c.name,
			})
		}
	}

	// Highest similarity first across both collections
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
