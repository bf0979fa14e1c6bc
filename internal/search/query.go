package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Hit is a single search result.
type Hit struct {
	ID    string
	Type  DocType
	Score float64
	Name  string
}

// SearchIngredients returns IDs of ingredients whose name starts with
// the given prefix, case-insensitively, best matches first.
func (s *SearchIndex) SearchIngredients(ctx context.Context, prefix string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 50
	}

	prefixQuery := bleve.NewPrefixQuery(strings.ToLower(prefix))
	prefixQuery.SetField("name")

	return s.run(ctx, withTypeFilter(prefixQuery, DocTypeIngredient), limit)
}

// SearchRecipes runs a free-text query over recipe names and bodies.
func (s *SearchIndex) SearchRecipes(ctx context.Context, text string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 50
	}

	textQueries := []query.Query{}

	nameMatch := bleve.NewMatchQuery(text)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	textQueries = append(textQueries, nameMatch)

	bodyMatch := bleve.NewMatchQuery(text)
	bodyMatch.SetField("text")
	textQueries = append(textQueries, bodyMatch)

	// Fuzzy matching for typo tolerance on the name.
	fuzzyQuery := bleve.NewFuzzyQuery(text)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("name")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	if len(text) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(text))
		prefixQuery.SetField("name")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	combined := bleve.NewDisjunctionQuery(textQueries...)
	return s.run(ctx, withTypeFilter(combined, DocTypeRecipe), limit)
}

// withTypeFilter restricts a query to one document type.
func withTypeFilter(q query.Query, docType DocType) query.Query {
	typeQuery := bleve.NewTermQuery(string(docType))
	typeQuery.SetField("type")
	return bleve.NewConjunctionQuery(q, typeQuery)
}

func (s *SearchIndex) run(ctx context.Context, q query.Query, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request := bleve.NewSearchRequestOptions(q, limit, 0, false)
	request.SortBy([]string{"-_score", "name"})
	request.Fields = []string{"id", "type", "name"}

	result, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		if t, ok := hit.Fields["type"].(string); ok {
			h.Type = DocType(t)
		}
		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		hits = append(hits, h)
	}
	return hits, nil
}
