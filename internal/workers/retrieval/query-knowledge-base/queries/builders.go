package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrMissingQuery = errors.New("query text is required")
)

// KnowledgeQuery describes one knowledge base search request.
type KnowledgeQuery struct {
	Index       string
	Query       string
	SourceTypes []string
	Category    string
	MinScore    float64
	Size        int
}

// BuildSearchRequest builds the Elasticsearch request for a knowledge base
// search: full-text relevance over headline and body, filtered by source
// type and category when given.
func BuildSearchRequest(kq KnowledgeQuery) (*esapi.SearchRequest, error) {
	if kq.Index == "" {
		return nil, ErrMissingIndex
	}
	if strings.TrimSpace(kq.Query) == "" {
		return nil, ErrMissingQuery
	}

	body, err := json.Marshal(buildSearchBody(kq))
	if err != nil {
		return nil, fmt.Errorf("marshal query body: %w", err)
	}

	size := kq.Size
	if size < 1 || size > 50 {
		size = 10
	}

	req := esapi.SearchRequest{
		Index: []string{kq.Index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}
	return &req, nil
}

func buildSearchBody(kq KnowledgeQuery) map[string]interface{} {
	mustClauses := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  kq.Query,
				"fields": []string{"title^3", "text^2", "keywords"},
				"type":   "best_fields",
			},
		},
	}

	filterClauses := []interface{}{}
	if len(kq.SourceTypes) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"metadata.sourceType": kq.SourceTypes},
		})
	}
	if kq.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"metadata.category": kq.Category},
		})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
	if kq.MinScore > 0 {
		body["min_score"] = kq.MinScore
	}
	return body
}
