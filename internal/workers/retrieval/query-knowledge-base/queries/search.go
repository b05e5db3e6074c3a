// internal/workers/retrieval/query-knowledge-base/queries/search.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// SearchHit is one scored knowledge base document with its attribution
// metadata already normalized.
type SearchHit struct {
	Text     string
	Metadata map[string]interface{}
	Score    float64
}

type SearchResult struct {
	Hits      []SearchHit
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// Search executes a knowledge base query and normalizes the hits. Each hit
// carries the document's stored metadata plus the relevance score; documents
// indexed without an explicit confidence get one derived from relative score.
func Search(ctx context.Context, esClient *elasticsearch.Client, kq KnowledgeQuery) (*SearchResult, error) {
	req, err := BuildSearchRequest(kq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("knowledge search failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response: missing hits")
	}

	total := int64(0)
	if t, ok := hits["total"].(map[string]interface{}); ok {
		if v, ok := t["value"].(float64); ok {
			total = int64(v)
		}
	}
	maxScore := 0.0
	if ms, ok := hits["max_score"].(float64); ok {
		maxScore = ms
	}

	result := &SearchResult{
		TotalHits: total,
		MaxScore:  maxScore,
		Took:      time.Since(start).Milliseconds(),
	}

	rawHits, _ := hits["hits"].([]interface{})
	for _, raw := range rawHits {
		hit, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hit["_source"].(map[string]interface{})
		if !ok {
			continue
		}

		score := 0.0
		if s, ok := hit["_score"].(float64); ok {
			score = s
		}

		result.Hits = append(result.Hits, SearchHit{
			Text:     textField(source),
			Metadata: normalizeMetadata(source, score, maxScore),
			Score:    score,
		})
	}

	return result, nil
}

func textField(source map[string]interface{}) string {
	if text, ok := source["text"].(string); ok && text != "" {
		return text
	}
	if content, ok := source["content"].(string); ok {
		return content
	}
	return ""
}

// normalizeMetadata merges the document's stored metadata object with its
// top-level attribution fields and the search score. Confidence falls back
// to the hit's score relative to the best hit, floored so weak matches still
// carry a usable signal.
func normalizeMetadata(source map[string]interface{}, score, maxScore float64) map[string]interface{} {
	meta := map[string]interface{}{}
	if stored, ok := source["metadata"].(map[string]interface{}); ok {
		for k, v := range stored {
			meta[k] = v
		}
	}
	if title, ok := source["title"].(string); ok && title != "" {
		if _, exists := meta["docTitle"]; !exists {
			meta["docTitle"] = title
		}
	}
	meta["searchScore"] = score

	if _, exists := meta["confidence"]; !exists && maxScore > 0 {
		relative := score / maxScore
		if relative < 0.3 {
			relative = 0.3
		}
		meta["confidence"] = relative
	}
	return meta
}
