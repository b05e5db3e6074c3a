// internal/workers/retrieval/query-knowledge-base/models.go
package queryknowledgebase

import "enhancement-workers/internal/models"

type Input struct {
	Query       string   `json:"query"`
	IndexName   string   `json:"indexName,omitempty"`
	SourceTypes []string `json:"sourceTypes,omitempty"`
	Category    string   `json:"category,omitempty"`
	MaxResults  int      `json:"maxResults,omitempty"`
	MinScore    float64  `json:"minScore,omitempty"`
	UserID      string   `json:"userId,omitempty"`
}

type Output struct {
	Sources   []models.KnowledgeSource `json:"sources"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
