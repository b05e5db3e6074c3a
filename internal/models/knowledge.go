// internal/models/knowledge.go
package models

import "enhancement-workers/internal/enhancement"

// KnowledgeSource is the wire form of a retrieved knowledge base document as
// it travels between workers in process variables.
type KnowledgeSource struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ToSources converts wire sources into engine sources. Entries with empty
// text are passed through unchanged; the engine drops them during source
// normalization, before any counting or scoring.
func ToSources(in []KnowledgeSource) []*enhancement.Source {
	if len(in) == 0 {
		return nil
	}
	out := make([]*enhancement.Source, 0, len(in))
	for _, s := range in {
		out = append(out, &enhancement.Source{Text: s.Text, Metadata: s.Metadata})
	}
	return out
}

// FromSource converts an engine source back to wire form.
func FromSource(s *enhancement.Source) KnowledgeSource {
	if s == nil {
		return KnowledgeSource{}
	}
	return KnowledgeSource{Text: s.Text, Metadata: s.Metadata}
}
