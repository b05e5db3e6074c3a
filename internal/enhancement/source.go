// internal/enhancement/source.go
package enhancement

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// defaultSourceConfidence stands in for a missing or non-numeric
	// per-source confidence score.
	defaultSourceConfidence = 0.7
	// neutralConfidence is the distinguished "no evidence" value returned
	// for empty input instead of re-running the banding formula.
	neutralConfidence = 0.5

	sourceTypeUnknown = "unknown"
)

// validSources filters nil entries and entries with no usable content.
// All scoring and counting happens over the filtered slice; only
// DiversityAssessment.TotalSources reports the raw length.
func validSources(sources []*Source) []*Source {
	if len(sources) == 0 {
		return nil
	}
	out := make([]*Source, 0, len(sources))
	for _, s := range sources {
		if s == nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SourceType returns the attribution type tag, defaulting to "unknown".
func (s *Source) SourceType() string {
	if v := s.metaString("sourceType"); v != "" {
		return v
	}
	return sourceTypeUnknown
}

// Confidence returns the per-source confidence clamped to [0,1], or the
// documented default when the metadata value is missing or non-numeric.
func (s *Source) Confidence() float64 {
	if s.Metadata == nil {
		return defaultSourceConfidence
	}
	v, ok := s.Metadata["confidence"]
	if !ok {
		return defaultSourceConfidence
	}
	f, ok := toFloat(v)
	if !ok {
		return defaultSourceConfidence
	}
	return clamp(f, 0, 1)
}

// DisplayName returns docTitle, then filename, then a placeholder.
func (s *Source) DisplayName() string {
	if v := s.metaString("docTitle"); v != "" {
		return v
	}
	if v := s.metaString("filename"); v != "" {
		return v
	}
	return "Unknown Document"
}

func (s *Source) Category() string     { return s.metaString("category") }
func (s *Source) SKU() string          { return s.metaString("sku") }
func (s *Source) Availability() string { return s.metaString("availability") }

// Price returns the numeric price when the metadata carries one, accepting
// both number and string representations.
func (s *Source) Price() (float64, bool) {
	if s.Metadata == nil {
		return 0, false
	}
	v, ok := s.Metadata["price"]
	if !ok {
		return 0, false
	}
	if f, ok := toFloat(v); ok {
		return f, true
	}
	return 0, false
}

// PriceLabel returns the raw price value rendered for display, empty when absent.
func (s *Source) PriceLabel() string {
	if s.Metadata == nil {
		return ""
	}
	v, ok := s.Metadata["price"]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// LastUpdatedAt parses the lastUpdatedAt metadata as RFC3339 or epoch millis.
func (s *Source) LastUpdatedAt() (time.Time, bool) {
	if s.Metadata == nil {
		return time.Time{}, false
	}
	v, ok := s.Metadata["lastUpdatedAt"]
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
	case float64:
		if t > 0 {
			return time.UnixMilli(int64(t)), true
		}
	case int64:
		if t > 0 {
			return time.UnixMilli(t), true
		}
	}
	return time.Time{}, false
}

// FlaggedForEscalation reports whether the source carries either of the
// human-review markers.
func (s *Source) FlaggedForEscalation() bool {
	return s.metaBool("escalationRequired") || s.metaBool("requiresHumanReview")
}

func (s *Source) metaString(key string) string {
	if s.Metadata == nil {
		return ""
	}
	if v, ok := s.Metadata[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (s *Source) metaBool(key string) bool {
	if s.Metadata == nil {
		return false
	}
	if v, ok := s.Metadata[key].(bool); ok {
		return v
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncateAtWord shortens text to at most max characters, cutting at the last
// word boundary and appending an ellipsis when anything was dropped.
func truncateAtWord(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		return cut[:idx] + "..."
	}
	// No word boundary to cut at; back up so a multibyte rune is never split.
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max] + "..."
}
