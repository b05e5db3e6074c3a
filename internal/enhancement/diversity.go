// internal/enhancement/diversity.go
package enhancement

import "math"

// AssessDiversity measures how many distinct source types back the input.
// Nil entries are excluded from the type count and ratio, but TotalSources
// still reports the raw input length so callers see how many sources were
// considered.
func AssessDiversity(sources []*Source) DiversityAssessment {
	if len(sources) == 0 {
		return DiversityAssessment{Level: DiversityNone}
	}

	valid := validSources(sources)
	if len(valid) == 0 {
		return DiversityAssessment{Level: DiversityNone, TotalSources: len(sources)}
	}

	seen := make(map[string]bool)
	types := make([]string, 0, len(valid))
	for _, s := range valid {
		st := s.SourceType()
		if !seen[st] {
			seen[st] = true
			types = append(types, st)
		}
	}

	unique := len(seen)
	ratio := float64(unique) / float64(len(valid))

	level := DiversityLow
	switch {
	case ratio >= 0.75 && unique >= 3:
		level = DiversityHigh
	case ratio >= 0.5 && unique >= 2:
		level = DiversityMedium
	}

	return DiversityAssessment{
		Level:          level,
		UniqueTypes:    unique,
		TotalSources:   len(sources),
		DiversityRatio: math.Round(ratio*100) / 100,
		SourceTypes:    types,
	}
}
