// Package skillspot finds known skill keywords in free text such as resumes.
// It is plain keyword spotting over word windows, not language processing.
package skillspot

import (
	"strings"
)

// defaultKeywords maps lowercase phrases to canonical skill names.
var defaultKeywords = map[string]string{
	"python":             "Python",
	"javascript":         "JavaScript",
	"react":              "React",
	"machine learning":   "Machine Learning",
	"deep learning":      "Deep Learning",
	"data analysis":      "Data Analysis",
	"ui/ux":              "UI/UX",
	"project management": "Project Management",
	"communication":      "Communication",
	"excel":              "Excel",
	"java":               "Java",
	"research":           "Research",
	"sql":                "SQL",
	"statistics":         "Statistics",
	"html":               "HTML",
	"css":                "CSS",
	"cybersecurity":      "Cybersecurity",
	"networking":         "Networking",
	"digital marketing":  "Digital Marketing",
	"social media":       "Social Media",
	"content writing":    "Content Writing",
}

// DefaultFallback is reported when no keyword is found.
var DefaultFallback = []string{"Communication", "Project Management"}

// Spotter matches word windows of up to maxWords words against a keyword table.
type Spotter struct {
	keywords map[string]string
	maxWords int
	// Fallback is returned by Spot when nothing matches. Nil disables it.
	Fallback []string
}

// New builds a Spotter for keywords (phrase -> canonical skill).
// Phrases are matched case-insensitively on whole words.
func New(keywords map[string]string) *Spotter {
	s := &Spotter{keywords: make(map[string]string, len(keywords))}
	for phrase, skill := range keywords {
		key := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
		if key == "" {
			continue
		}
		s.keywords[key] = skill
		if n := len(strings.Fields(key)); n > s.maxWords {
			s.maxWords = n
		}
	}
	return s
}

// Default returns a Spotter with the built-in skill table and fallback.
func Default() *Spotter {
	s := New(defaultKeywords)
	s.Fallback = DefaultFallback
	return s
}

// Spot returns the canonical skills found in text, unique, in order of first appearance.
func (s *Spotter) Spot(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	for i, w := range words {
		words[i] = strings.Trim(w, `.,;:!?()[]{}"'`)
	}

	seen := make(map[string]bool)
	var skills []string
	for start := range words {
		for n := 1; n <= s.maxWords && start+n <= len(words); n++ {
			window := strings.Join(words[start:start+n], " ")
			skill, ok := s.keywords[window]
			if !ok || seen[skill] {
				continue
			}
			seen[skill] = true
			skills = append(skills, skill)
		}
	}

	if len(skills) == 0 && s.Fallback != nil {
		return append([]string(nil), s.Fallback...)
	}
	return skills
}
