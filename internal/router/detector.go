package router

import "strings"

// DefaultNoAnswerMarkers is the authoritative marker set. Earlier revisions
// of the bot matched only "don't"; the widened set catches the phrasings the
// model actually produces when its context has no answer.
var DefaultNoAnswerMarkers = []string{
	"i don't know",
	"don't know",
	"dont know",
	"don't have",
	"no information",
	"sorry",
}

// Detector flags synthesized text that amounts to "no answer found". The
// match is a case-insensitive substring scan; it is a heuristic over model
// output, not NLP.
type Detector struct {
	markers []string
}

// NewDetector builds a detector over the given markers, or the default set
// when none are given.
func NewDetector(markers ...string) *Detector {
	if len(markers) == 0 {
		markers = DefaultNoAnswerMarkers
	}
	lowered := make([]string, len(markers))
	for i, m := range markers {
		lowered[i] = strings.ToLower(m)
	}
	return &Detector{markers: lowered}
}

// IsNoAnswer reports whether the text contains any marker, in any letter case.
func (d *Detector) IsNoAnswer(text string) bool {
	lowered := strings.ToLower(text)
	for _, m := range d.markers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}
