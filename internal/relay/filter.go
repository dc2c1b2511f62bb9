package relay

import "strings"

// KeywordFilter decides which purchases are worth forwarding. Matching is
// case-insensitive on both sides: keywords are lower-cased at construction
// and the description is lower-cased before comparison.
type KeywordFilter struct {
	keywords []string
}

func NewKeywordFilter(keywords []string) *KeywordFilter {
	kws := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		kws = append(kws, kw)
	}
	return &KeywordFilter{keywords: kws}
}

// Matches reports whether the description contains any configured keyword as
// a substring. An empty description never matches.
func (f *KeywordFilter) Matches(description string) bool {
	if description == "" {
		return false
	}
	desc := strings.ToLower(description)
	for _, kw := range f.keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
