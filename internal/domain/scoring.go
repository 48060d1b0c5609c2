package domain

import (
	"math"
	"net/url"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Exact keyword match bonus: a keyword is the user's own alias
	ScoreExactKeywordBonus = 200.0

	// Anywhere in the URL, e.g. a path segment. Below any host match.
	ScoreURLMatch = 20.0

	// Usage weight (open counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// Candidate is a link with its match score.
type Candidate struct {
	Link         Link
	GroupName    string
	LexicalScore float64
	UsageScore   float64
	TotalScore   float64
}

// ScoreLink scores a link against a query. Zero means no match.
//
// Keywords are scored first (an exact keyword is the strongest signal),
// then the title, then the URL host, then the rest of the URL. Any link
// whose title, URL or keywords contain the query scores above zero.
func ScoreLink(query string, link Link) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0.0
	}

	best := 0.0
	for _, kw := range link.Keywords {
		kw = strings.ToLower(kw)
		if kw == query {
			return ScoreExactMatch + ScoreExactKeywordBonus
		}
		best = math.Max(best, scoreText(query, kw))
	}

	best = math.Max(best, scoreText(query, strings.ToLower(link.Title)))

	if u, err := url.Parse(link.URL); err == nil && u.Host != "" {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		// Host matches count for less than title matches.
		best = math.Max(best, scoreText(query, host)*0.8)
	}

	if best == 0 && strings.Contains(strings.ToLower(link.URL), query) {
		best = ScoreURLMatch
	}

	return best
}

// scoreText scores query against a single lowercased field
func scoreText(query, text string) float64 {
	if text == "" {
		return 0.0
	}

	if query == text {
		return ScoreExactMatch
	}

	if strings.HasPrefix(text, query) {
		return ScorePrefixMatch
	}

	if idx := strings.Index(text, query); idx >= 0 {
		// Earlier substring matches get higher score
		return ScoreSubstringMatch + ScorePositionBonus*(1.0-float64(idx)/float64(len(text)))
	}

	return 0.0
}

// UsageScore converts an open counter into a score bonus.
// Logarithmic so heavy use cannot drown a better lexical match.
func UsageScore(counter int64) float64 {
	if counter <= 0 {
		return 0.0
	}
	return math.Log10(float64(counter)+1) * ScoreUsageWeight * 100
}

// RankCandidates scores every candidate, drops non-matches and sorts by
// total score, descending. Ties keep their input order.
func RankCandidates(query string, candidates []*Candidate, usage func(Link) int64) []*Candidate {
	ranked := make([]*Candidate, 0, len(candidates))

	for _, c := range candidates {
		lexical := ScoreLink(query, c.Link)
		if lexical == 0.0 {
			continue
		}

		c.LexicalScore = lexical
		c.UsageScore = 0.0
		if usage != nil {
			c.UsageScore = UsageScore(usage(c.Link))
		}
		c.TotalScore = c.LexicalScore + c.UsageScore

		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	return ranked
}
