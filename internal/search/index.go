package search

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
)

const (
	// MaxResults caps the number of results returned per query.
	MaxResults = 30

	// MinTokenLength is the shortest query token that participates in
	// matching; shorter tokens are dropped before the index is consulted.
	MinTokenLength = 2

	// Fuzziness is the edit distance tolerated per matched term.
	Fuzziness = 1
)

// fieldBoosts weights the searchable fields. Titles dominate, body text
// contributes, questions act as a tie-breaker.
var fieldBoosts = map[string]float64{
	"title":          0.25,
	"sectionTitle":   0.25,
	"summary":        0.10,
	"tags":           0.10,
	"body":           0.15,
	"sectionContent": 0.10,
	"questions":      0.05,
}

// Result is one ranked search hit. Score is bleve's relevance score;
// results are returned best-first.
type Result struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}

// Index is a read-only fuzzy index over an expanded entry set. Build it once
// per snapshot; queries are safe for concurrent use.
type Index struct {
	idx     bleve.Index
	entries []Entry
}

// NewIndex builds an in-memory fuzzy index over the given entries.
func NewIndex(entries []Entry) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for i, e := range entries {
		doc := map[string]interface{}{
			"title":          e.Title,
			"sectionTitle":   e.SectionTitle,
			"summary":        e.Summary,
			"tags":           e.Tags,
			"body":           e.Body,
			"sectionContent": e.SectionContent,
			"questions":      e.Questions,
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			idx.Close()
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &Index{idx: idx, entries: entries}, nil
}

// Search runs a weighted fuzzy query and returns up to MaxResults ranked,
// deduplicated results. An empty or all-short-token query returns nil without
// consulting the index.
func (x *Index) Search(query string) ([]Result, error) {
	cleaned := cleanQuery(query)
	if cleaned == "" {
		return nil, nil
	}

	dq := bleve.NewDisjunctionQuery()
	for field, boost := range fieldBoosts {
		mq := bleve.NewMatchQuery(cleaned)
		mq.SetField(field)
		mq.SetBoost(boost)
		mq.SetFuzziness(Fuzziness)
		dq.AddQuery(mq)
	}

	req := bleve.NewSearchRequest(dq)
	req.Size = MaxResults

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	seen := make(map[string]bool, len(res.Hits))
	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(x.entries) {
			continue
		}
		entry := x.entries[i]
		target := entry.Target()
		if seen[target] {
			continue
		}
		seen[target] = true
		results = append(results, Result{Entry: entry, Score: hit.Score})
		if len(results) == MaxResults {
			break
		}
	}
	return results, nil
}

// Size returns the number of indexed entries.
func (x *Index) Size() int {
	return len(x.entries)
}

// Close releases the underlying index.
func (x *Index) Close() error {
	return x.idx.Close()
}

// cleanQuery trims the query and drops tokens shorter than MinTokenLength.
// Returns "" when nothing matchable remains.
func cleanQuery(query string) string {
	var kept []string
	for _, tok := range strings.Fields(query) {
		if utf8.RuneCountInString(tok) >= MinTokenLength {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
