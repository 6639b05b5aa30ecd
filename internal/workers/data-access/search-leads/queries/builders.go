package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// LeadSearch describes one search request against the leads index.
type LeadSearch struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	LeadID     string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery builds an Elasticsearch search request for the given query type.
func BuildQuery(ls LeadSearch) (*esapi.SearchRequest, error) {
	if ls.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch ls.QueryType {
	case "lead_search":
		queryBody = buildLeadSearchQuery(ls)
	case "similar_leads":
		queryBody = buildSimilarLeadsQuery(ls)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, ls.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{ls.Index},
		Body:  strings.NewReader(string(body)),
		From:  &ls.Pagination.From,
		Size:  &ls.Pagination.Size,
	}

	return &req, nil
}

// buildLeadSearchQuery assembles a bool query from the optional filters:
// free-text keywords, industry, status, location, and a score range.
func buildLeadSearchQuery(ls LeadSearch) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := ls.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"company^3", "notes^2", "company_description", "industry"},
				"type":   "best_fields",
			},
		})
	}

	if industry, ok := ls.Filters["industry"].(string); ok && industry != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"industry": industry},
		})
	}

	if status, ok := ls.Filters["status"].(string); ok && status != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"status": status},
		})
	}

	if location, ok := ls.Filters["location"].(string); ok && location != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"location": location},
		})
	}

	if scoreRange, ok := ls.Filters["scoreRange"].(map[string]interface{}); ok {
		rangeClause := map[string]interface{}{}
		if min, exists := toFloat(scoreRange["min"]); exists {
			rangeClause["gte"] = min
		}
		if max, exists := toFloat(scoreRange["max"]); exists {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"score": rangeClause},
			})
		}
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := ls.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "score":
			query["sort"] = []map[string]interface{}{{"score": "desc"}}
		case "company":
			query["sort"] = []map[string]interface{}{{"company": "asc"}}
		}
	}

	return query
}

// buildSimilarLeadsQuery finds leads that read like a given one. Useful for
// pulling comparable accounts when reviewing a hot lead.
func buildSimilarLeadsQuery(ls LeadSearch) map[string]interface{} {
	if ls.LeadID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"company", "notes", "company_description", "industry"},
				"like": []map[string]interface{}{
					{"_index": ls.Index, "_id": ls.LeadID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
