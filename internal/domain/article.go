package domain

import "time"

// Department is the closed set of business categories every stored article
// is assigned to.
type Department string

const (
	DeptFinance    Department = "Finance & ROI"
	DeptFoodTech   Department = "FoodTech & Supply Chain"
	DeptTrends     Department = "Trends & Innovation"
	DeptTechnology Department = "Technology & Innovation"
	DeptLegal      Department = "Legal & Regulatory Affairs"
)

// DefaultDepartment is used when neither the source hint nor the model
// produced a recognizable department.
const DefaultDepartment = DeptTrends

// Departments lists all valid departments in display order.
func Departments() []Department {
	return []Department{DeptFinance, DeptFoodTech, DeptTrends, DeptTechnology, DeptLegal}
}

// ValidDepartment reports whether d is one of the known departments.
func ValidDepartment(d Department) bool {
	switch d {
	case DeptFinance, DeptFoodTech, DeptTrends, DeptTechnology, DeptLegal:
		return true
	}
	return false
}

// Candidate is an unprocessed search or feed hit before enrichment.
// Adapters discard hits with an empty title or URL, so downstream code may
// rely on both being set.
type Candidate struct {
	Title      string
	URL        string
	Snippet    string
	SourceName string
	DeptHint   Department
}

// Analysis carries the enrichment result attached to a stored article.
type Analysis struct {
	Department       Department
	ExecutiveSummary string
	SuggestedAction  string
	RelevanceScore   int
	Topics           []string
	Confidence       float64
}

// NewsArticle is the persisted unit of storage. ID is the SHA-1 of the
// canonicalized URL and doubles as the dedup key; PublishedAt is ingestion
// time, not the article's own publish date.
type NewsArticle struct {
	ID          string
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
	Analysis    Analysis
}
