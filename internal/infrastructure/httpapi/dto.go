package httpapi

import "time"

type registerRequest struct {
	Email     string   `json:"email" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Password  string   `json:"password" binding:"required"`
	Interests []string `json:"interests"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string   `json:"token"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

type interestsRequest struct {
	Interests []string `json:"interests" binding:"required"`
}

type analysisResponse struct {
	Department       string   `json:"department"`
	ExecutiveSummary string   `json:"executive_summary"`
	SuggestedAction  string   `json:"suggested_action"`
	RelevanceScore   int      `json:"relevance_score"`
	Topics           []string `json:"topics"`
	Confidence       float64  `json:"confidence"`
}

type articleResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	URL         string           `json:"url"`
	Source      string           `json:"source"`
	PublishedAt time.Time        `json:"published_at"`
	Recommended bool             `json:"recommended"`
	Analysis    analysisResponse `json:"analysis"`
}

type articleListResponse struct {
	Articles []articleResponse `json:"articles"`
	Total    int               `json:"total"`
}

type metricResponse struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	MeanScore  float64 `json:"mean_score"`
}

type scanRequest struct {
	Web         bool     `json:"web"`
	RSS         bool     `json:"rss"`
	Departments []string `json:"departments"`
}

type scanResponse struct {
	New      int            `json:"new"`
	Outcomes map[string]int `json:"outcomes"`
}

type digestRequest struct {
	Recipients []string `json:"recipients"`
	ArticleIDs []string `json:"article_ids" binding:"required"`
}

type digestResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
