package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

// Articles above this score are flagged recommended in list responses.
const recommendScore = 75

const listLimit = 50

// ArticleHandler serves read-only views over persisted articles. It never
// talks to the search/RSS/LLM backends.
type ArticleHandler struct {
	store  ports.ArticleStore
	logger *slog.Logger
}

// NewArticleHandler constructs the handler.
func NewArticleHandler(store ports.ArticleStore, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{store: store, logger: logger}
}

// List returns stored articles for the requested time window, restricted
// to the session user's interests unless departments are given explicitly.
func (h *ArticleHandler) List(c *gin.Context) {
	filter := h.buildFilter(c)

	articles, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.error(c, "list articles", err)
		return
	}

	resp := articleListResponse{Articles: make([]articleResponse, 0, len(articles))}
	for _, a := range articles {
		resp.Articles = append(resp.Articles, toArticleResponse(a))
	}
	resp.Total = len(resp.Articles)

	c.JSON(http.StatusOK, resp)
}

// Metrics aggregates count and mean relevance per department for the same
// window the list view uses.
func (h *ArticleHandler) Metrics(c *gin.Context) {
	filter := h.buildFilter(c)
	filter.Limit = 0

	metrics, err := h.store.Metrics(c.Request.Context(), filter)
	if err != nil {
		h.error(c, "load metrics", err)
		return
	}

	resp := make([]metricResponse, 0, len(metrics))
	for _, m := range metrics {
		resp = append(resp, metricResponse{
			Department: string(m.Department),
			Count:      m.Count,
			MeanScore:  m.MeanScore,
		})
	}

	c.JSON(http.StatusOK, gin.H{"metrics": resp})
}

func (h *ArticleHandler) buildFilter(c *gin.Context) ports.ListFilter {
	filter := ports.ListFilter{Limit: listLimit}

	if raw := c.Query("departments"); raw != "" {
		if depts, ok := parseDepartments(strings.Split(raw, ",")); ok {
			filter.Departments = depts
		}
	}
	if len(filter.Departments) == 0 {
		filter.Departments = session(c).Interests
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	switch c.DefaultQuery("window", "today") {
	case "yesterday":
		filter.Since = midnight.AddDate(0, 0, -1)
		filter.Until = midnight
	case "week":
		filter.Since = midnight.AddDate(0, 0, -7)
	default:
		filter.Since = midnight
	}

	return filter
}

func (h *ArticleHandler) error(c *gin.Context, op string, err error) {
	if h.logger != nil {
		h.logger.Error(op, "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func toArticleResponse(a domain.NewsArticle) articleResponse {
	return articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		Recommended: a.Analysis.RelevanceScore > recommendScore,
		Analysis: analysisResponse{
			Department:       string(a.Analysis.Department),
			ExecutiveSummary: a.Analysis.ExecutiveSummary,
			SuggestedAction:  a.Analysis.SuggestedAction,
			RelevanceScore:   a.Analysis.RelevanceScore,
			Topics:           a.Analysis.Topics,
			Confidence:       a.Analysis.Confidence,
		},
	}
}
