package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"intelhub/internal/usecase"
)

// ScanRunner executes one ingestion run.
type ScanRunner interface {
	Run(ctx context.Context, req usecase.Request) (usecase.Report, error)
}

// DigestSender delivers a selection of stored articles.
type DigestSender interface {
	Send(ctx context.Context, recipients, articleIDs []string) (sent, failed int, err error)
}

// ScanHandler triggers scans and digest deliveries on behalf of the
// session user.
type ScanHandler struct {
	scans  ScanRunner
	digest DigestSender
	logger *slog.Logger
}

// NewScanHandler constructs the handler.
func NewScanHandler(scans ScanRunner, digest DigestSender, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{scans: scans, digest: digest, logger: logger}
}

// Scan runs the pipeline over the requested sources. Both toggles off
// means both on, matching the dashboard default.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan request"})
		return
	}

	var sources []string
	if req.Web && !req.RSS {
		sources = []string{"web"}
	} else if req.RSS && !req.Web {
		sources = []string{"rss"}
	}

	departments, ok := parseDepartments(req.Departments)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department"})
		return
	}

	report, err := h.scans.Run(c.Request.Context(), usecase.Request{
		Sources:     sources,
		Departments: departments,
	})
	if err != nil {
		h.error(c, "run scan", err)
		return
	}

	outcomes := make(map[string]int, len(report.Outcomes))
	for outcome, count := range report.Outcomes {
		outcomes[string(outcome)] = count
	}

	c.JSON(http.StatusOK, scanResponse{New: report.New, Outcomes: outcomes})
}

// Digest emails the selected articles. With no explicit recipients the
// digest goes to the session user's own address.
func (h *ScanHandler) Digest(c *gin.Context) {
	var req digestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_ids are required"})
		return
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		recipients = []string{session(c).Email}
	}

	sent, failed, err := h.digest.Send(c.Request.Context(), recipients, req.ArticleIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, digestResponse{Sent: sent, Failed: failed})
}

func (h *ScanHandler) error(c *gin.Context, op string, err error) {
	if h.logger != nil {
		h.logger.Error(op, "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
