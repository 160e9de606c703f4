package email

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"time"

	"intelhub/internal/config"
	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

// Department accent colors carried into the digest markup.
var deptColors = map[domain.Department]string{
	domain.DeptFinance:    "#FFD700",
	domain.DeptFoodTech:   "#00C2FF",
	domain.DeptTrends:     "#BD00FF",
	domain.DeptTechnology: "#00E676",
	domain.DeptLegal:      "#FF5252",
}

// Notifier sends HTML digests of stored articles over SMTP. It only reads
// persisted records and never touches the ingestion backends.
type Notifier struct {
	host     string
	port     int
	email    string
	password string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers SMTP credentials from configuration.
func NewNotifier(cfg config.SMTPConfig) *Notifier {
	return &Notifier{
		host:     cfg.Host,
		port:     cfg.Port,
		email:    cfg.Email,
		password: cfg.Password,
	}
}

// SendDigest delivers the article selection to one recipient.
func (n *Notifier) SendDigest(_ context.Context, recipient string, articles []domain.NewsArticle) error {
	if len(articles) == 0 {
		return fmt.Errorf("empty digest")
	}
	if n.email == "" || n.password == "" {
		return fmt.Errorf("smtp notifier misconfigured")
	}

	subject := digestSubject(articles, time.Now())
	body := digestHTML(articles, time.Now())

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.email)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.email, n.password, n.host)
	if err := smtp.SendMail(addr, auth, n.email, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send digest to %s: %w", recipient, err)
	}

	return nil
}

func digestSubject(articles []domain.NewsArticle, now time.Time) string {
	depts := map[domain.Department]struct{}{}
	for _, a := range articles {
		depts[a.Analysis.Department] = struct{}{}
	}

	category := "Executive Summary"
	if len(depts) == 1 {
		category = string(articles[0].Analysis.Department)
	}

	return fmt.Sprintf("Intelligence Daily: %s - %s", category, now.Format("2 Jan"))
}

func digestHTML(articles []domain.NewsArticle, now time.Time) string {
	var rows strings.Builder
	for _, a := range articles {
		color, ok := deptColors[a.Analysis.Department]
		if !ok {
			color = "#333"
		}
		fmt.Fprintf(&rows, `
        <tr>
            <td style="padding:15px; border-bottom:1px solid #eee;">
                <span style="color:%s; font-size:10px; font-weight:bold;">%s</span>
                <h3 style="margin:5px 0; color:#333;">%s</h3>
                <p style="color:#666; font-size:14px;">%s</p>
                <a href="%s" style="color:#00c1a9; text-decoration:none; font-size:12px;">Read source</a>
            </td>
        </tr>`,
			color,
			strings.ToUpper(string(a.Analysis.Department)),
			html.EscapeString(a.Title),
			html.EscapeString(a.Analysis.ExecutiveSummary),
			a.URL,
		)
	}

	return fmt.Sprintf(`
    <div style="font-family:Helvetica, sans-serif; max-width:600px; margin:0 auto; border:1px solid #e0e0e0;">
        <div style="background:#161b22; padding:20px; text-align:center;">
            <h2 style="color:#00c1a9; margin:0;">INTELLIGENCE HUB</h2>
            <p style="color:#888; font-size:12px;">%s</p>
        </div>
        <div style="padding:20px;">
            <p>Hello, here is your news selection:</p>
            <table style="width:100%%; border-collapse:collapse;">%s</table>
        </div>
    </div>`, now.Format("2 Jan"), rows.String())
}
