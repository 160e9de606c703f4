package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"intelhub/internal/ports"
)

// Tokens combines minting and verification for the router wiring.
type Tokens interface {
	TokenMinter
	TokenParser
}

// Deps wires every collaborator the API needs.
type Deps struct {
	Users          ports.UserStore
	Articles       ports.ArticleStore
	Tokens         Tokens
	Scans          ScanRunner
	Digest         DigestSender
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) == 1 && deps.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	authHandler := NewAuthHandler(deps.Users, deps.Tokens, deps.Logger)
	articleHandler := NewArticleHandler(deps.Articles, deps.Logger)
	scanHandler := NewScanHandler(deps.Scans, deps.Digest, deps.Logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	authed := r.Group("/")
	authed.Use(authMiddleware(deps.Tokens, deps.Users))
	{
		authed.GET("/articles", articleHandler.List)
		authed.GET("/articles/metrics", articleHandler.Metrics)
		authed.PUT("/me/interests", authHandler.UpdateInterests)
		authed.POST("/scan", scanHandler.Scan)
		authed.POST("/digest", scanHandler.Digest)
	}

	return r
}
