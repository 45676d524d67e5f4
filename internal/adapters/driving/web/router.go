package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
)

//go:embed static/index.html
var static embed.FS

// RouterConfig carries the settings the routes depend on.
type RouterConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(assistant driving.AssistantService, cfg RouterConfig) *gin.Engine {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = domain.MaxUploadBytes
	}
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(RequestID(), Logger(), Recovery())

	h := NewHandler(assistant, cfg.UploadDir)

	r.GET("/", IssueSession(), index)
	r.GET("/health", h.Health)

	api := r.Group("/", Session())
	api.POST("/upload", MaxBodySize(cfg.MaxUploadBytes), h.Upload)
	api.POST("/chat", h.Chat)
	api.GET("/history", h.History)
	api.DELETE("/session", h.EndSession)

	return r
}

func index(c *gin.Context) {
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
