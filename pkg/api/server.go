package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/logmask/pkg/config"
	"github.com/codeready-toolchain/logmask/pkg/masking"
	"github.com/codeready-toolchain/logmask/pkg/version"
)

// Server exposes the masking engine over HTTP.
type Server struct {
	cfg    *config.Config
	masker *masking.Service
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, masker *masking.Service) *Server {
	return &Server{
		cfg:    cfg,
		masker: masker,
	}
}

// Router builds the gin engine with all routes and middleware registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.masker))

	r.GET("/health", s.Health)

	mask := r.Group("/mask")
	{
		mask.POST("/string", s.MaskString)
		mask.POST("/regex", s.MaskRegex)
		mask.POST("/json", s.MaskJSON)
	}

	return r
}

// Health returns liveness plus the size of each configured rule section.
func (s *Server) Health(c *gin.Context) {
	stats := s.cfg.Stats()
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Version:    version.Full(),
		StringKeys: stats.StringKeys,
		RegexKeys:  stats.RegexKeys,
		JSONKeys:   stats.JSONKeys,
	})
}
