package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaskString applies the string strategy to the request input.
func (s *Server) MaskString(c *gin.Context) {
	var req MaskStringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MaskResponse{Output: s.masker.MaskString(req.Input, req.Key)})
}

// MaskRegex applies the regex strategy to the request input.
func (s *Server) MaskRegex(c *gin.Context) {
	var req MaskRegexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MaskResponse{Output: s.masker.MaskRegex(req.Input, req.Key, req.Name)})
}

// MaskJSON applies the json strategy to the request input, a serialized
// JSON document.
func (s *Server) MaskJSON(c *gin.Context) {
	var req MaskJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MaskResponse{Output: s.masker.MaskJSON(req.Input, req.Key)})
}
