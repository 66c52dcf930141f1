// Package server exposes the conversation engine over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/engine/model"
	"github.com/aarush-luthra/smart-customer-support-chatbot/internal/support/autocomplete"
)

// Server bundles the engine with the transport-only collaborators: the
// autocomplete vocabulary and the suggestion cap.
type Server struct {
	engine         *engine.Engine
	completions    *autocomplete.Trie
	maxSuggestions int
}

func New(eng *engine.Engine, completions *autocomplete.Trie, cfg model.ServerConfig) *Server {
	return &Server{
		engine:         eng,
		completions:    completions,
		maxSuggestions: cfg.MaxSuggestions,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.POST("/message", s.postMessage)
		api.POST("/reset", s.postReset)
		api.GET("/suggestions", s.getSuggestions)
		api.GET("/stats", s.getStats)
	}
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type messageResponse struct {
	SessionID string `json:"session_id"`
	model.Reply
}

func (s *Server) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	// A client without a session yet gets one minted here; it carries the
	// conversation across subsequent calls.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply := s.engine.Handle(c.Request.Context(), req.SessionID, req.Message)
	c.JSON(http.StatusOK, messageResponse{SessionID: req.SessionID, Reply: reply})
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) postReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	reply := s.engine.Reset(c.Request.Context(), req.SessionID)
	c.JSON(http.StatusOK, messageResponse{SessionID: req.SessionID, Reply: reply})
}

func (s *Server) getSuggestions(c *gin.Context) {
	prefix := c.Query("prefix")
	words := s.completions.Suggest(prefix, s.maxSuggestions)
	if words == nil {
		words = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"prefix":      prefix,
		"suggestions": words,
		"count":       len(words),
	})
}

type statsResponse struct {
	model.Stats
	CompletionWords int `json:"completion_words"`
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, statsResponse{
		Stats:           s.engine.Stats(),
		CompletionWords: s.completions.Len(),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
