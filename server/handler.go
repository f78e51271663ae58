// Package server exposes the serving variant of the agent over HTTP: a status
// probe and a prompt endpoint that answers either as a single JSON string or
// as a server-sent event stream of content chunks.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	conversationx "github.com/worapol/shop-multiagent/agent/conversation"
)

type Config struct {
	Port         int  `envconfig:"PORT" split_words:"true" default:"4000"`
	Streaming    bool `envconfig:"STREAMING" split_words:"true" default:"true"`
	MaxTurnSteps int  `envconfig:"MAX_TURN_STEPS" split_words:"true" default:"25"`
}

// TurnRunner advances one request/response cycle for a conversation. The
// workflow package provides the production implementation.
type TurnRunner interface {
	Run(ctx context.Context, st *conversationx.State, prompt string, onChunk func(string) error) (string, error)
}

type Handler struct {
	runner    TurnRunner
	sessions  *Sessions
	streaming bool
}

func NewHandler(runner TurnRunner, sessions *Sessions, streaming bool) *Handler {
	return &Handler{runner: runner, sessions: sessions, streaming: streaming}
}

type agentRequest struct {
	Prompt         string `json:"prompt"`
	ConversationID string `json:"conversation_id"`
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Agent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required in the request body"})
		return
	}

	sess := h.sessions.acquire(req.ConversationID)
	defer sess.release()

	c.Header("X-Conversation-Id", sess.state.ID)

	if h.streaming {
		h.streamTurn(c, sess.state, req.Prompt)
		return
	}

	reply, err := h.runner.Run(c.Request.Context(), sess.state, req.Prompt, nil)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", sess.state.ID).Msg("agent turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *Handler) streamTurn(c *gin.Context, st *conversationx.State, prompt string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	wrote := false
	_, err := h.runner.Run(c.Request.Context(), st, prompt, func(chunk string) error {
		wrote = true
		if _, err := c.Writer.WriteString("data: " + displaySafe(chunk) + "\n\n"); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("conversation_id", st.ID).Msg("agent stream failed")
		if !wrote {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.Writer.Flush()
}

// displaySafe rewrites newlines to a display-safe break marker so each SSE
// data line stays a single protocol line.
func displaySafe(chunk string) string {
	return strings.ReplaceAll(chunk, "\n", "<br>")
}
