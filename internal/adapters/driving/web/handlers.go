package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/ports/driving"
	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// Fixed replies. Nothing else is ever returned to clients.
const (
	msgUploaded      = "PDF processed successfully."
	msgUploadFailed  = "Upload failed. Please try again."
	msgProcessFailed = "Sorry, I couldn't process that PDF. Please try again."
	msgChatFailed    = "Sorry, something went wrong. Please try again."
	msgTooLarge      = "The file is too large. The limit is 30 MB."
	msgServerError   = "Internal server error."
)

// Handler holds the route handlers.
type Handler struct {
	assistant driving.AssistantService
	uploadDir string
}

// NewHandler creates handlers that store uploads in uploadDir.
func NewHandler(assistant driving.AssistantService, uploadDir string) *Handler {
	return &Handler{assistant: assistant, uploadDir: uploadDir}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Upload stores a PDF under a random name and makes it the session's
// active document.
func (h *Handler) Upload(c *gin.Context) {
	reqID := c.GetString(ctxRequestID)
	start := time.Now()

	header, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgTooLarge})
			return
		}
		logger.Warn("upload without file", "request_id", reqID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadFailed})
		return
	}
	if header.Filename == "" || header.Size == 0 {
		logger.Warn("empty upload", "request_id", reqID)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadFailed})
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		logger.Warn("rejected non-PDF upload", "request_id", reqID, "filename", header.Filename)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadFailed})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0750); err != nil {
		h.uploadFailed(c, reqID, err)
		return
	}
	path := filepath.Join(h.uploadDir, strings.ReplaceAll(uuid.NewString(), "-", "")+".pdf")
	if err := c.SaveUploadedFile(header, path); err != nil {
		h.uploadFailed(c, reqID, err)
		return
	}
	logger.Info("saved upload",
		"request_id", reqID,
		"path", path,
		"original", header.Filename,
		"bytes", header.Size)

	result, err := h.assistant.ProcessDocument(c.Request.Context(), c.GetString(ctxSessionID), path)
	if err != nil {
		h.uploadFailed(c, reqID, err)
		return
	}

	logger.Info("upload processed",
		"request_id", reqID,
		"document", result.DocumentID.Short(),
		"status", result.Status,
		"elapsed", time.Since(start).Round(time.Millisecond))
	c.JSON(http.StatusOK, gin.H{"message": msgUploaded})
}

func (h *Handler) uploadFailed(c *gin.Context, reqID string, err error) {
	logger.Error("upload processing failed", "request_id", reqID, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgProcessFailed})
}

type chatRequest struct {
	Message string `json:"message"`
}

// chatReply fills every key older clients read the answer from.
func chatReply(msg string) gin.H {
	return gin.H{"answer": msg, "response": msg, "message": msg, "bot_response": msg}
}

// Chat answers a question. Malformed JSON counts as an empty message.
func (h *Handler) Chat(c *gin.Context) {
	reqID := c.GetString(ctxRequestID)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("unreadable chat body", "request_id", reqID, "error", err)
	}
	question := strings.TrimSpace(req.Message)
	if question == "" {
		c.JSON(http.StatusOK, chatReply(domain.MessageEmptyQuestion))
		return
	}

	logger.Info("chat question", "request_id", reqID, "length", len(question))
	answer, err := h.assistant.Ask(c.Request.Context(), c.GetString(ctxSessionID), question)
	if err != nil {
		logger.Error("chat failed", "request_id", reqID, "error", err)
		c.JSON(http.StatusInternalServerError, chatReply(msgChatFailed))
		return
	}
	c.JSON(http.StatusOK, chatReply(answer))
}

// History returns the session's conversation log.
func (h *Handler) History(c *gin.Context) {
	history := h.assistant.History(c.GetString(ctxSessionID))
	if history == nil {
		history = []domain.Exchange{}
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// EndSession forgets the session and expires its cookie.
func (h *Handler) EndSession(c *gin.Context) {
	h.assistant.EndSession(c.GetString(ctxSessionID))
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
