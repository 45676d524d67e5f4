package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/logger"
)

// Context keys set by middleware.
const (
	ctxRequestID = "request_id"
	ctxSessionID = "session_id"
)

// Session transport.
const (
	SessionCookie = "pda_session"
	SessionHeader = "X-Session-ID"
	RequestHeader = "X-Request-ID"

	// DefaultSession serves callers that present neither header nor
	// cookie, so plain API clients keep one document across requests.
	DefaultSession = "default"
)

// RequestID tags each request with a short ID, reusing X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestHeader)
		if id == "" {
			id = uuid.NewString()[:8]
		}
		c.Set(ctxRequestID, id)
		c.Writer.Header().Set(RequestHeader, id)
		c.Next()
	}
}

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).Round(time.Millisecond),
			"remote", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("http request", args...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("http request", args...)
		default:
			logger.Info("http request", args...)
		}
	}
}

// Recovery turns panics into the generic 500 reply of the route.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic in handler",
			"request_id", c.GetString(ctxRequestID),
			"path", c.Request.URL.Path,
			"panic", recovered)
		if c.Request.URL.Path == "/chat" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, chatReply(msgChatFailed))
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
	})
}

// MaxBodySize rejects bodies over limit with 413. Declared lengths are
// refused up front; streamed bodies are cut off by http.MaxBytesReader.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgTooLarge})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// isTooLarge reports whether err came from a MaxBytesReader.
func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// Session resolves the caller's session ID. Header wins over cookie. A
// caller with neither shares DefaultSession; a malformed ID is replaced
// with a fresh one and returned as a cookie.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		switch {
		case id == "":
			id = DefaultSession
		case !validSessionID(id):
			id = issueSession(c)
		}
		c.Set(ctxSessionID, id)
		c.Next()
	}
}

// IssueSession gives browsers loading the chat page their own session.
func IssueSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(SessionCookie); err != nil || !validSessionID(cookie) {
			issueSession(c)
		}
		c.Next()
	}
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func issueSession(c *gin.Context) string {
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	return id
}
