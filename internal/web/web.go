// Package web renders the HTML pages and carries flash messages between requests.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// timeLayout is how check-in times are shown on every page.
const timeLayout = "2006-01-02 15:04:05"

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"formatTime": formatTime,
		"percent":    percent,
	}).ParseFS(templateFS, "templates/*.html"),
)

// Templates returns the parsed page templates.
func Templates() *template.Template {
	return templates
}

// ErrorResponse represents an error page or JSON error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody holds the error code and message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Render writes data as the named HTML page, or as JSON when the client asks
// for application/json.
func Render(c *gin.Context, status int, name string, data any) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(status, data)
		return
	}
	c.Render(status, render.HTML{Template: templates, Name: name, Data: data})
}

// RenderError writes an error page. Clients that do not explicitly accept
// HTML get the JSON error body.
func RenderError(c *gin.Context, status int, code, message string) {
	resp := ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Render(status, render.HTML{Template: templates, Name: "error.html", Data: resp})
		return
	}
	c.JSON(status, resp)
}

// InternalError writes the generic 500 page.
func InternalError(c *gin.Context) {
	RenderError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func percent(part, total int64) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}
