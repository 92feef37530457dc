// Package handler provides HTTP handlers for the check-in pages.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	checkinModel "github.com/festy23/event_checkin/internal/checkin/model"
	"github.com/festy23/event_checkin/internal/checkin/service"
	"github.com/festy23/event_checkin/internal/web"
)

// Handler handles HTTP requests for check-in pages.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new check-in handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Index handles GET / by redirecting to the check-in page.
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/checkin")
}

// ShowCheckin handles GET /checkin?q=&room= request.
func (h *Handler) ShowCheckin(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("q"), c.Query("room"))
	if err != nil {
		h.logger.Errorw("error searching students", "error", err)
		web.InternalError(c)
		return
	}

	resp.Flash = web.PopFlash(c)
	web.Render(c, http.StatusOK, "checkin.html", resp)
}

// SubmitCheckin handles POST /checkin request. It always redirects back to
// the check-in page unless the store fails.
func (h *Handler) SubmitCheckin(c *gin.Context) {
	var req checkinModel.CheckinRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debugw("unreadable check-in form", "error", err)
	}

	result, err := h.service.Apply(c.Request.Context(), req)
	switch {
	case errors.Is(err, checkinModel.ErrNoTarget):
		web.SetFlash(c, "Nothing changed: enter a numeric team or student id.")
	case err != nil:
		h.logger.Errorw("error applying check-in", "error", err, "team_id", req.TeamID, "student_id", req.StudentID)
		web.InternalError(c)
		return
	default:
		web.SetFlash(c, flashMessage(result))
	}

	c.Redirect(http.StatusFound, checkinURL(req.Query, req.Room))
}

// ListStudents handles GET /students?status=&room= request.
func (h *Handler) ListStudents(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), c.Query("status"), c.Query("room"))
	if err != nil {
		h.logger.Errorw("error listing students", "error", err)
		web.InternalError(c)
		return
	}

	web.Render(c, http.StatusOK, "students.html", resp)
}

// checkinURL returns /checkin carrying the non-empty search state.
func checkinURL(query, room string) string {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if room != "" {
		values.Set("room", room)
	}
	if len(values) == 0 {
		return "/checkin"
	}
	return "/checkin?" + values.Encode()
}

func flashMessage(result *checkinModel.CheckinResult) string {
	verb := "Checked in"
	if result.Action == checkinModel.ActionCheckout {
		verb = "Checked out"
	}

	if result.Updated == 0 {
		return fmt.Sprintf("No change for %s %d.", result.Scope, result.ID)
	}

	noun := "students"
	if result.Updated == 1 {
		noun = "student"
	}
	if result.Scope == checkinModel.ScopeTeam {
		return fmt.Sprintf("%s %d %s of team %d.", verb, result.Updated, noun, result.ID)
	}
	return fmt.Sprintf("%s student %d.", verb, result.ID)
}
