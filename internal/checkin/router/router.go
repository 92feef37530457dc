// Package router provides check-in module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/event_checkin/internal/checkin/handler"
	"github.com/festy23/event_checkin/internal/checkin/repository"
	"github.com/festy23/event_checkin/internal/checkin/service"
	appConfig "github.com/festy23/event_checkin/internal/config"
	"github.com/festy23/event_checkin/internal/metrics"
)

// RegisterRoutes registers check-in module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	roster appConfig.RosterConfig,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
	opts ...service.Option,
) {
	repo := repository.New(db, logger)
	svc := service.New(repo, roster, m, logger, opts...)
	h := handler.New(svc, logger)

	r.GET("/", h.Index)
	r.GET("/checkin", h.ShowCheckin)
	r.POST("/checkin", h.SubmitCheckin)
	r.GET("/students", h.ListStudents)
}
