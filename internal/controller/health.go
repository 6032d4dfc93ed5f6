package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/log"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

func (i *implementation) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Readyz reports whether the database pool answers a ping.
func (i *implementation) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := i.pinger.Ping(ctx); logger.CheckError(err, i.logger, "Database is not ready",
		zap.Error(err), zap.String("action", log.Readiness)) {
		c.JSON(http.StatusServiceUnavailable, errorBody(CodeInternal, "database unavailable"))
		return
	}

	c.String(http.StatusOK, "ready")
}
