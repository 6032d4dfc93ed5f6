package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

var ReturnDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_return_duration_ms",
	Help:    "Duration of Return in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ReturnDuration)
}

func (i *implementation) Return(c *gin.Context) {
	start := time.Now()

	var err error
	defer func() {
		ReturnDuration.Observe(float64(time.Since(start).Milliseconds()))
		LoanOutcomes.WithLabelValues(log.Return, outcome(err)).Inc()
	}()

	ctx, span, traceID := i.startSpan(c, log.Return)
	defer span.End()

	var req returnRequest
	if err = c.ShouldBindJSON(&req); err == nil {
		err = req.Validate()
	}
	if log.ErrorReturn(i.logger, err, "Got invalid request", traceID, req.LoanID) {
		err = fmt.Errorf("%w: %w", entity.ErrValidation, err)
		i.abortWithError(c, span, err)
		return
	}
	span.SetAttributes(attribute.String("loan_id", req.LoanID))

	_, err = i.loansUseCase.Return(ctx, req.LoanID)
	if log.ErrorReturn(i.logger, err, "Can not return loan", traceID, req.LoanID) {
		i.abortWithError(c, span, err)
		return
	}

	log.InfoReturn(i.logger, "Loan was returned", traceID, req.LoanID)
	c.JSON(http.StatusOK, okResponse{OK: true})
}
