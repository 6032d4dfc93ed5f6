package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

var BorrowDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_borrow_duration_ms",
	Help:    "Duration of Borrow in ms",
	Buckets: prometheus.DefBuckets,
})

// LoanOutcomes counts borrow and return attempts by result.
var LoanOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "library_loan_operations_total",
	Help: "Borrow and return attempts partitioned by outcome",
}, []string{"operation", "outcome"})

func init() {
	prometheus.MustRegister(BorrowDuration, LoanOutcomes)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entity.ErrValidation):
		return "invalid"
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrNoCopiesAvailable):
		return "unavailable"
	case errors.Is(err, entity.ErrAlreadyReturned):
		return "already_returned"
	default:
		return "error"
	}
}

func (i *implementation) Borrow(c *gin.Context) {
	start := time.Now()

	var err error
	defer func() {
		BorrowDuration.Observe(float64(time.Since(start).Milliseconds()))
		LoanOutcomes.WithLabelValues(log.Borrow, outcome(err)).Inc()
	}()

	ctx, span, traceID := i.startSpan(c, log.Borrow)
	defer span.End()

	var req borrowRequest
	if err = c.ShouldBindJSON(&req); err == nil {
		err = req.Validate()
	}
	if log.ErrorBorrow(i.logger, err, "Got invalid request", traceID, req.BookID, req.MemberID) {
		err = fmt.Errorf("%w: %w", entity.ErrValidation, err)
		i.abortWithError(c, span, err)
		return
	}
	span.SetAttributes(
		attribute.String("book_id", req.BookID),
		attribute.String("member_id", req.MemberID),
	)

	loan, err := i.loansUseCase.Borrow(ctx, req.BookID, req.MemberID, req.days())
	if log.ErrorBorrow(i.logger, err, "Can not borrow book", traceID, req.BookID, req.MemberID) {
		i.abortWithError(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("loan_id", loan.ID))
	log.InfoBorrow(i.logger, "Book was borrowed", traceID, req.BookID, req.MemberID, loan.ID)
	c.JSON(http.StatusOK, borrowResponse{OK: true, LoanID: loan.ID, DueDate: loan.DueDate})
}
