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

var CreateBookDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_create_book_duration_ms",
	Help:    "Duration of CreateBook in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(CreateBookDuration)
}

func (i *implementation) CreateBook(c *gin.Context) {
	start := time.Now()

	defer func() {
		CreateBookDuration.Observe(float64(time.Since(start).Milliseconds()))
	}()

	ctx, span, traceID := i.startSpan(c, log.CreateBook)
	defer span.End()

	var req createBookRequest
	if err := c.ShouldBindJSON(&req); log.ErrorCreateBook(i.logger, err, "Got invalid request", traceID, req.ISBN) {
		i.abortWithError(c, span, fmt.Errorf("%w: %w", entity.ErrValidation, err))
		return
	}
	span.SetAttributes(attribute.String("isbn", req.ISBN))

	book, err := i.booksUseCase.CreateBook(ctx, req.toEntity())
	if log.ErrorCreateBook(i.logger, err, "Can not create book", traceID, req.ISBN) {
		i.abortWithError(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("book_id", book.ID))
	log.InfoCreateBook(i.logger, "Book was added", traceID, req.ISBN, book.ID)
	c.JSON(http.StatusCreated, createBookResponse{BookID: book.ID})
}
