package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
)

var ListBooksDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_list_books_duration_ms",
	Help:    "Duration of ListBooks in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ListBooksDuration)
}

func (i *implementation) ListBooks(c *gin.Context) {
	start := time.Now()

	defer func() {
		ListBooksDuration.Observe(float64(time.Since(start).Milliseconds()))
	}()

	ctx, span, traceID := i.startSpan(c, log.ListBooks)
	defer span.End()

	books, err := i.booksUseCase.ListBooks(ctx)
	if log.ErrorList(i.logger, err, "Can not list books", traceID, log.ListBooks) {
		i.abortWithError(c, span, err)
		return
	}

	log.InfoList(i.logger, "Listed books", traceID, log.ListBooks, len(books))
	c.JSON(http.StatusOK, lo.Map(books, toBookResponse))
}
