package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
)

var ListLoansDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_list_loans_duration_ms",
	Help:    "Duration of ListLoans in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ListLoansDuration)
}

func (i *implementation) ListLoans(c *gin.Context) {
	start := time.Now()

	defer func() {
		ListLoansDuration.Observe(float64(time.Since(start).Milliseconds()))
	}()

	ctx, span, traceID := i.startSpan(c, log.ListLoans)
	defer span.End()

	loans, err := i.loansUseCase.ListLoans(ctx)
	if log.ErrorList(i.logger, err, "Can not list loans", traceID, log.ListLoans) {
		i.abortWithError(c, span, err)
		return
	}

	log.InfoList(i.logger, "Listed loans", traceID, log.ListLoans, len(loans))
	c.JSON(http.StatusOK, lo.Map(loans, toLoanResponse))
}
