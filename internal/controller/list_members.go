package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
)

var ListMembersDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_list_members_duration_ms",
	Help:    "Duration of ListMembers in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(ListMembersDuration)
}

func (i *implementation) ListMembers(c *gin.Context) {
	start := time.Now()

	defer func() {
		ListMembersDuration.Observe(float64(time.Since(start).Milliseconds()))
	}()

	ctx, span, traceID := i.startSpan(c, log.ListMembers)
	defer span.End()

	members, err := i.membersUseCase.ListMembers(ctx)
	if log.ErrorList(i.logger, err, "Can not list members", traceID, log.ListMembers) {
		i.abortWithError(c, span, err)
		return
	}

	log.InfoList(i.logger, "Listed members", traceID, log.ListMembers, len(members))
	c.JSON(http.StatusOK, lo.Map(members, toMemberResponse))
}
