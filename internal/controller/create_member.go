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

var CreateMemberDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    "library_create_member_duration_ms",
	Help:    "Duration of CreateMember in ms",
	Buckets: prometheus.DefBuckets,
})

func init() {
	prometheus.MustRegister(CreateMemberDuration)
}

func (i *implementation) CreateMember(c *gin.Context) {
	start := time.Now()

	defer func() {
		CreateMemberDuration.Observe(float64(time.Since(start).Milliseconds()))
	}()

	ctx, span, traceID := i.startSpan(c, log.CreateMember)
	defer span.End()

	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); log.ErrorCreateMember(i.logger, err, "Got invalid request", traceID, req.MemberCode) {
		i.abortWithError(c, span, fmt.Errorf("%w: %w", entity.ErrValidation, err))
		return
	}
	span.SetAttributes(attribute.String("member_code", req.MemberCode))

	member, err := i.membersUseCase.CreateMember(ctx, req.toEntity())
	if log.ErrorCreateMember(i.logger, err, "Can not register member", traceID, req.MemberCode) {
		i.abortWithError(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("member_id", member.ID))
	log.InfoCreateMember(i.logger, "Member was registered", traceID, req.MemberCode, member.ID)
	c.JSON(http.StatusCreated, createMemberResponse{MemberID: member.ID})
}
