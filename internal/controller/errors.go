package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeNoCopiesAvailable = "NO_COPIES_AVAILABLE"
	CodeAlreadyReturned   = "ALREADY_RETURNED"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

func (i *implementation) convertErr(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest, errorBody(CodeInvalidArgument, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, errorBody(CodeNotFound, err.Error())
	case errors.Is(err, entity.ErrNoCopiesAvailable):
		return http.StatusConflict, errorBody(CodeNoCopiesAvailable, err.Error())
	case errors.Is(err, entity.ErrAlreadyReturned):
		return http.StatusConflict, errorBody(CodeAlreadyReturned, err.Error())
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict, errorBody(CodeConflict, err.Error())
	case errors.Is(err, entity.ErrInventoryInconsistent):
		if i.logger != nil {
			i.logger.Error("inventory invariant broken", zap.Error(err))
		}
		return http.StatusInternalServerError, errorBody(CodeInternal, entity.ErrStorage.Error())
	default:
		if i.logger != nil {
			i.logger.Error("storage failure", zap.Error(err))
		}
		return http.StatusInternalServerError, errorBody(CodeInternal, entity.ErrStorage.Error())
	}
}

func (i *implementation) abortWithError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	status, body := i.convertErr(err)
	c.AbortWithStatusJSON(status, body)
}
