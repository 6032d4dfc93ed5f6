package log

import (
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

func InfoCreateBook(l *zap.Logger, msg string, traceID, isbn string, id ...string) {
	if len(id) == 0 {
		logger.MakeInfo(l, msg,
			zap.String("trace_id", traceID),
			zap.String("isbn", isbn),
			zap.String("action", CreateBook))
		return
	}
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("book_id", id[0]),
		zap.String("isbn", isbn),
		zap.String("action", CreateBook))
}

func ErrorCreateBook(l *zap.Logger, err error, msg string, traceID, isbn string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("isbn", isbn),
		zap.Error(err),
		zap.String("action", CreateBook))
}

func InfoCreateMember(l *zap.Logger, msg string, traceID, memberCode string, id ...string) {
	if len(id) == 0 {
		logger.MakeInfo(l, msg,
			zap.String("trace_id", traceID),
			zap.String("member_code", memberCode),
			zap.String("action", CreateMember))
		return
	}
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("member_id", id[0]),
		zap.String("member_code", memberCode),
		zap.String("action", CreateMember))
}

func ErrorCreateMember(l *zap.Logger, err error, msg string, traceID, memberCode string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("member_code", memberCode),
		zap.Error(err),
		zap.String("action", CreateMember))
}

// InfoList and ErrorList serve the read-only list endpoints.
func InfoList(l *zap.Logger, msg string, traceID string, action Action, size int) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int("size", size),
		zap.String("action", action))
}

func ErrorList(l *zap.Logger, err error, msg string, traceID string, action Action) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.Error(err),
		zap.String("action", action))
}
