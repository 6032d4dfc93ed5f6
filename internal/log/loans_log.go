package log

import (
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

func InfoBorrow(l *zap.Logger, msg string, traceID, bookID, memberID string, loanID ...string) {
	if len(loanID) == 0 {
		logger.MakeInfo(l, msg,
			zap.String("trace_id", traceID),
			zap.String("book_id", bookID),
			zap.String("member_id", memberID),
			zap.String("action", Borrow))
		return
	}
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("loan_id", loanID[0]),
		zap.String("book_id", bookID),
		zap.String("member_id", memberID),
		zap.String("action", Borrow))
}

func ErrorBorrow(l *zap.Logger, err error, msg string, traceID, bookID, memberID string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("book_id", bookID),
		zap.String("member_id", memberID),
		zap.Error(err),
		zap.String("action", Borrow))
}

func InfoReturn(l *zap.Logger, msg string, traceID, loanID string) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("loan_id", loanID),
		zap.String("action", Return))
}

func ErrorReturn(l *zap.Logger, err error, msg string, traceID, loanID string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("loan_id", loanID),
		zap.Error(err),
		zap.String("action", Return))
}
