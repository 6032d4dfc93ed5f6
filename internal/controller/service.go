package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/project/lending/internal/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type (
	BooksUseCase interface {
		ListBooks(ctx context.Context) ([]entity.Book, error)
		CreateBook(ctx context.Context, book entity.NewBook) (entity.Book, error)
	}

	MembersUseCase interface {
		ListMembers(ctx context.Context) ([]entity.Member, error)
		CreateMember(ctx context.Context, member entity.Member) (entity.Member, error)
	}

	LoansUseCase interface {
		Borrow(ctx context.Context, bookID, memberID string, days int) (entity.Loan, error)
		Return(ctx context.Context, loanID string) (entity.Loan, error)
		ListLoans(ctx context.Context) ([]entity.LoanView, error)
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}
)

const tracerName = "github.com/project/lending/internal/controller"

type implementation struct {
	logger         *zap.Logger
	booksUseCase   BooksUseCase
	membersUseCase MembersUseCase
	loansUseCase   LoansUseCase
	pinger         Pinger
	tracer         trace.Tracer
}

func New(
	logger *zap.Logger,
	booksUseCase BooksUseCase,
	membersUseCase MembersUseCase,
	loansUseCase LoansUseCase,
	pinger Pinger,
) *implementation {
	return &implementation{
		logger:         logger,
		booksUseCase:   booksUseCase,
		membersUseCase: membersUseCase,
		loansUseCase:   loansUseCase,
		pinger:         pinger,
		tracer:         otel.Tracer(tracerName),
	}
}

func (i *implementation) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", i.Healthz)
	r.GET("/readyz", i.Readyz)

	api := r.Group("/api")
	api.GET("/books", i.ListBooks)
	api.POST("/books", i.CreateBook)
	api.GET("/members", i.ListMembers)
	api.POST("/members", i.CreateMember)
	api.POST("/borrow", i.Borrow)
	api.POST("/return", i.Return)
	api.GET("/loans", i.ListLoans)
}

// startSpan opens the request span and returns its trace id for log fields.
func (i *implementation) startSpan(c *gin.Context, name string) (context.Context, trace.Span, string) {
	ctx, span := i.tracer.Start(c.Request.Context(), name)
	return ctx, span, span.SpanContext().TraceID().String()
}
