package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/project/lending/internal/usecase/repository"
	"github.com/project/lending/pkg/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=outbox.go -destination=mocks/mock.go -package=mocks
//go:generate mockgen -destination=mocks/context.go -package=mocks context Context

type (
	GlobalHandler = func(kind repository.OutboxKind) (KindHandler, error)
	KindHandler   = func(ctx context.Context, data []byte) error

	Outbox interface {
		Start(ctx context.Context, workers int, batchSize int, waitTime time.Duration, inProgressTTL time.Duration)
		Wait()
	}

	Repository interface {
		GetMessages(ctx context.Context, batchSize int, inProgressTTL time.Duration) ([]repository.OutboxData, error)
		MarkAs(ctx context.Context, idempotencyKeys []string, s repository.Status) error
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}
)

var _ Outbox = (*outboxImpl)(nil)

type outboxImpl struct {
	logger           *zap.Logger
	outboxRepository Repository
	globalHandler    GlobalHandler
	transactor       Transactor
	wg               sync.WaitGroup
}

func New(
	logger *zap.Logger,
	outboxRepository Repository,
	globalHandler GlobalHandler,
	transactor Transactor,
) *outboxImpl {
	return &outboxImpl{
		logger:           logger,
		outboxRepository: outboxRepository,
		globalHandler:    globalHandler,
		transactor:       transactor,
	}
}

// Start launches workers goroutines delivering loan events until ctx is done.
func (o *outboxImpl) Start(
	ctx context.Context,
	workers int,
	batchSize int,
	waitTime time.Duration,
	inProgressTTL time.Duration,
) {
	for workerID := 1; workerID <= workers; workerID++ {
		o.wg.Add(1)
		go o.worker(ctx, &o.wg, batchSize, waitTime, inProgressTTL)
	}
}

// Wait blocks until every worker has observed cancellation.
func (o *outboxImpl) Wait() {
	o.wg.Wait()
}

func (o *outboxImpl) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	batchSize int,
	waitTime time.Duration,
	inProgressTTL time.Duration,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			time.Sleep(waitTime)
			select {
			case <-ctx.Done():
				return
			default:
				err := o.transactor.WithTx(ctx, func(ctx context.Context) error {
					return o.processBatch(ctx, batchSize, inProgressTTL)
				})
				logger.CheckError(err, o.logger, "worker stage error", zap.Error(err))
			}
		}
	}
}

func (o *outboxImpl) processBatch(ctx context.Context, batchSize int, inProgressTTL time.Duration) error {
	messages, err := o.outboxRepository.GetMessages(ctx, batchSize, inProgressTTL)
	if logger.CheckError(err, o.logger, "can not fetch messages from outbox", zap.Error(err)) {
		return err
	}
	if len(messages) > 0 {
		logger.MakeInfo(o.logger, "messages fetched", zap.Int("size", len(messages)))
	}

	delivered, failed := lo.FilterReject(messages, func(message repository.OutboxData, _ int) bool {
		return o.deliver(ctx, message)
	})

	err = o.outboxRepository.MarkAs(ctx, keys(delivered), repository.Success)
	if logger.CheckError(err, o.logger, "Mark as 'Success' outbox error", zap.Error(err)) {
		return err
	}
	err = o.outboxRepository.MarkAs(ctx, keys(failed), repository.Created)
	if logger.CheckError(err, o.logger, "Mark as 'Created' for fail task outbox error", zap.Error(err)) {
		return err
	}

	return nil
}

func (o *outboxImpl) deliver(ctx context.Context, message repository.OutboxData) bool {
	kindHandler, err := o.globalHandler(message.Kind)
	if logger.CheckError(err, o.logger, "unexpected kind",
		zap.String("idempotency_key", message.IdempotencyKey), zap.Error(err)) {
		return false
	}

	err = kindHandler(ctx, message.RawData)
	return !logger.CheckError(err, o.logger, "kind error",
		zap.String("idempotency_key", message.IdempotencyKey), zap.Stringer("kind", message.Kind), zap.Error(err))
}

func keys(messages []repository.OutboxData) []string {
	return lo.Map(messages, func(message repository.OutboxData, _ int) string {
		return message.IdempotencyKey
	})
}
