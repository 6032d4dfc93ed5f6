package repository

import (
	"go.uber.org/zap"
)

var _ BooksRepository = (*postgresRepository)(nil)
var _ MembersRepository = (*postgresRepository)(nil)
var _ LoansRepository = (*postgresRepository)(nil)

type postgresRepository struct {
	logger *zap.Logger
	db     DataBase
}

func New(logger *zap.Logger, db DataBase) *postgresRepository {
	return &postgresRepository{
		logger: logger,
		db:     db,
	}
}
