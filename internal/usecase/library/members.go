package library

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

func (l *libraryImpl) ListMembers(ctx context.Context) ([]entity.Member, error) {
	members, err := l.membersRepository.ListMembers(ctx)
	if logger.CheckError(err, l.logger, "Failed list members", zap.Error(err)) {
		return nil, entity.AsStorage(err)
	}

	return members, nil
}

func (l *libraryImpl) CreateMember(ctx context.Context, member entity.Member) (entity.Member, error) {
	if err := validateMember(member); err != nil {
		return entity.Member{}, err
	}

	created, err := l.membersRepository.AddMember(ctx, member)
	if logger.CheckError(err, l.logger, "Failed register member", zap.String("member code", member.MemberCode), zap.Error(err)) {
		return entity.Member{}, entity.AsStorage(err)
	}

	logger.MakeInfo(l.logger, "Registered member", zap.String("id of member", created.ID))
	return created, nil
}

func validateMember(member entity.Member) error {
	err := validation.ValidateStruct(&member,
		validation.Field(&member.MemberCode, validation.Required),
		validation.Field(&member.FullName, validation.Required),
		validation.Field(&member.Email, validation.NilOrNotEmpty, is.EmailFormat),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrValidation, err)
	}
	return nil
}
