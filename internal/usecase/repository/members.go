package repository

import (
	"context"
	"fmt"

	"github.com/project/lending/internal/entity"
	"github.com/project/lending/pkg/logger"
	"go.uber.org/zap"
)

func (p *postgresRepository) ListMembers(ctx context.Context) ([]entity.Member, error) {
	const query = `
SELECT member_id, member_code, full_name, email, phone, address, created_at
FROM members
ORDER BY full_name
`
	rows, err := executor(ctx, p.db).Query(ctx, query)
	if logger.CheckError(err, p.logger, "can not list members", zap.Error(err)) {
		return nil, err
	}
	defer rows.Close()

	members := make([]entity.Member, 0)
	for rows.Next() {
		var m entity.Member
		if err = rows.Scan(&m.ID, &m.MemberCode, &m.FullName, &m.Email, &m.Phone, &m.Address, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (p *postgresRepository) AddMember(ctx context.Context, member entity.Member) (entity.Member, error) {
	const query = `
INSERT INTO members (member_code, full_name, email, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING member_id, created_at
`
	result := member

	err := executor(ctx, p.db).QueryRow(ctx, query,
		member.MemberCode,
		member.FullName,
		member.Email,
		member.Phone,
		member.Address,
	).Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		if pgErr, ok := pgCode(err); ok && pgErr.Code == ErrUniqueViolation {
			return entity.Member{}, fmt.Errorf("member code %s already exists: %w",
				member.MemberCode, entity.ErrConflict)
		}
		logger.CheckError(err, p.logger, "can not insert member",
			zap.String("member_code", member.MemberCode), zap.Error(err))
		return entity.Member{}, err
	}

	return result, nil
}
