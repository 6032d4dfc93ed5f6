package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/project/lending/internal/entity"
	"github.com/stretchr/testify/require"
)

func testMember(code string) entity.Member {
	return entity.Member{
		ID:         uuid.NewString(),
		MemberCode: code,
		FullName:   "Ada Lovelace",
		Email:      ptr("ada@example.org"),
		Phone:      ptr("+44 20 0000 0000"),
		Address:    ptr("12 St James's Square"),
		CreatedAt:  time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
}

func Test_postgresRepository_ListMembers(t *testing.T) {
	t.Parallel()

	mock, repo := initRepoTest(t)
	want := []entity.Member{testMember("M-1"), testMember("M-2")}

	rows := pgxmock.NewRows([]string{"member_id", "member_code", "full_name", "email", "phone", "address", "created_at"})
	for _, m := range want {
		rows.AddRow(m.ID, m.MemberCode, m.FullName, m.Email, m.Phone, m.Address, m.CreatedAt)
	}
	mock.ExpectQuery(`FROM members\s+ORDER BY full_name`).WillReturnRows(rows)

	members, err := repo.ListMembers(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, members)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_postgresRepository_AddMember(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dbErr      error
		errRequire error
	}{
		{name: "ok"},
		{name: "duplicate member code", dbErr: pgError(ErrUniqueViolation, "members_member_code_key"), errRequire: entity.ErrConflict},
		{name: "internal error", dbErr: errInternal, errRequire: errInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, repo := initRepoTest(t)
			in := testMember("M-42")
			in.ID = ""
			id := uuid.NewString()

			expected := mock.ExpectQuery(`INSERT INTO members`).
				WithArgs(in.MemberCode, in.FullName, in.Email, in.Phone, in.Address)
			if tt.dbErr != nil {
				expected.WillReturnError(tt.dbErr)
			} else {
				expected.WillReturnRows(pgxmock.NewRows([]string{"member_id", "created_at"}).AddRow(id, time.Now()))
			}

			member, err := repo.AddMember(context.Background(), in)
			require.ErrorIs(t, err, tt.errRequire)
			if err != nil {
				require.Empty(t, member)
				return
			}
			require.Equal(t, id, member.ID)
			require.Equal(t, in.MemberCode, member.MemberCode)
		})
	}
}
