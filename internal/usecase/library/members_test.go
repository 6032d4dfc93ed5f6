package library

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lending/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestCreateMember(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      entity.Member
		callRepo   bool
		repoErr    error
		requireErr error
	}{
		{
			name:     "valid member",
			input:    entity.Member{MemberCode: "M-001", FullName: "Anna Akhmatova", Email: ptr("anna@example.com")},
			callRepo: true,
		},
		{
			name:     "without contacts",
			input:    entity.Member{MemberCode: "M-002", FullName: "Osip Mandelstam"},
			callRepo: true,
		},
		{
			name:       "missing member code",
			input:      entity.Member{FullName: "No Code"},
			requireErr: entity.ErrValidation,
		},
		{
			name:       "missing full name",
			input:      entity.Member{MemberCode: "M-003"},
			requireErr: entity.ErrValidation,
		},
		{
			name:       "malformed email",
			input:      entity.Member{MemberCode: "M-004", FullName: "Bad Mail", Email: ptr("not-an-email")},
			requireErr: entity.ErrValidation,
		},
		{
			name:       "duplicate member code",
			input:      entity.Member{MemberCode: "M-001", FullName: "Twin"},
			callRepo:   true,
			repoErr:    entity.ErrConflict,
			requireErr: entity.ErrConflict,
		},
		{
			name:       "storage failure",
			input:      entity.Member{MemberCode: "M-005", FullName: "Unlucky"},
			callRepo:   true,
			repoErr:    errInternal,
			requireErr: entity.ErrStorage,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			ctx, m, uc := initLibraryTest(t)
			if test.callRepo {
				m.members.EXPECT().AddMember(ctx, test.input).DoAndReturn(func(_ context.Context, member entity.Member) (entity.Member, error) {
					if test.repoErr != nil {
						return entity.Member{}, test.repoErr
					}
					member.ID = uuid.NewString()
					return member, nil
				})
			}

			member, err := uc.CreateMember(ctx, test.input)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				require.Empty(t, member)
				return
			}

			require.NoError(t, err)
			require.NoError(t, uuid.Validate(member.ID))
			require.Equal(t, test.input.MemberCode, member.MemberCode)
		})
	}
}

func TestListMembers(t *testing.T) {
	t.Parallel()

	ctx, m, uc := initLibraryTest(t)
	members := []entity.Member{{ID: uuid.NewString(), MemberCode: "M-1", FullName: "A"}}
	m.members.EXPECT().ListMembers(ctx).Return(members, nil)

	got, err := uc.ListMembers(ctx)
	require.NoError(t, err)
	require.Equal(t, members, got)

	ctx, m, uc = initLibraryTest(t)
	m.members.EXPECT().ListMembers(ctx).Return(nil, errInternal)

	got, err = uc.ListMembers(ctx)
	require.ErrorIs(t, err, entity.ErrStorage)
	require.Nil(t, got)
}
