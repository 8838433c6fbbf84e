package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/user"
)

type mocks struct {
	repo   *user.MockRepository
	tx     *user.MockAccountTx
	hasher *user.MockHasher
}

func newService(t *testing.T) (*user.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:   user.NewMockRepository(ctrl),
		tx:     user.NewMockAccountTx(ctrl),
		hasher: user.NewMockHasher(ctrl),
	}

	return user.NewService(m.repo, m.hasher), m
}

func validRegistration() user.RegisterParams {
	return user.RegisterParams{Name: "Linh Tran", Email: " Linh@Example.com ", Password: "correct horse"}
}

func TestService_Register(t *testing.T) {
	guestID := uuid.New()

	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m mocks)
		check     func(t *testing.T, u *domain.User)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "NewAccount",
			params: validRegistration(),
			setupMock: func(m mocks) {
				m.hasher.EXPECT().Hash("correct horse").Return("hashed", nil)
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockUserByEmail(gomock.Any(), "linh@example.com").Return(nil, domain.ErrNotFound)
				m.tx.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) error {
						u.ID = uuid.New()
						return nil
					})
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, u *domain.User) {
				assert.Equal(t, "linh@example.com", u.Email)
				assert.Equal(t, "Linh Tran", *u.Name)
				assert.Equal(t, "hashed", *u.PasswordHash)
				assert.False(t, u.IsGuest)
				assert.Equal(t, domain.RoleUser, u.Role)
			},
		},
		{
			name:   "UpgradesGuestHoldingEmail",
			params: validRegistration(),
			setupMock: func(m mocks) {
				m.hasher.EXPECT().Hash("correct horse").Return("hashed", nil)
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().
					LockUserByEmail(gomock.Any(), "linh@example.com").
					Return(&domain.User{ID: guestID, IsGuest: true}, nil)
				m.tx.EXPECT().
					Promote(gomock.Any(), guestID, user.Credentials{Name: "Linh Tran", Email: "linh@example.com", PasswordHash: "hashed"}).
					Return(&domain.User{ID: guestID, Email: "linh@example.com"}, nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, u *domain.User) {
				assert.Equal(t, guestID, u.ID)
			},
		},
		{
			name:   "EmailTaken",
			params: validRegistration(),
			setupMock: func(m mocks) {
				m.hasher.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().
					LockUserByEmail(gomock.Any(), "linh@example.com").
					Return(&domain.User{ID: uuid.New(), PasswordHash: new("x")}, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:      "ShortPassword",
			params:    user.RegisterParams{Name: "Linh", Email: "linh@example.com", Password: "short"},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "PasswordOverBcryptBytes",
			params:    user.RegisterParams{Name: "Linh", Email: "linh@example.com", Password: strings.Repeat("é", 40)},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "ShortName",
			params:    user.RegisterParams{Name: " L ", Email: "linh@example.com", Password: "long enough"},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Register(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_CreateGuest(t *testing.T) {
	svc, m := newService(t)

	m.repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

	u, err := svc.CreateGuest(context.Background())
	require.NoError(t, err)

	assert.True(t, u.IsGuest)
	assert.Nil(t, u.PasswordHash)
	assert.Equal(t, user.GuestName, *u.Name)
	assert.True(t, strings.HasPrefix(u.Email, "guest_"))
	assert.True(t, strings.HasSuffix(u.Email, "@guest.wedding-planner.local"))
}

func TestService_UpgradeGuest(t *testing.T) {
	guestID := uuid.New()
	params := user.RegisterParams{Name: "Linh Tran", Email: "linh@example.com", Password: "correct horse"}

	type testCase struct {
		name      string
		principal uuid.UUID
		password  string
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "KeepsID",
			principal: guestID,
			setupMock: func(m mocks) {
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockUser(gomock.Any(), guestID).Return(&domain.User{ID: guestID, IsGuest: true}, nil)
				m.tx.EXPECT().LockUserByEmail(gomock.Any(), "linh@example.com").Return(nil, domain.ErrNotFound)
				m.hasher.EXPECT().Hash("correct horse").Return("hashed", nil)
				m.tx.EXPECT().
					Promote(gomock.Any(), guestID, gomock.Any()).
					Return(&domain.User{ID: guestID, Email: "linh@example.com", PasswordHash: new("hashed")}, nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name:      "NotAGuest",
			principal: guestID,
			setupMock: func(m mocks) {
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockUser(gomock.Any(), guestID).Return(&domain.User{ID: guestID}, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:      "EmailOwnedByAnotherUser",
			principal: guestID,
			setupMock: func(m mocks) {
				m.repo.EXPECT().BeginAccount(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().LockUser(gomock.Any(), guestID).Return(&domain.User{ID: guestID, IsGuest: true}, nil)
				m.tx.EXPECT().LockUserByEmail(gomock.Any(), "linh@example.com").Return(&domain.User{ID: uuid.New()}, nil)
				m.tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:      "PasswordOverBcryptBytes",
			principal: guestID,
			password:  strings.Repeat("é", 40),
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "Anonymous",
			principal: uuid.Nil,
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			p := params
			if tt.password != "" {
				p.Password = tt.password
			}

			got, err := svc.UpgradeGuest(context.Background(), tt.principal, p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, guestID, got.ID)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	stored := &domain.User{
		ID:           uuid.New(),
		Email:        "linh@example.com",
		PasswordHash: new("hashed"),
		Status:       domain.UserStatusActive,
	}

	type testCase struct {
		name      string
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetUserByEmail(gomock.Any(), "linh@example.com").Return(stored, nil)
				m.hasher.EXPECT().Compare("hashed", "correct horse").Return(nil)
			},
		},
		{
			name: "UnknownEmail",
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "WrongPassword",
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(stored, nil)
				m.hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(errors.New("mismatch"))
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "Guest",
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(&domain.User{ID: uuid.New(), IsGuest: true, Status: domain.UserStatusActive}, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "NoPassword",
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(&domain.User{ID: uuid.New(), Status: domain.UserStatusActive}, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name: "Suspended",
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					GetUserByEmail(gomock.Any(), gomock.Any()).
					Return(&domain.User{ID: uuid.New(), PasswordHash: new("hashed"), Status: domain.UserStatusSuspended}, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Authenticate(context.Background(), user.LoginParams{Email: "Linh@example.com", Password: "correct horse"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Equal(t, user.ErrInvalidCredentials.Error(), err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestService_UpdateProfile(t *testing.T) {
	id := uuid.New()

	t.Run("EmptyWritesNothing", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().GetUser(gomock.Any(), id).Return(&domain.User{ID: id}, nil)

		_, err := svc.UpdateProfile(context.Background(), id, user.ProfileParams{})
		require.NoError(t, err)
	})

	t.Run("TrimsName", func(t *testing.T) {
		svc, m := newService(t)
		m.repo.EXPECT().
			UpdateProfile(gomock.Any(), id, user.ProfileParams{Name: new("Linh")}).
			Return(nil)
		m.repo.EXPECT().GetUser(gomock.Any(), id).Return(&domain.User{ID: id, Name: new("Linh")}, nil)

		got, err := svc.UpdateProfile(context.Background(), id, user.ProfileParams{Name: new("  Linh ")})
		require.NoError(t, err)
		assert.Equal(t, "Linh", *got.Name)
	})

	t.Run("BadImage", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UpdateProfile(context.Background(), id, user.ProfileParams{Image: domain.Some("not a url")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
