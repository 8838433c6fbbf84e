package ownership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
)

func TestGuard_AuthorizePlan(t *testing.T) {
	var (
		alice  = uuid.New()
		bob    = uuid.New()
		planID = uuid.New()
	)

	type args struct {
		principal uuid.UUID
	}

	type testCase struct {
		name         string
		args         args
		setupMock    func(m *ownership.MockResolver)
		wantErr      error
		wantNotOwner bool
	}

	tests := []testCase{
		{
			name: "Owner",
			args: args{principal: alice},
			setupMock: func(m *ownership.MockResolver) {
				m.EXPECT().PlanOwner(gomock.Any(), planID).Return(alice, nil)
			},
		},
		{
			name:      "Anonymous",
			args:      args{principal: uuid.Nil},
			setupMock: func(m *ownership.MockResolver) {},
			wantErr:   domain.ErrUnauthorized,
		},
		{
			name: "Foreign",
			args: args{principal: bob},
			setupMock: func(m *ownership.MockResolver) {
				m.EXPECT().PlanOwner(gomock.Any(), planID).Return(alice, nil)
			},
			wantErr:      domain.ErrNotFound,
			wantNotOwner: true,
		},
		{
			name: "Missing",
			args: args{principal: bob},
			setupMock: func(m *ownership.MockResolver) {
				m.EXPECT().PlanOwner(gomock.Any(), planID).Return(uuid.Nil, domain.ErrNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			resolver := ownership.NewMockResolver(ctrl)
			tt.setupMock(resolver)

			err := ownership.NewGuard(resolver, nil).AuthorizePlan(context.Background(), tt.args.principal, planID)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantNotOwner, errors.Is(err, ownership.ErrNotOwner))
		})
	}
}

func TestGuard_ForeignAndMissingLookAlike(t *testing.T) {
	ctrl := gomock.NewController(t)

	var (
		alice   = uuid.New()
		bob     = uuid.New()
		foreign = uuid.New()
		missing = uuid.New()
	)

	resolver := ownership.NewMockResolver(ctrl)
	resolver.EXPECT().PlanOwner(gomock.Any(), foreign).Return(alice, nil)
	resolver.EXPECT().PlanOwner(gomock.Any(), missing).Return(uuid.Nil, domain.ErrNotFound)

	guard := ownership.NewGuard(resolver, nil)

	errForeign := guard.AuthorizePlan(context.Background(), bob, foreign)
	errMissing := guard.AuthorizePlan(context.Background(), bob, missing)

	assert.ErrorIs(t, errForeign, domain.ErrNotFound)
	assert.ErrorIs(t, errMissing, domain.ErrNotFound)
	assert.NotErrorIs(t, errForeign, domain.ErrUnauthorized)
	assert.NotErrorIs(t, errMissing, domain.ErrUnauthorized)
}

func TestGuard_AuthorizeCategory(t *testing.T) {
	ctrl := gomock.NewController(t)

	var (
		owner      = uuid.New()
		planID     = uuid.New()
		categoryID = uuid.New()
	)

	resolver := ownership.NewMockResolver(ctrl)
	resolver.EXPECT().
		CategoryOwner(gomock.Any(), categoryID).
		Return(ownership.CategoryRef{PlanID: planID, OwnerID: owner}, nil).
		Times(2)

	guard := ownership.NewGuard(resolver, nil)

	got, err := guard.AuthorizeCategory(context.Background(), owner, categoryID)
	require.NoError(t, err)
	assert.Equal(t, planID, got)

	_, err = guard.AuthorizeCategory(context.Background(), uuid.New(), categoryID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, ownership.ErrNotOwner)
}

func TestGuard_AuthorizeItem(t *testing.T) {
	ctrl := gomock.NewController(t)

	var (
		owner      = uuid.New()
		planID     = uuid.New()
		categoryID = uuid.New()
		itemID     = uuid.New()
		dbErr      = errors.New("connection reset")
	)

	resolver := ownership.NewMockResolver(ctrl)
	gomock.InOrder(
		resolver.EXPECT().ItemOwner(gomock.Any(), itemID).
			Return(ownership.ItemRef{CategoryID: categoryID, PlanID: planID, OwnerID: owner}, nil),
		resolver.EXPECT().ItemOwner(gomock.Any(), itemID).
			Return(ownership.ItemRef{}, dbErr),
	)

	guard := ownership.NewGuard(resolver, nil)

	gotCategory, gotPlan, err := guard.AuthorizeItem(context.Background(), owner, itemID)
	require.NoError(t, err)
	assert.Equal(t, categoryID, gotCategory)
	assert.Equal(t, planID, gotPlan)

	_, _, err = guard.AuthorizeItem(context.Background(), owner, itemID)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGuard_CountsDenials(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()

	resolver := ownership.NewMockResolver(ctrl)
	resolver.EXPECT().PlanOwner(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)

	guard := ownership.NewGuard(resolver, reg)

	_ = guard.AuthorizePlan(context.Background(), uuid.New(), uuid.New())
	_ = guard.AuthorizePlan(context.Background(), uuid.Nil, uuid.New())

	count, err := testutil.GatherAndCount(reg, "planner_authorization_denials_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
