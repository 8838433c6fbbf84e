package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daileit/wedding-planner/internal/category"
	"github.com/daileit/wedding-planner/internal/domain"
	"github.com/daileit/wedding-planner/internal/ownership"
)

type mocks struct {
	ctrl     *gomock.Controller
	repo     *category.MockRepository
	resolver *ownership.MockResolver
}

func newService(t *testing.T) (*category.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		ctrl:     ctrl,
		repo:     category.NewMockRepository(ctrl),
		resolver: ownership.NewMockResolver(ctrl),
	}

	return category.NewService(m.repo, ownership.NewGuard(m.resolver, nil)), m
}

func TestService_Create(t *testing.T) {
	var (
		owner  = uuid.New()
		planID = uuid.New()
	)

	type testCase struct {
		name      string
		principal uuid.UUID
		params    category.CreateParams
		setupMock func(m mocks)
		check     func(t *testing.T, c *domain.Category)
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "DefaultsColorAndBudget",
			principal: owner,
			params:    category.CreateParams{PlanID: planID, Name: "Venue"},
			setupMock: func(m mocks) {
				m.resolver.EXPECT().PlanOwner(gomock.Any(), planID).Return(owner, nil)
				m.repo.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *domain.Category) error {
						c.ID = uuid.New()
						c.SortOrder = 1
						return nil
					})
			},
			check: func(t *testing.T, c *domain.Category) {
				assert.Equal(t, "#6366f1", c.Color)
				assert.True(t, c.AllocatedBudget.IsZero())
				assert.Equal(t, 1, c.SortOrder)
				assert.Equal(t, planID, c.PlanID)
			},
		},
		{
			name:      "BadColor",
			principal: owner,
			params:    category.CreateParams{PlanID: planID, Name: "Venue", Color: "purple"},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "ForeignPlan",
			principal: uuid.New(),
			params:    category.CreateParams{PlanID: planID, Name: "Venue"},
			setupMock: func(m mocks) {
				m.resolver.EXPECT().PlanOwner(gomock.Any(), planID).Return(owner, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:      "NegativeAllocation",
			principal: owner,
			params: category.CreateParams{
				PlanID:          planID,
				Name:            "Venue",
				AllocatedBudget: new(decimal.NewFromInt(-10)),
			},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			got, err := svc.Create(context.Background(), tt.principal, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	var (
		owner      = uuid.New()
		planID     = uuid.New()
		categoryID = uuid.New()
		ref        = ownership.CategoryRef{PlanID: planID, OwnerID: owner}
		stored     = &domain.Category{ID: categoryID, PlanID: planID, Name: "Venue"}
	)

	t.Run("EmptyUpdateWritesNothing", func(t *testing.T) {
		svc, m := newService(t)
		m.resolver.EXPECT().CategoryOwner(gomock.Any(), categoryID).Return(ref, nil)
		m.repo.EXPECT().GetCategory(gomock.Any(), categoryID).Return(stored, nil)

		got, err := svc.Update(context.Background(), owner, categoryID, category.UpdateParams{})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("Rename", func(t *testing.T) {
		svc, m := newService(t)
		m.resolver.EXPECT().CategoryOwner(gomock.Any(), categoryID).Return(ref, nil)
		m.repo.EXPECT().
			UpdateCategory(gomock.Any(), categoryID, category.UpdateParams{Name: new("Reception")}).
			Return(nil)
		m.repo.EXPECT().GetCategory(gomock.Any(), categoryID).Return(stored, nil)

		_, err := svc.Update(context.Background(), owner, categoryID, category.UpdateParams{Name: new("Reception")})
		require.NoError(t, err)
	})

	t.Run("DeleteForeign", func(t *testing.T) {
		svc, m := newService(t)
		m.resolver.EXPECT().CategoryOwner(gomock.Any(), categoryID).Return(ref, nil)

		err := svc.Delete(context.Background(), uuid.New(), categoryID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		svc, m := newService(t)
		m.resolver.EXPECT().CategoryOwner(gomock.Any(), categoryID).Return(ref, nil)
		m.repo.EXPECT().DeleteCategory(gomock.Any(), categoryID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), owner, categoryID))
	})
}

func TestService_Reorder(t *testing.T) {
	var (
		owner  = uuid.New()
		planID = uuid.New()
		a      = uuid.New()
		b      = uuid.New()
		c      = uuid.New()
	)

	type testCase struct {
		name      string
		ordered   []uuid.UUID
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "AssignsPositions",
			ordered: []uuid.UUID{c, a, b},
			setupMock: func(m mocks) {
				rtx := category.NewMockReorderTx(m.ctrl)

				m.repo.EXPECT().BeginReorder(gomock.Any(), planID).Return(rtx, nil)
				rtx.EXPECT().CategoryIDs(gomock.Any()).Return([]uuid.UUID{a, b, c}, nil)
				gomock.InOrder(
					rtx.EXPECT().SetSortOrder(gomock.Any(), c, 0).Return(nil),
					rtx.EXPECT().SetSortOrder(gomock.Any(), a, 1).Return(nil),
					rtx.EXPECT().SetSortOrder(gomock.Any(), b, 2).Return(nil),
				)
				rtx.EXPECT().Commit().Return(nil)
				rtx.EXPECT().Rollback().Return(nil)
				m.repo.EXPECT().ListCategories(gomock.Any(), planID).Return([]*domain.Category{
					{ID: c, SortOrder: 0}, {ID: a, SortOrder: 1}, {ID: b, SortOrder: 2},
				}, nil)
			},
		},
		{
			name:    "ForeignCategoryRejectsEverything",
			ordered: []uuid.UUID{a, uuid.New()},
			setupMock: func(m mocks) {
				rtx := category.NewMockReorderTx(m.ctrl)

				m.repo.EXPECT().BeginReorder(gomock.Any(), planID).Return(rtx, nil)
				rtx.EXPECT().CategoryIDs(gomock.Any()).Return([]uuid.UUID{a, b, c}, nil)
				rtx.EXPECT().Rollback().Return(nil)
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:      "DuplicateRejectedBeforeAnyQuery",
			ordered:   []uuid.UUID{a, a},
			setupMock: func(m mocks) {},
			wantErr:   domain.ErrValidation,
		},
		{
			name:    "EmptyListIsNoop",
			ordered: nil,
			setupMock: func(m mocks) {
				m.repo.EXPECT().ListCategories(gomock.Any(), planID).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			m.resolver.EXPECT().PlanOwner(gomock.Any(), planID).Return(owner, nil).AnyTimes()
			tt.setupMock(m)

			_, err := svc.Reorder(context.Background(), owner, planID, tt.ordered)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_List(t *testing.T) {
	owner, planID := uuid.New(), uuid.New()

	svc, m := newService(t)
	m.resolver.EXPECT().PlanOwner(gomock.Any(), planID).Return(owner, nil)
	m.repo.EXPECT().ListCategories(gomock.Any(), planID).Return([]*domain.Category{
		{Name: "Venue", Items: []*domain.Item{
			{EstimatedCost: decimal.NewFromInt(3000)},
			{EstimatedCost: decimal.NewFromInt(500), ActualCost: decimal.NewNullDecimal(decimal.NewFromInt(450))},
		}},
	}, nil)

	got, err := svc.List(context.Background(), owner, planID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Totals.TotalEstimated.Equal(decimal.NewFromInt(3500)))
	assert.True(t, got[0].Totals.TotalActual.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 2, got[0].Totals.ItemsCount)
}
