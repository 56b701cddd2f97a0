package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/kakeibo/internal/ledger"
)

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ledger.MockStore)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "PersistsNewSnapshot",
			setupMock: func(m *ledger.MockStore) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l ledger.Ledger) error {
						assert.Len(t, l, 1)
						assert.Equal(t, int64(1), l[0].ID)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "SaveError",
			setupMock: func(m *ledger.MockStore) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := ledger.NewMockStore(ctrl)
			tt.setupMock(store)

			svc := ledger.NewService(store)

			got, err := svc.Add(context.Background(), ledger.Ledger{}, ledger.CreateParams{
				Date: date(2024, 1, 1), Kind: ledger.KindExpense, Account: "Bank", Amount: 5000,
			})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, int64(-5000), got[0].Balance)
		})
	}
}

func TestService_Update_NotFoundSkipsSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No Save expectation: a failed mutation must not touch the store.
	store := ledger.NewMockStore(ctrl)
	svc := ledger.NewService(store)

	amount := int64(100)

	_, err := svc.Update(context.Background(), ledger.Ledger{}, 42, ledger.UpdateParams{Amount: &amount})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	store.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l ledger.Ledger) error {
			assert.Empty(t, l)
			return nil
		})

	svc := ledger.NewService(store)

	l := ledger.Ledger{{ID: 1, Date: date(2024, 1, 1), Kind: ledger.KindIncome, Account: "Bank", Amount: 100}}

	got, err := svc.Delete(context.Background(), l, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := ledger.NewMockStore(ctrl)
	store.EXPECT().
		Load(gomock.Any()).
		Return(ledger.Ledger{{ID: 1}}, nil)

	svc := ledger.NewService(store)

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
