package ingredient_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/ingredient"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/testhelper"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

// ---------------------------------------------------------------------------
// SQL-level tests (pgxmock)
// ---------------------------------------------------------------------------

func TestRepo_Resolve_Mock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		setup   func(mock pgxmock.PgxPoolIface)
		wantID  int64
		wantErr error
	}{
		{
			name:  "inserts then selects trimmed name",
			input: "  Flour ",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO ingredients \(name\) VALUES \(\$1\) ON CONFLICT \(name\) DO NOTHING`).
					WithArgs("Flour").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectQuery(`SELECT id FROM ingredients WHERE name = \$1`).
					WithArgs("Flour").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID: 11,
		},
		{
			name:  "existing name inserts nothing",
			input: "Salt",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO ingredients`).
					WithArgs("Salt").
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
				mock.ExpectQuery(`SELECT id FROM ingredients`).
					WithArgs("Salt").
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
			},
			wantID: 3,
		},
		{
			name:    "blank name is a validation error",
			input:   "   ",
			setup:   func(pgxmock.PgxPoolIface) {},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := testhelper.NewMockPool(t)
			tt.setup(mock)

			id, err := ingredient.New(mock).Resolve(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_Resolve_Mock_StorageErrorPropagates(t *testing.T) {
	t.Parallel()

	mock := testhelper.NewMockPool(t)
	dbErr := errors.New("connection refused")
	mock.ExpectExec(`INSERT INTO ingredients`).WithArgs("Egg").WillReturnError(dbErr)

	_, err := ingredient.New(mock).Resolve(context.Background(), "Egg")

	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Integration tests (PostgreSQL container)
// ---------------------------------------------------------------------------

func TestRepo_Resolve_ReusesExistingRow(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := ingredient.New(pool)
	ctx := context.Background()
	name := testhelper.UniqueName("Flour")

	first, err := repo.Resolve(ctx, name)
	require.NoError(t, err)

	second, err := repo.Resolve(ctx, "  "+name+"  ")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM ingredients WHERE name = $1`, name).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRepo_Resolve_CaseSensitive(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := ingredient.New(pool)
	ctx := context.Background()
	name := testhelper.UniqueName("sugar")

	lower, err := repo.Resolve(ctx, name)
	require.NoError(t, err)
	upper, err := repo.Resolve(ctx, "S"+name[1:])
	require.NoError(t, err)

	assert.NotEqual(t, lower, upper)
}

func TestRepo_Resolve_TwiceInsideOneTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := ingredient.New(pool)
	tm := postgres.NewTxManager(pool)
	name := testhelper.UniqueName("butter")

	var a, b int64
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		var err error
		if a, err = repo.Resolve(ctx, name); err != nil {
			return err
		}
		b, err = repo.Resolve(ctx, name)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRepo_Resolve_ConcurrentFirstWriters(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := ingredient.New(pool)
	name := testhelper.UniqueName("yeast")

	const writers = 8
	ids := make(chan int64, writers)
	errs := make(chan error, writers)
	for range writers {
		go func() {
			id, err := repo.Resolve(context.Background(), name)
			ids <- id
			errs <- err
		}()
	}

	var first int64
	for i := range writers {
		require.NoError(t, <-errs)
		id := <-ids
		if i == 0 {
			first = id
		}
		assert.Equal(t, first, id)
	}
}

func TestRepo_List_OrderedByName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := ingredient.New(pool)
	ctx := context.Background()

	suffix := testhelper.UniqueName("")
	zID := testhelper.SeedIngredient(t, pool, "zz-list"+suffix).ID
	aID := testhelper.SeedIngredient(t, pool, "aa-list"+suffix).ID

	list, err := repo.List(ctx)
	require.NoError(t, err)

	posA, posZ := -1, -1
	for i, ing := range list {
		switch ing.ID {
		case aID:
			posA = i
		case zID:
			posZ = i
		}
	}
	require.NotEqual(t, -1, posA)
	require.NotEqual(t, -1, posZ)
	assert.Less(t, posA, posZ)
}
