package step_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/step"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/testhelper"
	"github.com/adityakarchi/recipe-management/internal/domain"
)

func TestRepo_InsertMany_Mock(t *testing.T) {
	t.Parallel()

	mock := testhelper.NewMockPool(t)
	steps := domain.NumberSteps(3, []string{"Mix", "Bake"})

	mock.ExpectExec(`INSERT INTO steps \(recipe_id,position,instruction\) VALUES \(\$1,\$2,\$3\),\(\$4,\$5,\$6\)`).
		WithArgs(int64(3), 1, "Mix", int64(3), 2, "Bake").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, step.New(mock).InsertMany(context.Background(), steps))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_InsertMany_Mock_ErrorPropagates(t *testing.T) {
	t.Parallel()

	mock := testhelper.NewMockPool(t)
	dbErr := errors.New("disk full")
	mock.ExpectExec(`INSERT INTO steps`).
		WithArgs(int64(3), 1, "Mix").
		WillReturnError(dbErr)

	err := step.New(mock).InsertMany(context.Background(), domain.NumberSteps(3, []string{"Mix"}))

	require.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByRecipeID_Mock(t *testing.T) {
	t.Parallel()

	mock := testhelper.NewMockPool(t)
	mock.ExpectQuery(`SELECT recipe_id, position, instruction FROM steps WHERE recipe_id = \$1 ORDER BY position`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"recipe_id", "position", "instruction"}).
			AddRow(int64(3), 1, "Mix").
			AddRow(int64(3), 2, "Bake"))

	got, err := step.New(mock).GetByRecipeID(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mix", got[0].Instruction)
	assert.Equal(t, 2, got[1].Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_RoundTrip_OrderedByPosition(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := step.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedRecipe(t, pool)

	n, err := repo.DeleteByRecipe(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, repo.InsertMany(ctx, domain.NumberSteps(seeded.ID, []string{"one", "two", "three"})))

	got, err := repo.GetByRecipeID(ctx, seeded.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, i+1, s.Position)
	}
	assert.Equal(t, "three", got[2].Instruction)
}

func TestRepo_InsertMany_DuplicatePosition(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	seeded := testhelper.SeedRecipe(t, pool)

	err := step.New(pool).InsertMany(context.Background(), []domain.Step{
		{RecipeID: seeded.ID, Position: 1, Instruction: "clash"},
	})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_InsertMany_ZeroPositionRejected(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	seeded := testhelper.SeedRecipe(t, pool)

	err := step.New(pool).InsertMany(context.Background(), []domain.Step{
		{RecipeID: seeded.ID, Position: 0, Instruction: "bad"},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}
