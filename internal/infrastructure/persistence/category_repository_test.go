package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CategoryModelSQLite is a SQLite-compatible version of CategoryModel for testing
type CategoryModelSQLite struct {
	ID          string `gorm:"primaryKey"`
	WorkspaceID string `gorm:"not null;index"`
	CreatedBy   *string
	Name        string `gorm:"not null"`
	Type        string `gorm:"not null;index"`
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModelSQLite) TableName() string {
	return "categories"
}

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CategoryModelSQLite{}))
	return db
}

func TestCategoryRepository_SaveAndFind(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	category, err := accounting.NewCategory(workspaceID, "Travel", accounting.CategoryTypeExpense)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	found, err := repo.FindByIDForWorkspace(ctx, workspaceID, category.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Travel", found.Name)
	assert.Equal(t, accounting.CategoryTypeExpense, found.Type)
}

func TestCategoryRepository_FindAllForWorkspace_TypeFilter(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	expense, err := accounting.NewCategory(workspaceID, "Travel", accounting.CategoryTypeExpense)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, expense))
	income, err := accounting.NewCategory(workspaceID, "Sales", accounting.CategoryTypeIncome)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, income))

	all, err := repo.FindAllForWorkspace(ctx, workspaceID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	incomeType := accounting.CategoryTypeIncome
	onlyIncome, err := repo.FindAllForWorkspace(ctx, workspaceID, &incomeType)
	require.NoError(t, err)
	require.Len(t, onlyIncome, 1)
	assert.Equal(t, "Sales", onlyIncome[0].Name)
}

func TestCategoryRepository_FindAllForWorkspace_OrderedByName(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	for _, name := range []string{"Software", "Hardware", "Office"} {
		category, err := accounting.NewCategory(workspaceID, name, accounting.CategoryTypeExpense)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))
	}

	categories, err := repo.FindAllForWorkspace(ctx, workspaceID, nil)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Hardware", categories[0].Name)
	assert.Equal(t, "Office", categories[1].Name)
	assert.Equal(t, "Software", categories[2].Name)
}

func TestCategoryRepository_Delete(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	workspaceID := uuid.New()

	category, err := accounting.NewCategory(workspaceID, "Travel", accounting.CategoryTypeExpense)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	require.NoError(t, repo.DeleteForWorkspace(ctx, workspaceID, category.ID))

	found, err := repo.FindByIDForWorkspace(ctx, workspaceID, category.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
