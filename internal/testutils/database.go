package testutils

import (
	"path/filepath"
	"testing"

	migration "Recipe-Box-Backend/cmd/database/migrate"
	"Recipe-Box-Backend/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a migrated SQLite database in a temp dir with foreign keys
// enforced, so cascades behave as they do on Postgres.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recipes.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()

	user := &entities.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, language string, creator *entities.User, translations map[string]string) *entities.Ingredient {
	t.Helper()

	ingredient := &entities.Ingredient{Name: name, Language: language}
	if creator != nil {
		ingredient.CreatorID = &creator.ID
	}
	require.NoError(t, db.Create(ingredient).Error)

	for lang, translated := range translations {
		translation := &entities.IngredientTranslation{IngredientID: ingredient.ID, Language: lang, Name: translated}
		require.NoError(t, db.Create(translation).Error)
		ingredient.Translations = append(ingredient.Translations, translation)
	}
	return ingredient
}
