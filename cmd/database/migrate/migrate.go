package migration

import (
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/internal/utils/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Ingredient{},
		&entities.IngredientTranslation{},
		&entities.Category{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.SharedRecipe{},
		&entities.Cookbook{},
		&entities.CookbookChapter{},
		&entities.CookbookRecipe{},
		&entities.CookbookRecipeFeedback{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		logger.L.Error("database migration failed", zap.Error(err))
		return err
	}

	logger.L.Info("database migration complete", zap.String("dialect", db.Dialector.Name()))
	return nil
}
