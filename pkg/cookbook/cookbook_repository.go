package cookbook

import (
	"context"
	"database/sql"

	"Recipe-Box-Backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CookbookRepository interface {
		CreateCookbook(ctx context.Context, cookbook *entities.Cookbook) error
		GetCookbookByID(ctx context.Context, id string) (*entities.Cookbook, error)
		GetCookbooksForUser(ctx context.Context, userID string) ([]*entities.Cookbook, error)
		IsMember(ctx context.Context, cookbookID string, userID string) (bool, error)
		AddMember(ctx context.Context, cookbook *entities.Cookbook, user *entities.User) error
		CreateChapter(ctx context.Context, chapter *entities.CookbookChapter) error
		GetChapter(ctx context.Context, cookbookID string, chapterID string) (*entities.CookbookChapter, error)
		PlaceRecipe(ctx context.Context, placement *entities.CookbookRecipe) error
		GetPlacement(ctx context.Context, id string) (*entities.CookbookRecipe, error)
		UpsertFeedback(ctx context.Context, feedback *entities.CookbookRecipeFeedback) error
		GetFeedback(ctx context.Context, placementID string) ([]*entities.CookbookRecipeFeedback, error)
	}

	cookbookRepository struct {
		db *gorm.DB
	}
)

func NewCookbookRepository(db *gorm.DB) CookbookRepository {
	return &cookbookRepository{db: db}
}

// CreateCookbook inserts the cookbook and links its initial members without
// touching the user rows.
func (r *cookbookRepository) CreateCookbook(ctx context.Context, cookbook *entities.Cookbook) error {
	return r.db.WithContext(ctx).Omit("Members.*").Create(cookbook).Error
}

func (r *cookbookRepository) GetCookbookByID(ctx context.Context, id string) (*entities.Cookbook, error) {
	var cookbook entities.Cookbook
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("username asc") }).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Recipes.Recipe").
		Preload("Recipes.Feedback").
		Where("id = ?", id).
		First(&cookbook).Error
	if err != nil {
		return nil, err
	}
	return &cookbook, nil
}

func (r *cookbookRepository) GetCookbooksForUser(ctx context.Context, userID string) ([]*entities.Cookbook, error) {
	var cookbooks []*entities.Cookbook
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("username asc") }).
		Joins("JOIN cookbook_members ON cookbook_members.cookbook_id = cookbooks.id").
		Where("cookbook_members.user_id = ?", userID).
		Order("cookbooks.created_at asc").
		Find(&cookbooks).Error
	return cookbooks, err
}

func (r *cookbookRepository) IsMember(ctx context.Context, cookbookID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("cookbook_members").
		Where("cookbook_id = ? AND user_id = ?", cookbookID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMember is idempotent; an existing membership is left as is.
func (r *cookbookRepository) AddMember(ctx context.Context, cookbook *entities.Cookbook, user *entities.User) error {
	return r.db.WithContext(ctx).
		Model(&entities.Cookbook{ID: cookbook.ID}).
		Association("Members").
		Append(user)
}

// CreateChapter appends the chapter when its position is unset or past the
// end; otherwise later chapters move down by one.
func (r *cookbookRepository) CreateChapter(ctx context.Context, chapter *entities.CookbookChapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings := tx.Model(&entities.CookbookChapter{}).Where("cookbook_id = ?", chapter.CookbookID)
		position, err := insertPosition(siblings, chapter.Position)
		if err != nil {
			return err
		}

		err = tx.Model(&entities.CookbookChapter{}).
			Where("cookbook_id = ? AND position >= ?", chapter.CookbookID, position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return err
		}

		chapter.Position = position
		return tx.Create(chapter).Error
	})
}

func (r *cookbookRepository) GetChapter(ctx context.Context, cookbookID string, chapterID string) (*entities.CookbookChapter, error) {
	var chapter entities.CookbookChapter
	err := r.db.WithContext(ctx).
		Where("id = ? AND cookbook_id = ?", chapterID, cookbookID).
		First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// PlaceRecipe inserts the placement at its position within the chapter,
// keeping sibling positions unique and gap-free.
func (r *cookbookRepository) PlaceRecipe(ctx context.Context, placement *entities.CookbookRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		siblings := func() *gorm.DB {
			q := tx.Model(&entities.CookbookRecipe{}).Where("cookbook_id = ?", placement.CookbookID)
			if placement.ChapterID == nil {
				return q.Where("chapter_id IS NULL")
			}
			return q.Where("chapter_id = ?", *placement.ChapterID)
		}

		position, err := insertPosition(siblings(), placement.Position)
		if err != nil {
			return err
		}

		err = siblings().
			Where("position >= ?", position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error
		if err != nil {
			return err
		}

		placement.Position = position
		return tx.Create(placement).Error
	})
}

// insertPosition clamps requested to 1..max+1 among siblings. Zero or a
// negative value means append.
func insertPosition(siblings *gorm.DB, requested int) (int, error) {
	var last sql.NullInt64
	if err := siblings.Select("MAX(position)").Scan(&last).Error; err != nil {
		return 0, err
	}

	next := int(last.Int64) + 1
	if requested <= 0 || requested > next {
		return next, nil
	}
	return requested, nil
}

func (r *cookbookRepository) GetPlacement(ctx context.Context, id string) (*entities.CookbookRecipe, error) {
	var placement entities.CookbookRecipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&placement).Error; err != nil {
		return nil, err
	}
	return &placement, nil
}

// UpsertFeedback keeps one feedback row per user and placement. The stored
// row is loaded back into feedback.
func (r *cookbookRepository) UpsertFeedback(ctx context.Context, feedback *entities.CookbookRecipeFeedback) error {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cookbook_recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(feedback).Error
	if err != nil {
		return err
	}

	var stored entities.CookbookRecipeFeedback
	err = db.Preload("User").
		Where("cookbook_recipe_id = ? AND user_id = ?", feedback.CookbookRecipeID, feedback.UserID).
		First(&stored).Error
	if err != nil {
		return err
	}
	*feedback = stored
	return nil
}

func (r *cookbookRepository) GetFeedback(ctx context.Context, placementID string) ([]*entities.CookbookRecipeFeedback, error) {
	var feedback []*entities.CookbookRecipeFeedback
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("cookbook_recipe_id = ?", placementID).
		Order("created_at asc").
		Find(&feedback).Error
	return feedback, err
}
