package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/internal/utils/logger"
	"Recipe-Box-Backend/internal/utils/mailing"
	"Recipe-Box-Backend/internal/utils/storage"
	"Recipe-Box-Backend/pkg/ingredient"
	"Recipe-Box-Backend/pkg/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uploadFolder = "recipes"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, ownerID string) (domain.RecipeResponse, error)
		GetRecipe(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error)
		ListRecipes(ctx context.Context, ownerID string) ([]domain.RecipeResponse, error)
		ListSharedRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, requesterID string) error
		CopyRecipe(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error)
		MarkAsCooked(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error)
		ShareRecipe(ctx context.Context, recipeID string, ownerID string, req domain.ShareRecipeRequest) error
		ReadableRecipe(ctx context.Context, recipeID string, requesterID string) (*entities.Recipe, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		userRepository    user.UserRepository
		ingredientService ingredient.IngredientService
		storage           storage.Storage
		mailer            mailing.Mailer
		appURL            string
	}
)

// NewRecipeService wires the recipe store. mailer may be nil, which turns
// share notifications off.
func NewRecipeService(
	recipeRepository RecipeRepository,
	userRepository user.UserRepository,
	ingredientService ingredient.IngredientService,
	fileStorage storage.Storage,
	mailer mailing.Mailer,
	appURL string,
) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		userRepository:    userRepository,
		ingredientService: ingredientService,
		storage:           fileStorage,
		mailer:            mailer,
		appURL:            strings.TrimRight(appURL, "/"),
	}
}

// CreateRecipe validates the draft and resolves every ingredient before
// anything is written. Files are uploaded first and removed again if the
// database transaction fails.
func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, ownerID string) (domain.RecipeResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	if len(req.Ingredients) == 0 {
		return domain.RecipeResponse{}, domain.ErrNoIngredients
	}
	servings, err := NormalizeServings(req.ServingsUnit, req.Servings)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	for _, t := range []*int{req.PrepTime, req.CookTime, req.RestTime} {
		if t != nil && *t < 0 {
			return domain.RecipeResponse{}, domain.ErrInvalidTimeField
		}
	}

	names := make([]string, len(req.Ingredients))
	for i, line := range req.Ingredients {
		names[i] = line.Name
	}
	resolutions, err := s.ingredientService.ResolveMany(ctx, names, req.Language)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		OwnerID:          ownerUUID,
		Title:            strings.TrimSpace(req.Title),
		Instructions:     req.Instructions,
		Servings:         servings,
		ServingsUnit:     servingsUnit(req.ServingsUnit),
		PrepTime:         req.PrepTime,
		CookTime:         req.CookTime,
		RestTime:         req.RestTime,
		Source:           strings.TrimSpace(req.Source),
		SpecialEquipment: nonNil(req.SpecialEquipment),
		ImageURLs:        []string{},
	}
	for i, line := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, &entities.RecipeIngredient{
			IngredientID:  resolutions[i].IngredientID,
			TranslationID: resolutions[i].TranslationID,
			Position:      i,
			Quantity:      line.Quantity,
			Unit:          trimmedOrNil(line.Unit),
		})
	}

	uploaded, err := s.uploadImages(ctx, recipe, req)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, req.Categories); err != nil {
		s.removeFiles(ctx, uploaded)
		return domain.RecipeResponse{}, err
	}

	return s.loadResponse(ctx, recipe.ID.String())
}

// uploadImages stores the thumbnail and images and sets their public links on
// recipe. On failure it removes whatever was already stored.
func (s *recipeService) uploadImages(ctx context.Context, recipe *entities.Recipe, req domain.CreateRecipeRequest) ([]string, error) {
	var uploaded []string
	prefix := uuid.NewString()

	if req.Thumbnail != nil {
		key, err := s.storage.UploadFile(ctx, prefix+"-thumbnail", req.Thumbnail, uploadFolder, storage.AllowImage...)
		if err != nil {
			return nil, err
		}
		uploaded = append(uploaded, key)
		recipe.ThumbnailURL = s.storage.GetPublicLinkKey(key)
	}

	for i, image := range req.Images {
		key, err := s.storage.UploadFile(ctx, fmt.Sprintf("%s-image-%d", prefix, i), image, uploadFolder, storage.AllowImage...)
		if err != nil {
			s.removeFiles(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, key)
		recipe.ImageURLs = append(recipe.ImageURLs, s.storage.GetPublicLinkKey(key))
	}

	return uploaded, nil
}

func (s *recipeService) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.DeleteFile(ctx, key); err != nil {
			logger.L.Error("failed to remove stored file", zap.String("key", key), zap.Error(err))
			continue
		}
		logger.L.Info("removed stored file", zap.String("key", key))
	}
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error) {
	recipe, err := s.ReadableRecipe(ctx, recipeID, requesterID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

// ReadableRecipe loads a recipe the requester owns or that was shared with
// them. Any other recipe is reported as not found.
func (s *recipeService) ReadableRecipe(ctx context.Context, recipeID string, requesterID string) (*entities.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.OwnerID.String() == requesterID {
		return recipe, nil
	}

	shared, err := s.recipeRepository.IsSharedWith(ctx, recipeID, requesterID)
	if err != nil {
		return nil, err
	}
	if !shared {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, ownerID string) ([]domain.RecipeResponse, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, err := s.recipeRepository.GetRecipesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) ListSharedRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, err := s.recipeRepository.GetRecipesSharedWith(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, requesterID string) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.OwnerID.String() != requesterID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe); err != nil {
		return err
	}

	// copies may still point at the same files
	var orphaned []string
	for _, link := range recipeFileLinks(recipe) {
		referenced, err := s.recipeRepository.IsFileReferenced(ctx, link, recipe.ID.String())
		if err != nil {
			logger.L.Error("failed to check file references", zap.String("link", link), zap.Error(err))
			continue
		}
		if !referenced {
			orphaned = append(orphaned, s.storage.GetObjectKeyFromLink(link))
		}
	}
	s.removeFiles(ctx, orphaned)

	return nil
}

// CopyRecipe duplicates a readable recipe into the requester's box. The copy
// links back to its source and shares its stored images.
func (s *recipeService) CopyRecipe(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error) {
	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	source, err := s.ReadableRecipe(ctx, recipeID, requesterID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	sourceID := source.ID
	copied := &entities.Recipe{
		OwnerID:          requesterUUID,
		OriginalID:       &sourceID,
		Title:            source.Title,
		Instructions:     source.Instructions,
		Servings:         source.Servings,
		ServingsUnit:     source.ServingsUnit,
		PrepTime:         source.PrepTime,
		CookTime:         source.CookTime,
		RestTime:         source.RestTime,
		ThumbnailURL:     source.ThumbnailURL,
		ImageURLs:        nonNil(source.ImageURLs),
		Source:           source.Source,
		SpecialEquipment: nonNil(source.SpecialEquipment),
	}
	for _, line := range source.Ingredients {
		copied.Ingredients = append(copied.Ingredients, &entities.RecipeIngredient{
			IngredientID:  line.IngredientID,
			TranslationID: line.TranslationID,
			Position:      line.Position,
			Quantity:      line.Quantity,
			Unit:          line.Unit,
		})
	}
	categories := make([]string, 0, len(source.Categories))
	for _, c := range source.Categories {
		categories = append(categories, c.Name)
	}

	if err := s.recipeRepository.CreateRecipe(ctx, copied, categories); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.loadResponse(ctx, copied.ID.String())
}

func (s *recipeService) MarkAsCooked(ctx context.Context, recipeID string, requesterID string) (domain.RecipeResponse, error) {
	recipe, err := s.ReadableRecipe(ctx, recipeID, requesterID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe.OwnerID.String() != requesterID {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.MarkAsCooked(ctx, recipe, time.Now().UTC()); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.loadResponse(ctx, recipeID)
}

// ShareRecipe gives another user read access to one of the owner's recipes.
// Sharing again is a successful no-op and sends no second notification.
func (s *recipeService) ShareRecipe(ctx context.Context, recipeID string, ownerID string, req domain.ShareRecipeRequest) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.OwnerID.String() != ownerID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	target, err := s.shareTarget(ctx, req)
	if err != nil {
		return err
	}
	if target.ID == recipe.OwnerID {
		return domain.ErrShareWithSelf
	}

	created, err := s.recipeRepository.ShareRecipe(ctx, recipe.ID.String(), target.ID.String())
	if err != nil {
		return err
	}
	if created {
		s.notifyShare(recipe, target)
	}
	return nil
}

func (s *recipeService) shareTarget(ctx context.Context, req domain.ShareRecipeRequest) (*entities.User, error) {
	var (
		target *entities.User
		err    error
	)
	switch {
	case req.UserID != "":
		if _, perr := uuid.Parse(req.UserID); perr != nil {
			return nil, domain.ErrUserNotFound
		}
		target, err = s.userRepository.GetUserByID(ctx, req.UserID)
	case req.Email != "":
		target, err = s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	default:
		return nil, domain.ErrShareTargetRequired
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return target, nil
}

func (s *recipeService) notifyShare(recipe *entities.Recipe, target *entities.User) {
	if s.mailer == nil {
		return
	}

	sender := recipe.OwnerID.String()
	if recipe.Owner != nil {
		sender = recipe.Owner.Username
	}
	subject, body, err := mailing.RenderSharedRecipe(mailing.SharedRecipeMail{
		Recipient: target.Username,
		Sender:    sender,
		Title:     recipe.Title,
		Link:      s.appURL + "/api/recipes/" + recipe.ID.String(),
	})
	if err == nil {
		err = s.mailer.SendMail(target.Email, subject, body)
	}
	if err != nil {
		logger.L.Warn("share notification not sent",
			zap.String("recipe_id", recipe.ID.String()),
			zap.String("user_id", target.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) loadResponse(ctx context.Context, recipeID string) (domain.RecipeResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func recipeFileLinks(recipe *entities.Recipe) []string {
	var links []string
	if recipe.ThumbnailURL != "" {
		links = append(links, recipe.ThumbnailURL)
	}
	return append(links, recipe.ImageURLs...)
}

func toRecipeResponses(recipes []*entities.Recipe) []domain.RecipeResponse {
	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toRecipeResponse(recipe))
	}
	return response
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	response := domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Title:            recipe.Title,
		Instructions:     recipe.Instructions,
		Servings:         json.RawMessage(recipe.Servings),
		ServingsUnit:     recipe.ServingsUnit,
		PrepTime:         recipe.PrepTime,
		CookTime:         recipe.CookTime,
		RestTime:         recipe.RestTime,
		TotalTime:        recipe.TotalTime,
		ThumbnailURL:     recipe.ThumbnailURL,
		ImageURLs:        nonNil(recipe.ImageURLs),
		Source:           recipe.Source,
		SpecialEquipment: nonNil(recipe.SpecialEquipment),
		Ingredients:      make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
		Categories:       make([]string, 0, len(recipe.Categories)),
		LastCookedAt:     recipe.LastCookedAt,
		CreatedAt:        recipe.CreatedAt,
		ChangedAt:        recipe.UpdatedAt,
	}
	if recipe.OriginalID != nil {
		response.OriginalID = recipe.OriginalID.String()
	}
	if recipe.Owner != nil {
		response.Owner = domain.Owner{
			ID:       recipe.Owner.ID.String(),
			Username: recipe.Owner.Username,
			Email:    recipe.Owner.Email,
		}
	}

	for _, line := range recipe.Ingredients {
		item := domain.RecipeIngredientResponse{
			ID:       line.IngredientID.String(),
			Quantity: line.Quantity,
			Unit:     line.Unit,
		}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
		}
		if line.Translation != nil {
			item.TranslatedName = line.Translation.Name
		}
		response.Ingredients = append(response.Ingredients, item)
	}
	for _, c := range recipe.Categories {
		response.Categories = append(response.Categories, c.Name)
	}

	return response
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func servingsUnit(unit string) *string {
	if unit == "" {
		return nil
	}
	return &unit
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
