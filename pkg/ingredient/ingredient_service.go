package ingredient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/internal/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		Resolve(ctx context.Context, name string, language string) (Resolution, error)
		ResolveMany(ctx context.Context, names []string, language string) ([]Resolution, error)
		List(ctx context.Context, userID string) ([]domain.IngredientResponse, error)
		Create(ctx context.Context, req domain.CreateIngredientRequest, creatorID string) (domain.IngredientResponse, error)
		AddTranslation(ctx context.Context, ingredientID string, req domain.AddTranslationRequest) (domain.TranslationResponse, error)
		Delete(ctx context.Context, ingredientID string, requesterID string) error
		DeleteTranslation(ctx context.Context, ingredientID string, translationID string, requesterID string) error
		SeedPredefined(ctx context.Context, path string) (int, error)
	}

	// Resolution is the catalog entry a free-text ingredient name maps to.
	// TranslationID is set when the name matched a translation rather than
	// the canonical name.
	Resolution struct {
		IngredientID   uuid.UUID
		TranslationID  *uuid.UUID
		Name           string
		TranslatedName string
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

// Resolve maps name to a catalog entry. Matching ignores case and
// surrounding whitespace and tries, in order, canonical names, translations
// in language and translations in any language.
func (s *ingredientService) Resolve(ctx context.Context, name string, language string) (Resolution, error) {
	if normalize(name) == "" {
		return Resolution{}, domain.ErrIngredientNameRequired
	}

	ingredient, err := s.ingredientRepository.FindByCanonicalName(ctx, name)
	if err == nil {
		return Resolution{IngredientID: ingredient.ID, Name: ingredient.Name}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolution{}, err
	}

	languages := []string{""}
	if normalize(language) != "" {
		languages = []string{language, ""}
	}
	for _, lang := range languages {
		translation, err := s.ingredientRepository.FindTranslationByName(ctx, name, lang)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return Resolution{}, err
		}
		return s.fromTranslation(ctx, translation)
	}

	return Resolution{}, domain.ErrIngredientNotFound
}

func (s *ingredientService) fromTranslation(ctx context.Context, translation *entities.IngredientTranslation) (Resolution, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, translation.IngredientID.String())
	if err != nil {
		return Resolution{}, err
	}

	translationID := translation.ID
	return Resolution{
		IngredientID:   ingredient.ID,
		TranslationID:  &translationID,
		Name:           ingredient.Name,
		TranslatedName: translation.Name,
	}, nil
}

// ResolveMany resolves every name, keeping order. All names that fail to
// resolve are reported together in an UnknownIngredientsError. A blank name
// fails the whole call with its 1-based line number.
func (s *ingredientService) ResolveMany(ctx context.Context, names []string, language string) ([]Resolution, error) {
	for i, name := range names {
		if normalize(name) == "" {
			return nil, fmt.Errorf("ingredient line %d: %w", i+1, domain.ErrIngredientNameRequired)
		}
	}

	resolutions := make([]Resolution, len(names))
	var unknown []string
	seen := map[string]bool{}

	for i, name := range names {
		resolution, err := s.Resolve(ctx, name, language)
		switch {
		case err == nil:
			resolutions[i] = resolution
		case errors.Is(err, domain.ErrIngredientNotFound):
			key := strings.TrimSpace(name)
			if !seen[normalize(key)] {
				seen[normalize(key)] = true
				unknown = append(unknown, key)
			}
		default:
			return nil, err
		}
	}

	if len(unknown) > 0 {
		return nil, &domain.UnknownIngredientsError{Names: unknown}
	}
	return resolutions, nil
}

func (s *ingredientService) List(ctx context.Context, userID string) ([]domain.IngredientResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	ingredients, err := s.ingredientRepository.GetIngredientsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, toIngredientResponse(ingredient))
	}
	return response, nil
}

func (s *ingredientService) Create(ctx context.Context, req domain.CreateIngredientRequest, creatorID string) (domain.IngredientResponse, error) {
	creatorUUID, err := uuid.Parse(creatorID)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, domain.ErrIngredientNameRequired
	}

	ingredient := &entities.Ingredient{
		Name:      name,
		Language:  normalize(req.Language),
		CreatorID: &creatorUUID,
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) AddTranslation(ctx context.Context, ingredientID string, req domain.AddTranslationRequest) (domain.TranslationResponse, error) {
	ingredient, err := s.getIngredient(ctx, ingredientID)
	if err != nil {
		return domain.TranslationResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.TranslationResponse{}, domain.ErrIngredientNameRequired
	}

	language := normalize(req.Language)
	for _, existing := range ingredient.Translations {
		if normalize(existing.Language) == language {
			return domain.TranslationResponse{}, domain.ErrTranslationExists
		}
	}

	translation := &entities.IngredientTranslation{
		IngredientID: ingredient.ID,
		Language:     language,
		Name:         name,
	}
	if err := s.ingredientRepository.CreateTranslation(ctx, translation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TranslationResponse{}, domain.ErrTranslationExists
		}
		return domain.TranslationResponse{}, err
	}

	return toTranslationResponse(translation), nil
}

func (s *ingredientService) Delete(ctx context.Context, ingredientID string, requesterID string) error {
	ingredient, err := s.getIngredient(ctx, ingredientID)
	if err != nil {
		return err
	}
	if !canModify(ingredient, requesterID) {
		return domain.ErrIngredientNotDeletable
	}

	return s.ingredientRepository.DeleteIngredient(ctx, ingredient.ID.String())
}

func (s *ingredientService) DeleteTranslation(ctx context.Context, ingredientID string, translationID string, requesterID string) error {
	ingredient, err := s.getIngredient(ctx, ingredientID)
	if err != nil {
		return err
	}
	if !canModify(ingredient, requesterID) {
		return domain.ErrIngredientNotDeletable
	}

	if _, err := uuid.Parse(translationID); err != nil {
		return domain.ErrTranslationNotFound
	}
	translation, err := s.ingredientRepository.GetTranslation(ctx, ingredientID, translationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTranslationNotFound
		}
		return err
	}

	return s.ingredientRepository.DeleteTranslation(ctx, translation.ID.String())
}

// SeedPredefined loads the catalog file at path and inserts the entries and
// translations that are not present yet. It returns how many rows it added.
func (s *ingredientService) SeedPredefined(ctx context.Context, path string) (int, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read ingredient catalog: %w", err)
	}

	var predefined []domain.PredefinedIngredient
	if err := json.Unmarshal(file, &predefined); err != nil {
		return 0, fmt.Errorf("parse ingredient catalog: %w", err)
	}

	added := 0
	for _, entry := range predefined {
		if normalize(entry.Name) == "" {
			continue
		}

		ingredient, err := s.ingredientRepository.GetPredefinedIngredient(ctx, entry.Name, entry.Language)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ingredient = &entities.Ingredient{
				Name:     strings.TrimSpace(entry.Name),
				Language: normalize(entry.Language),
			}
			if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
				return added, err
			}
			added++
		} else if err != nil {
			return added, err
		}

		have := map[string]bool{}
		for _, t := range ingredient.Translations {
			have[normalize(t.Language)] = true
		}
		for _, t := range entry.Translations {
			language := normalize(t.Language)
			if have[language] || normalize(t.Name) == "" {
				continue
			}
			translation := &entities.IngredientTranslation{
				IngredientID: ingredient.ID,
				Language:     language,
				Name:         strings.TrimSpace(t.Name),
			}
			if err := s.ingredientRepository.CreateTranslation(ctx, translation); err != nil {
				return added, err
			}
			have[language] = true
			added++
		}
	}

	logger.L.Info("ingredient catalog seeded", zap.String("path", path), zap.Int("added", added))
	return added, nil
}

func (s *ingredientService) getIngredient(ctx context.Context, id string) (*entities.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

// canModify allows the creator to change an ingredient. Predefined
// ingredients have no creator and are open to everyone.
func canModify(ingredient *entities.Ingredient, requesterID string) bool {
	return ingredient.CreatorID == nil || ingredient.CreatorID.String() == requesterID
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	response := domain.IngredientResponse{
		ID:           ingredient.ID.String(),
		Name:         ingredient.Name,
		Language:     ingredient.Language,
		IsPredefined: ingredient.CreatorID == nil,
		Translations: make([]domain.TranslationResponse, 0, len(ingredient.Translations)),
	}
	if ingredient.CreatorID != nil {
		response.CreatorID = ingredient.CreatorID.String()
	}
	for _, t := range ingredient.Translations {
		response.Translations = append(response.Translations, toTranslationResponse(t))
	}
	return response
}

func toTranslationResponse(t *entities.IngredientTranslation) domain.TranslationResponse {
	return domain.TranslationResponse{
		ID:           t.ID.String(),
		IngredientID: t.IngredientID.String(),
		Language:     t.Language,
		Name:         t.Name,
	}
}
