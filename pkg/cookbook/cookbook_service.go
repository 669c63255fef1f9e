package cookbook

import (
	"context"
	"errors"
	"strings"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/pkg/recipe"
	"Recipe-Box-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CookbookService interface {
		CreateCookbook(ctx context.Context, req domain.CreateCookbookRequest, userID string) (domain.CookbookResponse, error)
		GetCookbook(ctx context.Context, cookbookID string, userID string) (domain.CookbookResponse, error)
		ListCookbooks(ctx context.Context, userID string) ([]domain.CookbookResponse, error)
		AddMember(ctx context.Context, cookbookID string, userID string, req domain.AddMemberRequest) (domain.CookbookResponse, error)
		AddChapter(ctx context.Context, cookbookID string, userID string, req domain.AddChapterRequest) (domain.ChapterResponse, error)
		AddRecipeToChapter(ctx context.Context, cookbookID string, chapterID string, userID string, req domain.AddRecipeToChapterRequest) (domain.CookbookRecipeResponse, error)
		GiveFeedback(ctx context.Context, placementID string, userID string, req domain.FeedbackRequest) (domain.FeedbackResponse, error)
		ListFeedback(ctx context.Context, placementID string, userID string) ([]domain.FeedbackResponse, error)
	}

	cookbookService struct {
		cookbookRepository CookbookRepository
		userRepository     user.UserRepository
		recipeService      recipe.RecipeService
	}
)

func NewCookbookService(cookbookRepository CookbookRepository, userRepository user.UserRepository, recipeService recipe.RecipeService) CookbookService {
	return &cookbookService{
		cookbookRepository: cookbookRepository,
		userRepository:     userRepository,
		recipeService:      recipeService,
	}
}

func (s *cookbookService) CreateCookbook(ctx context.Context, req domain.CreateCookbookRequest, userID string) (domain.CookbookResponse, error) {
	creator, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.CookbookResponse{}, err
	}

	cookbook := &entities.Cookbook{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Members:     []*entities.User{creator},
	}
	if err := s.cookbookRepository.CreateCookbook(ctx, cookbook); err != nil {
		return domain.CookbookResponse{}, err
	}

	return s.loadCookbook(ctx, cookbook.ID.String())
}

// GetCookbook hides cookbooks the caller is not a member of.
func (s *cookbookService) GetCookbook(ctx context.Context, cookbookID string, userID string) (domain.CookbookResponse, error) {
	if _, err := uuid.Parse(cookbookID); err != nil {
		return domain.CookbookResponse{}, domain.ErrCookbookNotFound
	}

	member, err := s.cookbookRepository.IsMember(ctx, cookbookID, userID)
	if err != nil {
		return domain.CookbookResponse{}, err
	}
	if !member {
		return domain.CookbookResponse{}, domain.ErrCookbookNotFound
	}
	return s.loadCookbook(ctx, cookbookID)
}

func (s *cookbookService) ListCookbooks(ctx context.Context, userID string) ([]domain.CookbookResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	cookbooks, err := s.cookbookRepository.GetCookbooksForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.CookbookResponse, 0, len(cookbooks))
	for _, cookbook := range cookbooks {
		response = append(response, toCookbookResponse(cookbook))
	}
	return response, nil
}

func (s *cookbookService) AddMember(ctx context.Context, cookbookID string, userID string, req domain.AddMemberRequest) (domain.CookbookResponse, error) {
	if err := s.requireMember(ctx, cookbookID, userID, domain.ErrCookbookNotFound); err != nil {
		return domain.CookbookResponse{}, err
	}

	var (
		member *entities.User
		err    error
	)
	switch {
	case req.UserID != "":
		member, err = s.getUser(ctx, req.UserID)
	case req.Email != "":
		member, err = s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = domain.ErrUserNotFound
		}
	default:
		err = domain.ErrMemberTargetRequired
	}
	if err != nil {
		return domain.CookbookResponse{}, err
	}

	cookbook := &entities.Cookbook{ID: uuid.MustParse(cookbookID)}
	if err := s.cookbookRepository.AddMember(ctx, cookbook, member); err != nil {
		return domain.CookbookResponse{}, err
	}
	return s.loadCookbook(ctx, cookbookID)
}

func (s *cookbookService) AddChapter(ctx context.Context, cookbookID string, userID string, req domain.AddChapterRequest) (domain.ChapterResponse, error) {
	if err := s.requireMember(ctx, cookbookID, userID, domain.ErrCookbookNotFound); err != nil {
		return domain.ChapterResponse{}, err
	}

	chapter := &entities.CookbookChapter{
		CookbookID: uuid.MustParse(cookbookID),
		Name:       strings.TrimSpace(req.Name),
		Position:   req.Position,
	}
	if err := s.cookbookRepository.CreateChapter(ctx, chapter); err != nil {
		return domain.ChapterResponse{}, err
	}

	return domain.ChapterResponse{
		ID:       chapter.ID.String(),
		Name:     chapter.Name,
		Position: chapter.Position,
		Recipes:  []domain.CookbookRecipeResponse{},
	}, nil
}

// AddRecipeToChapter places a recipe the caller can read into a chapter of
// the cookbook.
func (s *cookbookService) AddRecipeToChapter(ctx context.Context, cookbookID string, chapterID string, userID string, req domain.AddRecipeToChapterRequest) (domain.CookbookRecipeResponse, error) {
	if err := s.requireMember(ctx, cookbookID, userID, domain.ErrCookbookNotFound); err != nil {
		return domain.CookbookRecipeResponse{}, err
	}

	if _, err := uuid.Parse(chapterID); err != nil {
		return domain.CookbookRecipeResponse{}, domain.ErrChapterNotFound
	}
	chapter, err := s.cookbookRepository.GetChapter(ctx, cookbookID, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CookbookRecipeResponse{}, domain.ErrChapterNotFound
		}
		return domain.CookbookRecipeResponse{}, err
	}

	readable, err := s.recipeService.ReadableRecipe(ctx, req.RecipeID, userID)
	if err != nil {
		return domain.CookbookRecipeResponse{}, err
	}

	chapterUUID := chapter.ID
	placement := &entities.CookbookRecipe{
		CookbookID: chapter.CookbookID,
		ChapterID:  &chapterUUID,
		RecipeID:   readable.ID,
		Position:   req.Position,
	}
	if err := s.cookbookRepository.PlaceRecipe(ctx, placement); err != nil {
		return domain.CookbookRecipeResponse{}, err
	}

	placement.Recipe = readable
	return toPlacementResponse(placement), nil
}

// GiveFeedback stores the caller's rating or comment on a placement,
// replacing any earlier feedback of theirs.
func (s *cookbookService) GiveFeedback(ctx context.Context, placementID string, userID string, req domain.FeedbackRequest) (domain.FeedbackResponse, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return domain.FeedbackResponse{}, domain.ErrInvalidRating
	}
	comment := req.Comment
	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	if req.Rating == nil && comment == nil {
		return domain.FeedbackResponse{}, domain.ErrFeedbackEmpty
	}

	placement, err := s.memberPlacement(ctx, placementID, userID)
	if err != nil {
		return domain.FeedbackResponse{}, err
	}

	feedback := &entities.CookbookRecipeFeedback{
		CookbookRecipeID: placement.ID,
		UserID:           uuid.MustParse(userID),
		Rating:           req.Rating,
		Comment:          comment,
	}
	if err := s.cookbookRepository.UpsertFeedback(ctx, feedback); err != nil {
		return domain.FeedbackResponse{}, err
	}
	return toFeedbackResponse(feedback), nil
}

func (s *cookbookService) ListFeedback(ctx context.Context, placementID string, userID string) ([]domain.FeedbackResponse, error) {
	placement, err := s.memberPlacement(ctx, placementID, userID)
	if err != nil {
		return nil, err
	}

	feedback, err := s.cookbookRepository.GetFeedback(ctx, placement.ID.String())
	if err != nil {
		return nil, err
	}

	response := make([]domain.FeedbackResponse, 0, len(feedback))
	for _, f := range feedback {
		response = append(response, toFeedbackResponse(f))
	}
	return response, nil
}

// memberPlacement loads a placement whose cookbook has userID as a member.
func (s *cookbookService) memberPlacement(ctx context.Context, placementID string, userID string) (*entities.CookbookRecipe, error) {
	if _, err := uuid.Parse(placementID); err != nil {
		return nil, domain.ErrPlacementNotFound
	}

	placement, err := s.cookbookRepository.GetPlacement(ctx, placementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlacementNotFound
		}
		return nil, err
	}

	if err := s.requireMember(ctx, placement.CookbookID.String(), userID, domain.ErrPlacementNotFound); err != nil {
		return nil, err
	}
	return placement, nil
}

// requireMember fails with notFound for malformed or unknown cookbooks and
// with ErrNotCookbookMember when the cookbook exists but userID is not in it.
func (s *cookbookService) requireMember(ctx context.Context, cookbookID string, userID string, notFound error) error {
	if _, err := uuid.Parse(cookbookID); err != nil {
		return notFound
	}

	member, err := s.cookbookRepository.IsMember(ctx, cookbookID, userID)
	if err != nil {
		return err
	}
	if member {
		return nil
	}

	if _, err := s.cookbookRepository.GetCookbookByID(ctx, cookbookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return domain.ErrNotCookbookMember
}

func (s *cookbookService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return found, nil
}

func (s *cookbookService) loadCookbook(ctx context.Context, cookbookID string) (domain.CookbookResponse, error) {
	cookbook, err := s.cookbookRepository.GetCookbookByID(ctx, cookbookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CookbookResponse{}, domain.ErrCookbookNotFound
		}
		return domain.CookbookResponse{}, err
	}
	return toCookbookResponse(cookbook), nil
}
