package domain

import "time"

var (
	MessageSuccessCreateCookbook     = "cookbook created successfully"
	MessageSuccessGetCookbooks       = "success get cookbooks"
	MessageSuccessGetCookbook        = "success get cookbook"
	MessageSuccessAddMember          = "member added successfully"
	MessageSuccessAddChapter         = "chapter added successfully"
	MessageSuccessAddRecipeToChapter = "recipe placed successfully"
	MessageSuccessGiveFeedback       = "feedback saved successfully"
	MessageSuccessGetFeedback        = "success get feedback"

	MessageFailedCreateCookbook     = "failed to create cookbook"
	MessageFailedGetCookbooks       = "failed to get cookbooks"
	MessageFailedGetCookbook        = "failed to get cookbook"
	MessageFailedAddMember          = "failed to add member"
	MessageFailedAddChapter         = "failed to add chapter"
	MessageFailedAddRecipeToChapter = "failed to place recipe"
	MessageFailedGiveFeedback       = "failed to save feedback"
	MessageFailedGetFeedback        = "failed to get feedback"

	ErrCookbookNotFound     = NewError(ErrNotFound, "cookbook not found")
	ErrChapterNotFound      = NewError(ErrNotFound, "chapter not found")
	ErrPlacementNotFound    = NewError(ErrNotFound, "cookbook recipe not found")
	ErrNotCookbookMember    = NewError(ErrForbidden, "user is not a member of this cookbook")
	ErrFeedbackEmpty        = NewError(ErrValidation, "feedback needs a rating or a comment")
	ErrInvalidRating        = NewError(ErrValidation, "rating must be between 1 and 5")
	ErrMemberTargetRequired = NewError(ErrValidation, "user_id or email is required")
)

type (
	CreateCookbookRequest struct {
		Name        string `json:"name" validate:"required,max=255"`
		Description string `json:"description" validate:"max=5000"`
		ImageURL    string `json:"image_url" validate:"omitempty,url"`
	}

	AddMemberRequest struct {
		UserID string `json:"user_id" validate:"omitempty,uuid"`
		Email  string `json:"email" validate:"omitempty,email"`
	}

	AddChapterRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		Position int    `json:"position" validate:"gte=0"`
	}

	AddRecipeToChapterRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
		Position int    `json:"position" validate:"gte=0"`
	}

	FeedbackRequest struct {
		Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
		Comment *string  `json:"comment" validate:"omitempty,max=5000"`
	}

	ChapterResponse struct {
		ID       string                   `json:"id"`
		Name     string                   `json:"name"`
		Position int                      `json:"position"`
		Recipes  []CookbookRecipeResponse `json:"recipes"`
	}

	CookbookRecipeResponse struct {
		ID        string  `json:"id"`
		RecipeID  string  `json:"recipe_id"`
		ChapterID string  `json:"chapter_id,omitempty"`
		Title     string  `json:"title"`
		Position  int     `json:"position"`
		Rating    float64 `json:"average_rating,omitempty"`
	}

	CookbookResponse struct {
		ID          string                   `json:"id"`
		Name        string                   `json:"name"`
		Description string                   `json:"description,omitempty"`
		ImageURL    string                   `json:"image_url,omitempty"`
		Members     []Owner                  `json:"members"`
		Chapters    []ChapterResponse        `json:"chapters"`
		Unsorted    []CookbookRecipeResponse `json:"unsorted_recipes"`
		CreatedAt   time.Time                `json:"created_at"`
	}

	FeedbackResponse struct {
		ID               string    `json:"id"`
		CookbookRecipeID string    `json:"cookbook_recipe_id"`
		User             Owner     `json:"user"`
		Rating           *float64  `json:"rating"`
		Comment          *string   `json:"comment"`
		CreatedAt        time.Time `json:"created_at"`
	}
)
