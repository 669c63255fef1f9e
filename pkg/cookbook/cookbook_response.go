package cookbook

import (
	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
)

func toCookbookResponse(cookbook *entities.Cookbook) domain.CookbookResponse {
	response := domain.CookbookResponse{
		ID:          cookbook.ID.String(),
		Name:        cookbook.Name,
		Description: cookbook.Description,
		ImageURL:    cookbook.ImageURL,
		Members:     make([]domain.Owner, 0, len(cookbook.Members)),
		Chapters:    make([]domain.ChapterResponse, 0, len(cookbook.Chapters)),
		Unsorted:    []domain.CookbookRecipeResponse{},
		CreatedAt:   cookbook.CreatedAt,
	}

	for _, member := range cookbook.Members {
		response.Members = append(response.Members, domain.Owner{
			ID:       member.ID.String(),
			Username: member.Username,
			Email:    member.Email,
		})
	}

	// chapters and placements arrive ordered by position
	index := make(map[string]int, len(cookbook.Chapters))
	for i, chapter := range cookbook.Chapters {
		index[chapter.ID.String()] = i
		response.Chapters = append(response.Chapters, domain.ChapterResponse{
			ID:       chapter.ID.String(),
			Name:     chapter.Name,
			Position: chapter.Position,
			Recipes:  []domain.CookbookRecipeResponse{},
		})
	}
	for _, placement := range cookbook.Recipes {
		item := toPlacementResponse(placement)
		if i, ok := index[item.ChapterID]; ok {
			response.Chapters[i].Recipes = append(response.Chapters[i].Recipes, item)
			continue
		}
		response.Unsorted = append(response.Unsorted, item)
	}

	return response
}

func toPlacementResponse(placement *entities.CookbookRecipe) domain.CookbookRecipeResponse {
	response := domain.CookbookRecipeResponse{
		ID:       placement.ID.String(),
		RecipeID: placement.RecipeID.String(),
		Position: placement.Position,
		Rating:   averageRating(placement.Feedback),
	}
	if placement.ChapterID != nil {
		response.ChapterID = placement.ChapterID.String()
	}
	if placement.Recipe != nil {
		response.Title = placement.Recipe.Title
	}
	return response
}

func averageRating(feedback []*entities.CookbookRecipeFeedback) float64 {
	var sum float64
	var n int
	for _, f := range feedback {
		if f.Rating != nil {
			sum += *f.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func toFeedbackResponse(feedback *entities.CookbookRecipeFeedback) domain.FeedbackResponse {
	response := domain.FeedbackResponse{
		ID:               feedback.ID.String(),
		CookbookRecipeID: feedback.CookbookRecipeID.String(),
		User:             domain.Owner{ID: feedback.UserID.String()},
		Rating:           feedback.Rating,
		Comment:          feedback.Comment,
		CreatedAt:        feedback.CreatedAt,
	}
	if feedback.User != nil {
		response.User.Username = feedback.User.Username
		response.User.Email = feedback.User.Email
	}
	return response
}
