package cookbook_test

import (
	"context"
	"encoding/json"
	"testing"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/entities"
	"Recipe-Box-Backend/internal/testutils"
	"Recipe-Box-Backend/pkg/cookbook"
	"Recipe-Box-Backend/pkg/ingredient"
	"Recipe-Box-Backend/pkg/recipe"
	"Recipe-Box-Backend/pkg/user"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CookbookServiceSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	recipes recipe.RecipeService
	service cookbook.CookbookService
	alice   *entities.User
	bob     *entities.User
	carol   *entities.User
}

func TestCookbookServiceSuite(t *testing.T) {
	suite.Run(t, new(CookbookServiceSuite))
}

func (s *CookbookServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutils.NewTestDB(s.T())

	userRepository := user.NewUserRepository(s.db)
	s.recipes = recipe.NewRecipeService(
		recipe.NewRecipeRepository(s.db),
		userRepository,
		ingredient.NewIngredientService(ingredient.NewIngredientRepository(s.db)),
		testutils.NewMemoryStorage(),
		nil,
		"http://localhost:8000",
	)
	s.service = cookbook.NewCookbookService(cookbook.NewCookbookRepository(s.db), userRepository, s.recipes)

	s.alice = testutils.CreateUser(s.T(), s.db, "alice")
	s.bob = testutils.CreateUser(s.T(), s.db, "bob")
	s.carol = testutils.CreateUser(s.T(), s.db, "carol")
	testutils.CreateIngredient(s.T(), s.db, "egg", "en", nil, nil)
}

func (s *CookbookServiceSuite) recipe(owner *entities.User, title string) domain.RecipeResponse {
	res, err := s.recipes.CreateRecipe(s.ctx, domain.CreateRecipeRequest{
		Title:        title,
		Ingredients:  []domain.RecipeIngredientRequest{{Name: "egg"}},
		Servings:     json.RawMessage(`2`),
		ServingsUnit: entities.ServingsUnitNumber,
	}, owner.ID.String())
	s.Require().NoError(err)
	return res
}

func (s *CookbookServiceSuite) cookbook(owner *entities.User) domain.CookbookResponse {
	res, err := s.service.CreateCookbook(s.ctx, domain.CreateCookbookRequest{Name: "Family classics"}, owner.ID.String())
	s.Require().NoError(err)
	return res
}

func (s *CookbookServiceSuite) chapter(cookbookID string, name string, position int) domain.ChapterResponse {
	res, err := s.service.AddChapter(s.ctx, cookbookID, s.alice.ID.String(), domain.AddChapterRequest{Name: name, Position: position})
	s.Require().NoError(err)
	return res
}

func (s *CookbookServiceSuite) place(cookbookID, chapterID, recipeID string, position int) domain.CookbookRecipeResponse {
	res, err := s.service.AddRecipeToChapter(s.ctx, cookbookID, chapterID, s.alice.ID.String(), domain.AddRecipeToChapterRequest{RecipeID: recipeID, Position: position})
	s.Require().NoError(err)
	return res
}

func (s *CookbookServiceSuite) TestCreatorIsFirstMember() {
	book := s.cookbook(s.alice)

	s.Equal("Family classics", book.Name)
	s.Require().Len(book.Members, 1)
	s.Equal("alice", book.Members[0].Username)

	list, err := s.service.ListCookbooks(s.ctx, s.alice.ID.String())
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.service.ListCookbooks(s.ctx, s.bob.ID.String())
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *CookbookServiceSuite) TestGetCookbookIsMembersOnly() {
	book := s.cookbook(s.alice)

	_, err := s.service.GetCookbook(s.ctx, book.ID, s.bob.ID.String())
	s.ErrorIs(err, domain.ErrCookbookNotFound)

	_, err = s.service.AddChapter(s.ctx, book.ID, s.bob.ID.String(), domain.AddChapterRequest{Name: "Soups"})
	s.ErrorIs(err, domain.ErrNotCookbookMember)

	_, err = s.service.AddChapter(s.ctx, "00000000-0000-0000-0000-000000000001", s.alice.ID.String(), domain.AddChapterRequest{Name: "Soups"})
	s.ErrorIs(err, domain.ErrCookbookNotFound)
}

func (s *CookbookServiceSuite) TestAddMemberIsIdempotent() {
	book := s.cookbook(s.alice)

	res, err := s.service.AddMember(s.ctx, book.ID, s.alice.ID.String(), domain.AddMemberRequest{Email: "Bob@example.com"})
	s.Require().NoError(err)
	s.Len(res.Members, 2)

	res, err = s.service.AddMember(s.ctx, book.ID, s.alice.ID.String(), domain.AddMemberRequest{UserID: s.bob.ID.String()})
	s.Require().NoError(err)
	s.Len(res.Members, 2)

	// bob can now invite others
	res, err = s.service.AddMember(s.ctx, book.ID, s.bob.ID.String(), domain.AddMemberRequest{UserID: s.carol.ID.String()})
	s.Require().NoError(err)
	s.Len(res.Members, 3)

	_, err = s.service.AddMember(s.ctx, book.ID, s.alice.ID.String(), domain.AddMemberRequest{})
	s.ErrorIs(err, domain.ErrMemberTargetRequired)
	_, err = s.service.AddMember(s.ctx, book.ID, s.alice.ID.String(), domain.AddMemberRequest{Email: "ghost@example.com"})
	s.ErrorIs(err, domain.ErrUserNotFound)

	var users int64
	s.db.Model(&entities.User{}).Count(&users)
	s.EqualValues(3, users)
}

func (s *CookbookServiceSuite) TestChapterPositions() {
	book := s.cookbook(s.alice)

	soups := s.chapter(book.ID, "Soups", 0)
	cakes := s.chapter(book.ID, "Cakes", 0)
	starters := s.chapter(book.ID, "Starters", 1)
	s.Equal(1, soups.Position)
	s.Equal(2, cakes.Position)
	s.Equal(1, starters.Position)

	got, err := s.service.GetCookbook(s.ctx, book.ID, s.alice.ID.String())
	s.Require().NoError(err)
	s.Require().Len(got.Chapters, 3)
	s.Equal([]string{"Starters", "Soups", "Cakes"}, []string{got.Chapters[0].Name, got.Chapters[1].Name, got.Chapters[2].Name})
	for i, c := range got.Chapters {
		s.Equal(i+1, c.Position)
	}
}

func (s *CookbookServiceSuite) TestPlacementPositionsStayGapFree() {
	book := s.cookbook(s.alice)
	chapter := s.chapter(book.ID, "Breakfast", 0)

	a := s.recipe(s.alice, "A")
	b := s.recipe(s.alice, "B")
	c := s.recipe(s.alice, "C")
	d := s.recipe(s.alice, "D")

	s.Equal(1, s.place(book.ID, chapter.ID, a.ID, 0).Position)
	s.Equal(2, s.place(book.ID, chapter.ID, b.ID, 0).Position)
	s.Equal(1, s.place(book.ID, chapter.ID, c.ID, 1).Position)
	s.Equal(4, s.place(book.ID, chapter.ID, d.ID, 99).Position)

	got, err := s.service.GetCookbook(s.ctx, book.ID, s.alice.ID.String())
	s.Require().NoError(err)
	placed := got.Chapters[0].Recipes
	s.Require().Len(placed, 4)

	var titles []string
	for i, p := range placed {
		s.Equal(i+1, p.Position)
		titles = append(titles, p.Title)
	}
	s.Equal([]string{"C", "A", "B", "D"}, titles)
	s.Empty(got.Unsorted)
}

func (s *CookbookServiceSuite) TestAddRecipeRequiresReadableRecipeAndOwnChapter() {
	book := s.cookbook(s.alice)
	other := s.cookbook(s.alice)
	chapter := s.chapter(book.ID, "Mains", 0)
	foreign := s.chapter(other.ID, "Elsewhere", 0)
	bobs := s.recipe(s.bob, "Bob's stew")

	_, err := s.service.AddRecipeToChapter(s.ctx, book.ID, chapter.ID, s.alice.ID.String(), domain.AddRecipeToChapterRequest{RecipeID: bobs.ID})
	s.ErrorIs(err, domain.ErrRecipeNotFound)

	s.Require().NoError(s.recipes.ShareRecipe(s.ctx, bobs.ID, s.bob.ID.String(), domain.ShareRecipeRequest{UserID: s.alice.ID.String()}))
	placed := s.place(book.ID, chapter.ID, bobs.ID, 0)
	s.Equal("Bob's stew", placed.Title)

	_, err = s.service.AddRecipeToChapter(s.ctx, book.ID, foreign.ID, s.alice.ID.String(), domain.AddRecipeToChapterRequest{RecipeID: bobs.ID})
	s.ErrorIs(err, domain.ErrChapterNotFound)
}

func (s *CookbookServiceSuite) TestFeedback() {
	book := s.cookbook(s.alice)
	chapter := s.chapter(book.ID, "Cakes", 0)
	placed := s.place(book.ID, chapter.ID, s.recipe(s.alice, "Cheesecake").ID, 0)

	rating := func(v float64) *float64 { return &v }
	comment := func(v string) *string { return &v }

	_, err := s.service.GiveFeedback(s.ctx, placed.ID, s.alice.ID.String(), domain.FeedbackRequest{})
	s.ErrorIs(err, domain.ErrFeedbackEmpty)
	_, err = s.service.GiveFeedback(s.ctx, placed.ID, s.alice.ID.String(), domain.FeedbackRequest{Comment: comment("   ")})
	s.ErrorIs(err, domain.ErrFeedbackEmpty)
	_, err = s.service.GiveFeedback(s.ctx, placed.ID, s.alice.ID.String(), domain.FeedbackRequest{Rating: rating(6)})
	s.ErrorIs(err, domain.ErrInvalidRating)
	_, err = s.service.GiveFeedback(s.ctx, placed.ID, s.bob.ID.String(), domain.FeedbackRequest{Rating: rating(3)})
	s.ErrorIs(err, domain.ErrNotCookbookMember)

	first, err := s.service.GiveFeedback(s.ctx, placed.ID, s.alice.ID.String(), domain.FeedbackRequest{Rating: rating(4)})
	s.Require().NoError(err)
	s.Equal("alice", first.User.Username)

	second, err := s.service.GiveFeedback(s.ctx, placed.ID, s.alice.ID.String(), domain.FeedbackRequest{Rating: rating(5), Comment: comment("Even better the next day")})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID, "feedback is updated in place")

	_, err = s.service.AddMember(s.ctx, book.ID, s.alice.ID.String(), domain.AddMemberRequest{UserID: s.bob.ID.String()})
	s.Require().NoError(err)
	_, err = s.service.GiveFeedback(s.ctx, placed.ID, s.bob.ID.String(), domain.FeedbackRequest{Rating: rating(3)})
	s.Require().NoError(err)

	list, err := s.service.ListFeedback(s.ctx, placed.ID, s.bob.ID.String())
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(5.0, *list[0].Rating)
	s.Equal("Even better the next day", *list[0].Comment)

	got, err := s.service.GetCookbook(s.ctx, book.ID, s.bob.ID.String())
	s.Require().NoError(err)
	s.Equal(4.0, got.Chapters[0].Recipes[0].Rating)

	_, err = s.service.ListFeedback(s.ctx, placed.ID, s.carol.ID.String())
	s.ErrorIs(err, domain.ErrNotCookbookMember)
	_, err = s.service.ListFeedback(s.ctx, "00000000-0000-0000-0000-000000000001", s.alice.ID.String())
	s.ErrorIs(err, domain.ErrPlacementNotFound)
}

func (s *CookbookServiceSuite) TestDeletingRecipeRemovesPlacement() {
	book := s.cookbook(s.alice)
	chapter := s.chapter(book.ID, "Cakes", 0)
	r := s.recipe(s.alice, "Cheesecake")
	s.place(book.ID, chapter.ID, r.ID, 0)

	s.Require().NoError(s.recipes.DeleteRecipe(s.ctx, r.ID, s.alice.ID.String()))

	got, err := s.service.GetCookbook(s.ctx, book.ID, s.alice.ID.String())
	s.Require().NoError(err)
	s.Empty(got.Chapters[0].Recipes)
}
