package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"Recipe-Box-Backend/internal/api/handlers"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/internal/api/routes"
	"Recipe-Box-Backend/internal/middleware"
	"Recipe-Box-Backend/internal/testutils"
	"Recipe-Box-Backend/internal/utils"
	"Recipe-Box-Backend/pkg/cookbook"
	"Recipe-Box-Backend/pkg/ingredient"
	"Recipe-Box-Backend/pkg/jwt"
	"Recipe-Box-Backend/pkg/recipe"
	"Recipe-Box-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type HandlerSuite struct {
	suite.Suite
	app   *fiber.App
	db    *gorm.DB
	files *testutils.MemoryStorage
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	utils.InitValidator()
	s.db = testutils.NewTestDB(s.T())
	s.files = testutils.NewMemoryStorage()

	jwtService, err := jwt.NewJWTService(jwt.Config{Secret: "handler-test-secret"})
	s.Require().NoError(err)

	userRepository := user.NewUserRepository(s.db)
	userService := user.NewUserService(userRepository, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredient.NewIngredientRepository(s.db))
	recipeService := recipe.NewRecipeService(
		recipe.NewRecipeRepository(s.db),
		userRepository,
		ingredientService,
		s.files,
		nil,
		"http://localhost:8000",
	)
	cookbookService := cookbook.NewCookbookService(cookbook.NewCookbookRepository(s.db), userRepository, recipeService)

	s.app = fiber.New(fiber.Config{ErrorHandler: presenters.FiberErrorHandler})
	routesConfig := routes.Config{
		App:               s.app,
		UserHandler:       handlers.NewUserHandler(userService, utils.Validate),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService, utils.Validate),
		IngredientHandler: handlers.NewIngredientHandler(ingredientService, utils.Validate),
		CookbookHandler:   handlers.NewCookbookHandler(cookbookService, utils.Validate),
		Middleware:        middleware.NewMiddleware("http://localhost:3000"),
		UserService:       userService,
	}
	routesConfig.Setup()

	testutils.CreateIngredient(s.T(), s.db, "egg", "en", nil, map[string]string{"de": "Ei"})
	testutils.CreateIngredient(s.T(), s.db, "flour", "en", nil, map[string]string{"de": "Mehl"})
}

func (s *HandlerSuite) do(req *http.Request) *http.Response {
	res, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return res
}

func (s *HandlerSuite) sendJSON(method, path, token string, payload any) (*http.Response, []byte) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res := s.do(req)
	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	return res, raw
}

func (s *HandlerSuite) envelope(raw []byte) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	return env
}

func (s *HandlerSuite) dataID(raw []byte) string {
	var data struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &data))
	s.Require().NotEmpty(data.ID)
	return data.ID
}

func (s *HandlerSuite) register(username string) string {
	res, raw := s.sendJSON(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse battery",
	})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))

	var body struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(raw, &body))
	s.Require().NotEmpty(body.AccessToken)
	return body.AccessToken
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func (s *HandlerSuite) postRecipe(token string, fields map[string]string, files ...formFile) (*http.Response, []byte) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for key, value := range fields {
		s.Require().NoError(w.WriteField(key, value))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		s.Require().NoError(err)
		_, err = part.Write(f.content)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	res := s.do(req)
	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	return res, raw
}

func pancakeFields() map[string]string {
	return map[string]string{
		"title":         "Pancakes",
		"ingredients":   `[{"name":"egg","quantity":2,"unit":"pcs"},{"name":"Mehl","quantity":200,"unit":"g"}]`,
		"instructions":  "Mix and fry.",
		"servings":      `4`,
		"servings_unit": "NUMBER",
		"prep_time":     "10",
		"cook_time":     "15",
		"categories":    `["Breakfast"]`,
		"language":      "de",
	}
}

func (s *HandlerSuite) TestPing() {
	res, raw := s.sendJSON(http.MethodGet, "/api/ping", "", nil)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(string(raw), "pong")
}

func (s *HandlerSuite) TestUnknownRouteUsesEnvelope() {
	res, raw := s.sendJSON(http.MethodGet, "/api/nothing-here", "", nil)
	s.Equal(http.StatusNotFound, res.StatusCode)
	s.False(s.envelope(raw).Status)
}

func (s *HandlerSuite) TestRegisterLoginAndMe() {
	token := s.register("alice")

	res, raw := s.sendJSON(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "alice2",
		"email":    "ALICE@example.com",
		"password": "another password",
	})
	s.Equal(http.StatusBadRequest, res.StatusCode, "duplicate email")
	s.False(s.envelope(raw).Status)

	res, _ = s.sendJSON(http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "alice",
		"password":   "wrong password",
	})
	s.Equal(http.StatusBadRequest, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/auth/login", "", fiber.Map{
		"identifier": "alice@example.com",
		"password":   "correct horse battery",
	})
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	s.Require().NoError(json.Unmarshal(raw, &login))
	s.Equal("bearer", login.TokenType)

	for _, tok := range []string{token, login.AccessToken} {
		res, raw = s.sendJSON(http.MethodGet, "/api/users/me", tok, nil)
		s.Require().Equal(http.StatusOK, res.StatusCode)
		var me struct {
			Username string `json:"username"`
		}
		s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &me))
		s.Equal("alice", me.Username)
	}
}

func (s *HandlerSuite) TestRegisterValidation() {
	res, raw := s.sendJSON(http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "al",
		"email":    "not-an-email",
		"password": "short",
	})
	s.Equal(http.StatusBadRequest, res.StatusCode)
	s.NotEmpty(s.envelope(raw).Error)
}

func (s *HandlerSuite) TestAuthRequired() {
	res, _ := s.sendJSON(http.MethodGet, "/api/users/me", "", nil)
	s.Equal(http.StatusUnauthorized, res.StatusCode)
	s.Equal("Bearer", res.Header.Get(fiber.HeaderWWWAuthenticate))

	res, _ = s.sendJSON(http.MethodGet, "/api/recipes", "garbage.token.value", nil)
	s.Equal(http.StatusUnauthorized, res.StatusCode)
	s.Equal("Bearer", res.Header.Get(fiber.HeaderWWWAuthenticate))
}

func (s *HandlerSuite) TestCreateRecipeMultipart() {
	token := s.register("alice")

	res, raw := s.postRecipe(token, pancakeFields(), formFile{field: "thumbnail", filename: "cover.png", content: []byte("png")})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))

	var created struct {
		ID           string `json:"id"`
		ThumbnailURL string `json:"thumbnail_url"`
		TotalTime    int    `json:"total_time"`
		Ingredients  []struct {
			Name           string `json:"name"`
			TranslatedName string `json:"translated_name"`
		} `json:"ingredients"`
		Categories []string `json:"categories"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &created))
	s.Equal(25, created.TotalTime)
	s.Contains(created.ThumbnailURL, "http://files.test/recipes/")
	s.Require().Len(created.Ingredients, 2)
	s.Equal("egg", created.Ingredients[0].Name)
	s.Equal("flour", created.Ingredients[1].Name)
	s.Equal("Mehl", created.Ingredients[1].TranslatedName)
	s.Equal([]string{"Breakfast"}, created.Categories)
	s.Equal(1, s.files.Len())

	res, raw = s.sendJSON(http.MethodGet, "/api/recipes", token, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var list []struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &list))
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
}

func (s *HandlerSuite) TestCreateRecipeUnknownIngredients() {
	token := s.register("alice")
	fields := pancakeFields()
	fields["ingredients"] = `[{"name":"egg"},{"name":"dragonfruit"},{"name":"unobtainium"}]`

	res, raw := s.postRecipe(token, fields, formFile{field: "thumbnail", filename: "cover.png", content: []byte("png")})
	s.Require().Equal(http.StatusBadRequest, res.StatusCode)

	var data struct {
		Unknown []string `json:"unknown_ingredients"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &data))
	s.ElementsMatch([]string{"dragonfruit", "unobtainium"}, data.Unknown)
	s.Zero(s.files.Len(), "nothing is stored for a rejected draft")
}

func (s *HandlerSuite) TestCreateRecipeRejectsMalformedFields() {
	token := s.register("alice")

	cases := map[string]func(map[string]string){
		"ingredients not json":  func(f map[string]string) { f["ingredients"] = "egg, flour" },
		"no ingredients":        func(f map[string]string) { f["ingredients"] = "[]" },
		"negative time":         func(f map[string]string) { f["prep_time"] = "-5" },
		"time not a number":     func(f map[string]string) { f["cook_time"] = "soon" },
		"unknown unit":          func(f map[string]string) { f["servings_unit"] = "BUCKET" },
		"servings mismatch":     func(f map[string]string) { f["servings_unit"] = "SPRINGFORM" },
		"servings without unit": func(f map[string]string) { delete(f, "servings_unit") },
		"categories not json":   func(f map[string]string) { f["categories"] = "{" },
		"missing title":         func(f map[string]string) { delete(f, "title") },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			fields := pancakeFields()
			mutate(fields)
			res, raw := s.postRecipe(token, fields)
			s.Equal(http.StatusBadRequest, res.StatusCode, string(raw))
		})
	}

	res, _ := s.sendJSON(http.MethodPost, "/api/recipes", token, fiber.Map{"title": "json body"})
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *HandlerSuite) TestCreateRecipeWithOnlyRequiredFields() {
	token := s.register("alice")

	res, raw := s.postRecipe(token, map[string]string{
		"title":        "Boiled egg",
		"ingredients":  `[{"name":"egg"}]`,
		"instructions": "Boil for seven minutes.",
	})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))

	var created struct {
		ID           string          `json:"id"`
		Servings     json.RawMessage `json:"servings"`
		ServingsUnit *string         `json:"servings_unit"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &created))
	s.JSONEq(`null`, string(created.Servings))
	s.Nil(created.ServingsUnit)

	res, raw = s.sendJSON(http.MethodGet, "/api/recipes/"+created.ID, token, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode, string(raw))
}

func (s *HandlerSuite) TestRecipeSharingFlow() {
	alice := s.register("alice")
	bob := s.register("bob")

	res, raw := s.postRecipe(alice, pancakeFields())
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	recipeID := s.dataID(raw)

	res, _ = s.sendJSON(http.MethodGet, "/api/recipes/"+recipeID, bob, nil)
	s.Equal(http.StatusNotFound, res.StatusCode)

	res, _ = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/share", bob, fiber.Map{"email": "alice@example.com"})
	s.Equal(http.StatusForbidden, res.StatusCode)

	res, _ = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/share", alice, fiber.Map{"email": "nobody@example.com"})
	s.Equal(http.StatusNotFound, res.StatusCode)

	res, _ = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/share", alice, fiber.Map{})
	s.Equal(http.StatusBadRequest, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/share", alice, fiber.Map{"email": "bob@example.com"})
	s.Require().Equal(http.StatusOK, res.StatusCode, string(raw))

	res, raw = s.sendJSON(http.MethodGet, "/api/recipes/shared", bob, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var shared []struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &shared))
	s.Require().Len(shared, 1)
	s.Equal(recipeID, shared[0].ID)

	res, _ = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/cooked", bob, nil)
	s.Equal(http.StatusForbidden, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/copy", bob, nil)
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	copyID := s.dataID(raw)
	s.NotEqual(recipeID, copyID)

	res, _ = s.sendJSON(http.MethodDelete, "/api/recipes/"+recipeID, bob, nil)
	s.Equal(http.StatusForbidden, res.StatusCode)

	res, _ = s.sendJSON(http.MethodDelete, "/api/recipes/"+recipeID, alice, nil)
	s.Equal(http.StatusOK, res.StatusCode)

	res, _ = s.sendJSON(http.MethodGet, "/api/recipes/"+copyID, bob, nil)
	s.Equal(http.StatusOK, res.StatusCode, "copies survive the original")
}

func (s *HandlerSuite) TestMarkAsCooked() {
	token := s.register("alice")
	res, raw := s.postRecipe(token, pancakeFields())
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	recipeID := s.dataID(raw)

	res, raw = s.sendJSON(http.MethodPost, "/api/recipes/"+recipeID+"/cooked", token, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var cooked struct {
		LastCookedAt *string `json:"last_cooked_at"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &cooked))
	s.NotNil(cooked.LastCookedAt)

	res, _ = s.sendJSON(http.MethodPost, "/api/recipes/not-a-uuid/cooked", token, nil)
	s.Equal(http.StatusNotFound, res.StatusCode)
}

func (s *HandlerSuite) TestIngredientEndpoints() {
	alice := s.register("alice")
	bob := s.register("bob")

	res, raw := s.sendJSON(http.MethodPost, "/api/ingredients", alice, fiber.Map{"name": "Quark", "language": "DE"})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	ingredientID := s.dataID(raw)

	res, raw = s.sendJSON(http.MethodPost, "/api/ingredients/"+ingredientID+"/translations", alice, fiber.Map{"name": "curd cheese", "language": "en"})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	translationID := s.dataID(raw)

	res, _ = s.sendJSON(http.MethodPost, "/api/ingredients/"+ingredientID+"/translations", alice, fiber.Map{"name": "quark", "language": "en"})
	s.Equal(http.StatusConflict, res.StatusCode)

	res, raw = s.sendJSON(http.MethodGet, "/api/ingredients", bob, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var visible []struct {
		Name string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &visible))
	for _, ing := range visible {
		s.NotEqual("Quark", ing.Name, "other users' ingredients are private")
	}

	res, _ = s.sendJSON(http.MethodDelete, "/api/ingredients/"+ingredientID+"/translations/"+translationID, bob, nil)
	s.Equal(http.StatusForbidden, res.StatusCode)

	res, _ = s.sendJSON(http.MethodDelete, "/api/ingredients/"+ingredientID+"/translations/"+translationID, alice, nil)
	s.Equal(http.StatusOK, res.StatusCode)

	res, _ = s.sendJSON(http.MethodDelete, "/api/ingredients/"+ingredientID, alice, nil)
	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *HandlerSuite) TestCookbookFlow() {
	alice := s.register("alice")
	bob := s.register("bob")

	res, raw := s.postRecipe(alice, pancakeFields())
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	recipeID := s.dataID(raw)

	res, raw = s.sendJSON(http.MethodPost, "/api/cookbooks", alice, fiber.Map{"name": "Family"})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	cookbookID := s.dataID(raw)

	res, _ = s.sendJSON(http.MethodGet, "/api/cookbooks/"+cookbookID, bob, nil)
	s.Equal(http.StatusNotFound, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/cookbooks/"+cookbookID+"/chapters", alice, fiber.Map{"name": "Breakfast"})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	chapterID := s.dataID(raw)

	res, raw = s.sendJSON(http.MethodPost, "/api/cookbooks/"+cookbookID+"/chapters/"+chapterID+"/recipes", alice, fiber.Map{"recipe_id": recipeID})
	s.Require().Equal(http.StatusCreated, res.StatusCode, string(raw))
	placementID := s.dataID(raw)

	res, _ = s.sendJSON(http.MethodPost, "/api/cookbooks/recipes/"+placementID+"/feedback", bob, fiber.Map{"rating": 5})
	s.Equal(http.StatusForbidden, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/cookbooks/"+cookbookID+"/members", alice, fiber.Map{"email": "bob@example.com"})
	s.Require().Equal(http.StatusOK, res.StatusCode, string(raw))

	res, _ = s.sendJSON(http.MethodPost, "/api/cookbooks/recipes/"+placementID+"/feedback", bob, fiber.Map{"rating": 9})
	s.Equal(http.StatusBadRequest, res.StatusCode)

	res, _ = s.sendJSON(http.MethodPost, "/api/cookbooks/recipes/"+placementID+"/feedback", bob, fiber.Map{})
	s.Equal(http.StatusBadRequest, res.StatusCode)

	res, raw = s.sendJSON(http.MethodPost, "/api/cookbooks/recipes/"+placementID+"/feedback", bob, fiber.Map{"rating": 4, "comment": "Fluffy"})
	s.Require().Equal(http.StatusOK, res.StatusCode, string(raw))

	res, raw = s.sendJSON(http.MethodGet, "/api/cookbooks/recipes/"+placementID+"/feedback", alice, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var feedback []struct {
		Rating  *float64 `json:"rating"`
		Comment *string  `json:"comment"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &feedback))
	s.Require().Len(feedback, 1)
	s.Equal(4.0, *feedback[0].Rating)
	s.Equal("Fluffy", *feedback[0].Comment)

	res, raw = s.sendJSON(http.MethodGet, "/api/cookbooks", bob, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var books []struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &books))
	s.Require().Len(books, 1)
	s.Equal(cookbookID, books[0].ID)

	res, raw = s.sendJSON(http.MethodGet, "/api/cookbooks/"+cookbookID, bob, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var book struct {
		Members  []struct{ Username string } `json:"members"`
		Chapters []struct {
			Recipes []struct {
				RecipeID string `json:"recipe_id"`
			} `json:"recipes"`
		} `json:"chapters"`
	}
	s.Require().NoError(json.Unmarshal(s.envelope(raw).Data, &book))
	s.Len(book.Members, 2)
	s.Require().Len(book.Chapters, 1)
	s.Require().Len(book.Chapters[0].Recipes, 1)
	s.Equal(recipeID, book.Chapters[0].Recipes[0].RecipeID)
}
