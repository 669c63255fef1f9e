package routes

import (
	"Recipe-Box-Backend/internal/api/handlers"
	"Recipe-Box-Backend/internal/middleware"
	"Recipe-Box-Backend/internal/utils/metrics"
	"Recipe-Box-Backend/internal/utils/storage"
	"Recipe-Box-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	CookbookHandler   handlers.CookbookHandler
	Middleware        middleware.Middleware
	UserService       user.UserService
	Metrics           *metrics.Metrics
	// UploadDir is served under /uploads when set.
	UploadDir string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	if c.Metrics != nil {
		c.App.Use(c.Metrics.Middleware())
		c.App.Get("/metrics", c.Metrics.Handler())
	}
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Recipes()
	c.Ingredients()
	c.Cookbooks()
	c.Uploads()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	auth.Post("/register", c.UserHandler.Register)
	auth.Post("/login", c.UserHandler.Login)
}

func (c *Config) User() {
	users := c.App.Group("/api/users", c.Middleware.AuthMiddleware(c.UserService))
	users.Get("/me", c.UserHandler.Me)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes", c.Middleware.AuthMiddleware(c.UserService))

	// static segments before :id
	recipes.Get("/shared", c.RecipeHandler.GetSharedRecipes)

	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/share", c.RecipeHandler.ShareRecipe)
	recipes.Post("/:id/copy", c.RecipeHandler.CopyRecipe)
	recipes.Post("/:id/cooked", c.RecipeHandler.MarkAsCooked)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients", c.Middleware.AuthMiddleware(c.UserService))
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Post("", c.IngredientHandler.CreateIngredient)
	ingredients.Post("/:id/translations", c.IngredientHandler.AddTranslation)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
	ingredients.Delete("/:id/translations/:translationId", c.IngredientHandler.DeleteTranslation)
}

func (c *Config) Cookbooks() {
	cookbooks := c.App.Group("/api/cookbooks", c.Middleware.AuthMiddleware(c.UserService))

	cookbooks.Get("/recipes/:placementId/feedback", c.CookbookHandler.GetFeedback)
	cookbooks.Post("/recipes/:placementId/feedback", c.CookbookHandler.GiveFeedback)

	cookbooks.Get("", c.CookbookHandler.GetCookbooks)
	cookbooks.Post("", c.CookbookHandler.CreateCookbook)
	cookbooks.Get("/:id", c.CookbookHandler.GetCookbook)
	cookbooks.Post("/:id/members", c.CookbookHandler.AddMember)
	cookbooks.Post("/:id/chapters", c.CookbookHandler.AddChapter)
	cookbooks.Post("/:id/chapters/:chapterId/recipes", c.CookbookHandler.AddRecipeToChapter)
}

func (c *Config) Uploads() {
	if c.UploadDir == "" {
		return
	}
	c.App.Static(storage.PublicPrefix, c.UploadDir)
}
