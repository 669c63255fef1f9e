package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"Recipe-Box-Backend/internal/api/handlers"
	"Recipe-Box-Backend/internal/api/presenters"
	"Recipe-Box-Backend/internal/api/routes"
	"Recipe-Box-Backend/internal/middleware"
	"Recipe-Box-Backend/internal/utils"
	"Recipe-Box-Backend/internal/utils/mailing"
	"Recipe-Box-Backend/internal/utils/metrics"
	"Recipe-Box-Backend/internal/utils/storage"
	"Recipe-Box-Backend/pkg/cookbook"
	"Recipe-Box-Backend/pkg/ingredient"
	"Recipe-Box-Backend/pkg/jwt"
	"Recipe-Box-Backend/pkg/recipe"
	"Recipe-Box-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// NewApp wires repositories, services and handlers onto a fiber app. The
// returned closer releases the access log file.
func NewApp(ctx context.Context, db *gorm.DB, config utils.Config) (*fiber.App, io.Closer, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		ErrorHandler: presenters.FiberErrorHandler,
		BodyLimit:    32 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware(config.CORSAllowedOrigin)
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, err := openAccessLog(config.AccessLogPath)
	if err != nil {
		return nil, nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   config.DBTimeZone,
		Output:     accessLog,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	fileStorage, err := storage.New(ctx, config.StorageConfig())
	if err != nil {
		accessLog.Close()
		return nil, nil, fmt.Errorf("storage: %w", err)
	}
	mailer := mailing.NewMailer(config.MailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	cookbookRepository := cookbook.NewCookbookRepository(db)

	// Service
	jwtService, err := jwt.NewJWTService(config.JWTConfig())
	if err != nil {
		accessLog.Close()
		return nil, nil, fmt.Errorf("jwt: %w", err)
	}
	userService := user.NewUserService(userRepository, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		userRepository,
		ingredientService,
		fileStorage,
		mailer,
		config.AppURL,
	)
	cookbookService := cookbook.NewCookbookService(cookbookRepository, userRepository, recipeService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	cookbookHandler := handlers.NewCookbookHandler(cookbookService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		CookbookHandler:   cookbookHandler,
		Middleware:        middlewares,
		UserService:       userService,
		Metrics:           metrics.New(),
	}
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		routesConfig.UploadDir = local.BaseDir()
	}
	routesConfig.Setup()
	return app, accessLog, nil
}

func openAccessLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	return file, nil
}
