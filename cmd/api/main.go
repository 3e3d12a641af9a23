package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/PoFerry/atelierculinairepof/internal/auth"
	"github.com/PoFerry/atelierculinairepof/internal/db"
	"github.com/PoFerry/atelierculinairepof/internal/export"
	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/inventory"
	"github.com/PoFerry/atelierculinairepof/internal/menu"
	"github.com/PoFerry/atelierculinairepof/internal/middleware"
	"github.com/PoFerry/atelierculinairepof/internal/recipe"
	"github.com/PoFerry/atelierculinairepof/internal/storage"
	"github.com/PoFerry/atelierculinairepof/internal/supplier"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	var uploader export.Uploader
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		uploader = r2Client
		log.Println("✅ R2 export publishing enabled")
	} else {
		log.Println("ℹ️ R2 not configured, exports are download-only")
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── REPOS ─────────────────────────
	supplierRepo := supplier.NewPostgresRepository(pgDB)
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	inventoryRepo := inventory.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	supplierService := supplier.NewService(supplierRepo)
	ingredientService := ingredient.NewService(ingredientRepo)
	recipeService := recipe.NewService(recipeRepo, ingredientRepo)
	menuService := menu.NewService(menuRepo, recipeRepo, ingredientRepo)
	inventoryService := inventory.NewService(inventoryRepo, ingredientRepo)
	exportService := export.NewService(
		menuService,
		recipeService,
		ingredientRepo,
		supplierRepo,
		uploader,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	supplierHandler := supplier.NewHandler(supplierService)
	ingredientHandler := ingredient.NewHandler(ingredientService)
	recipeHandler := recipe.NewHandler(recipeService)
	menuHandler := menu.NewHandler(menuService)
	inventoryHandler := inventory.NewHandler(inventoryService)
	exportHandler := export.NewHandler(exportService)

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// ───────────────────────── SUPPLIER ROUTES ─────────────────────────
	suppliers := r.Group("/suppliers", authRequired)
	{
		suppliers.POST("", supplierHandler.Create)
		suppliers.GET("", supplierHandler.List)
		suppliers.GET("/:id", supplierHandler.Get)
		suppliers.PUT("/:id", supplierHandler.Update)
		suppliers.DELETE("/:id", adminOnly, supplierHandler.Delete)
	}

	// ───────────────────────── INGREDIENT ROUTES ─────────────────────────
	ingredients := r.Group("/ingredients", authRequired)
	{
		ingredients.POST("", ingredientHandler.Create)
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)
		ingredients.PUT("/:id", ingredientHandler.Update)
		ingredients.DELETE("/:id", adminOnly, ingredientHandler.Delete)
	}

	// ───────────────────────── RECIPE ROUTES ─────────────────────────
	recipes := r.Group("/recipes", authRequired)
	{
		recipes.POST("", recipeHandler.Create)
		recipes.GET("", recipeHandler.List)
		recipes.GET("/:id", recipeHandler.Get)
		recipes.PUT("/:id", recipeHandler.Update)
		recipes.DELETE("/:id", adminOnly, recipeHandler.Delete)

		recipes.GET("/:id/cost", recipeHandler.Cost)
		recipes.GET("/:id/card.csv", exportHandler.RecipeCardCSV)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/menus", authRequired)
	{
		menus.POST("", menuHandler.Create)
		menus.GET("", menuHandler.List)
		menus.GET("/:id", menuHandler.Get)
		menus.PUT("/:id", menuHandler.Update)
		menus.DELETE("/:id", adminOnly, menuHandler.Delete)

		menus.GET("/:id/shopping-list", menuHandler.ShoppingList)
		menus.GET("/:id/shopping-list.csv", exportHandler.ShoppingListCSV)
		menus.POST("/:id/shopping-list/publish", exportHandler.PublishShoppingList)
	}

	// ───────────────────────── INVENTORY ROUTES ─────────────────────────
	inventoryGroup := r.Group("/inventory", authRequired)
	{
		inventoryGroup.POST("/movements", inventoryHandler.AddMovement)
		inventoryGroup.GET("/movements", inventoryHandler.ListMovements)
		inventoryGroup.GET("/stock", inventoryHandler.CurrentStock)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
