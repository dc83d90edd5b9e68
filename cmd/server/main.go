package main

import (
	"log"
	"strings"

	"loop-backend/internal/admin"
	"loop-backend/internal/auth"
	"loop-backend/internal/categories"
	"loop-backend/internal/common"
	"loop-backend/internal/config"
	"loop-backend/internal/credits"
	"loop-backend/internal/database"
	"loop-backend/internal/listings"
	"loop-backend/internal/models"
	"loop-backend/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Veritabanı bağlantısı kurulamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}
	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")

	listingSvc := listings.NewService(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: common.ErrorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true, // Oturum cookie'si için şart
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(db, cfg))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))

	// Kategori ağacı herkese açık
	api.Get("/categories", categories.ListCategoriesHandler(db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler(db))

	// İlanlar
	protected.Post("/listings", listings.CreateListingHandler(db))
	protected.Get("/listings", listings.ListListingsHandler(db))
	protected.Get("/listings/:id", listings.GetListingHandler(db))
	protected.Put("/listings/:id", listings.UpdateListingHandler(db))
	protected.Delete("/listings/:id", listings.DeleteListingHandler(db))

	// Teklif / takas akışı
	protected.Post("/listings/:id/offer", listings.NewOfferHandler(db, listingSvc))
	protected.Delete("/listings/:id/offer", listings.DeleteOfferHandler(listingSvc))
	protected.Post("/listings/:id/offer/reject", listings.RejectOfferHandler(db, listingSvc))
	protected.Post("/listings/:id/offer/accept", listings.AcceptOfferHandler(db, listingSvc))
	protected.Post("/listings/:id/receive", listings.ReceiveListingHandler(db, listingSvc))

	// Bildirimler
	protected.Get("/notifications", notifications.ListNotificationsHandler(db))
	protected.Post("/notifications/:id/read", notifications.MarkReadHandler(db))

	// Kredi hareketleri ve bağış
	protected.Post("/donations", credits.CreateDonationHandler(db))
	protected.Get("/credits/movements", credits.ListMovementsHandler(db))

	// Admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/users", admin.ListUsersHandler(db))
	adminRoutes.Post("/users/:id/credits", admin.AdjustCreditsHandler(db))
	adminRoutes.Post("/categories", categories.CreateCategoryHandler(db))
	adminRoutes.Put("/categories/:id", categories.UpdateCategoryHandler(db))
	adminRoutes.Delete("/categories/:id", categories.DeleteCategoryHandler(db))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
