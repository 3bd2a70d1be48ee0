package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/homecare_be/internal/config"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/db"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/jobs"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/mail"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/metrics"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/models"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/lifecycle"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/services/rating"
	"github.com/Windi-Fikriyansyah/homecare_be/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.ServiceRequest{},
		&models.Review{},
		&models.Job{},
	); err != nil {
		log.Fatal(err)
	}
	if err := seedAdmin(gdb); err != nil {
		log.Fatal(err)
	}

	sender := mail.New(cfg.SMTPAddr, cfg.SMTPFrom)
	lifecycleS := lifecycle.NewService(gdb)
	ratingS := rating.NewService(gdb)

	runner := jobs.NewRunner(gdb, rdb)
	runner.Register(models.JobExportRequests, jobs.NewExportJob(gdb, cfg.ExportDir))
	runner.Register(models.JobRemind, jobs.NewReminderJob(gdb, sender))
	runner.Register(models.JobMonthlyReport, jobs.NewMonthlyReportJob(gdb, sender))

	ctx := context.Background()
	runner.Start(ctx, cfg.WorkerCount)
	jobs.NewScheduler(runner, time.Duration(cfg.ReminderIntervalMin)*time.Minute).Start(ctx)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Static("/uploads", cfg.UploadDir)
	app.Get("/metrics", metrics.Handler())

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
		UploadDir: cfg.UploadDir,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	categoryH := handlers.NewCategoryHandler(gdb, rdb, time.Duration(cfg.CategoryCacheTTLSec)*time.Second)
	serviceH := handlers.NewServiceHandler(gdb, categoryH)
	requestH := handlers.NewRequestHandler(gdb, lifecycleS)
	reviewH := handlers.NewReviewHandler(gdb, ratingS)
	adminH := handlers.NewAdminHandler(gdb, lifecycleS, ratingS)
	jobH := handlers.NewJobHandler(runner)

	api := app.Group("/api")

	// public
	api.Post("/auth/signup/customer", authH.SignupCustomer)
	api.Post("/auth/signup/professional", authH.SignupProfessional)
	api.Post("/auth/signin", authH.Signin)
	api.Post("/auth/signout", authH.Signout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.List)
	api.Get("/categories/:id", categoryH.Get)
	api.Get("/categories/:id/services", categoryH.ServicesByCategory)
	api.Get("/services/:id", serviceH.Get)
	api.Post("/services/search", serviceH.Search)
	api.Get("/professionals/:id/rating", reviewH.ProfessionalRating)

	// protected (JWT from cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/me", authH.Me)
	protected.Get("/profile", authH.Me)
	protected.Put("/profile", authH.UpdateProfile)

	// customer only. Role gates go on each route: group middleware on a
	// "/" prefix would also run for the professional and admin routes
	// below.
	protected.Post("/requests", middleware.RequireRoles("customer"), requestH.Create)
	protected.Get("/requests", middleware.RequireRoles("customer"), requestH.ListMine)
	protected.Post("/requests/:id/cancel", middleware.RequireRoles("customer"), requestH.Cancel)
	protected.Post("/reviews", middleware.RequireRoles("customer"), reviewH.Create)

	// professional only
	pro := protected.Group("/professional", middleware.RequireRoles("professional"))
	pro.Get("/requests", requestH.Queue)
	pro.Get("/requests/history", requestH.History)
	protected.Post("/requests/:id/accept", middleware.RequireRoles("professional"), requestH.Accept)
	protected.Post("/requests/:id/reject", middleware.RequireRoles("professional"), requestH.Reject)
	protected.Post("/requests/:id/complete", middleware.RequireRoles("professional"), requestH.Complete)

	// admin only
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/professionals", adminH.ListProfessionals)
	admin.Get("/customers", adminH.ListCustomers)
	admin.Post("/professionals/:id/approve", adminH.ApproveProfessional)
	admin.Post("/professionals/:id/reject", adminH.RejectProfessional)
	admin.Post("/users/:id/block", adminH.BlockUser)
	admin.Post("/users/:id/unblock", adminH.UnblockUser)
	admin.Get("/requests", adminH.ListRequests)
	admin.Delete("/reviews/:id", adminH.DeleteReview)

	admin.Post("/categories", categoryH.Create)
	admin.Put("/categories/:id", categoryH.Update)
	admin.Delete("/categories/:id", categoryH.Delete)
	admin.Post("/services", serviceH.Create)
	admin.Put("/services/:id", serviceH.Update)
	admin.Delete("/services/:id", serviceH.Delete)

	admin.Post("/exports/requests", jobH.TriggerExport)
	admin.Get("/exports/requests/:id", jobH.Poll)
	admin.Get("/exports/requests/:id/download", jobH.DownloadExport)
	admin.Post("/jobs/reminder", jobH.TriggerReminder)
	admin.Post("/jobs/monthly-report", jobH.TriggerMonthlyReport)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// seedAdmin makes sure exactly one admin exists; admins are never created
// through the public signup routes.
func seedAdmin(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(config.AdminSeedPassword())
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    config.AdminSeedEmail(),
		Password: hashed,
		Role:     models.RoleAdmin,
		Active:   true,
		Approved: true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[Seed] created admin account %s", admin.Email)
	return nil
}
