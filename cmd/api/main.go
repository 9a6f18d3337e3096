package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/docslot/docslot-api/internal/auth"
	"github.com/docslot/docslot-api/internal/config"
	"github.com/docslot/docslot-api/internal/handlers"
	"github.com/docslot/docslot-api/internal/middleware"
	"github.com/docslot/docslot-api/internal/payment"
	"github.com/docslot/docslot-api/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatalw("Failed to connect to MongoDB", "err", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)

	if err := handlers.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalw("Failed to create indexes", "err", err)
	}
	logger.Info("Connected to MongoDB")

	// --- Services ---
	tokens := auth.NewTokens(cfg.JWTSecret)
	images, err := storage.NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3KeyPrefix)
	if err != nil {
		logger.Fatalw("Failed to initialize image store", "err", err)
	}
	gateway := payment.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	h := handlers.NewHandler(db, cfg, logger, tokens, images, gateway)

	// --- Gin Router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "token", "dtoken", "atoken"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	user := r.Group("/api/user")
	{
		user.POST("/register", h.RegisterUser)
		user.POST("/login", h.LoginUser)

		authed := user.Group("", middleware.AuthUser(tokens))
		authed.GET("/get-profile", h.GetProfile)
		authed.POST("/update-profile", h.UpdateProfile)
		authed.POST("/book-appointment", h.BookAppointment)
		authed.GET("/appointments", h.ListAppointments)
		authed.POST("/cancel-appointment", h.CancelAppointment)
		authed.POST("/payment-razorpay", h.PaymentOrder)
		authed.POST("/verify-razorpay", h.VerifyPayment)
	}

	doctor := r.Group("/api/doctor")
	{
		doctor.POST("/login", h.LoginDoctor)
		doctor.GET("/list", h.DoctorList)

		authed := doctor.Group("", middleware.AuthDoctor(tokens))
		authed.GET("/appointments", h.DoctorAppointments)
		authed.POST("/complete-appointment", h.CompleteAppointment)
		authed.POST("/cancel-appointment", h.DoctorCancelAppointment)
		authed.GET("/dashboard", h.DoctorDashboard)
		authed.GET("/profile", h.DoctorProfile)
		authed.POST("/update-profile", h.UpdateDoctorProfile)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", h.LoginAdmin)

		authed := admin.Group("", middleware.AuthAdmin(tokens))
		authed.POST("/add-doctor", h.AddDoctor)
		authed.GET("/all-doctors", h.AllDoctors)
		authed.POST("/change-availability", h.ChangeAvailability)
		authed.GET("/appointments", h.AdminAppointments)
		authed.POST("/cancel-appointment", h.AdminCancelAppointment)
		authed.GET("/dashboard", h.AdminDashboard)
	}

	logger.Infow("Starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalw("Server stopped", "err", err)
	}
}

func newLogger(env string) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if env == "production" {
		z, err = zap.NewProduction()
	} else {
		z, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
