package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helper-app/internal/config"
	handlers "helper-app/internal/handler"
	repositories "helper-app/internal/repository"
	"helper-app/internal/services"
	"helper-app/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx, 15*time.Second)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDB)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	mailer := services.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.SMTPFrom,
	)

	userRepo := repositories.NewUserRepository(db)
	helperRepo := repositories.NewHelperRepository(db)
	verificationRepo := repositories.NewVerificationRepository(db)

	if err := verificationRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to create verification TTL index: %v", err)
	}

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)

	userService := services.NewUserService(userRepo, jwtUtil, redisClient)
	helperService := services.NewHelperService(helperRepo, jwtUtil, redisClient)
	ratingService := services.NewRatingService(helperRepo, redisClient)
	verificationService := services.NewVerificationService(verificationRepo, mailer)

	userHandler := handlers.NewUserHandler(userService)
	helperHandler := handlers.NewHelperHandler(helperService, ratingService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)

	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/send-otp", verificationHandler.SendOTP)
		api.POST("/verify-otp", verificationHandler.VerifyOTP)

		user := api.Group("/user")
		{
			user.POST("/signup", userHandler.Signup)
			user.POST("/login", userHandler.Login)
			user.POST("/logout", userHandler.Logout)
			user.GET("/getData", userHandler.GetAll)

			protected := user.Group("")
			protected.Use(utils.AuthMiddleware(jwtUtil, redisClient))
			{
				protected.PUT("/addToCart/:userID", userHandler.AddToCart)
				protected.PUT("/removeFromCart/:userID", userHandler.RemoveFromCart)
				protected.PUT("/addLikes/:userID", userHandler.AddLikes)
				protected.PUT("/removeLikes/:userID", userHandler.RemoveLikes)
			}
		}

		helper := api.Group("/helper")
		{
			helper.GET("/getData", helperHandler.GetAll)
			helper.GET("/getData/:helperRole", helperHandler.GetByRole)
			helper.GET("/getDataByID/:helperID", helperHandler.GetByID)
			helper.GET("/getCartData/:userID", helperHandler.GetCartData)
			helper.POST("/signup/check", helperHandler.SignupCheck)
			helper.POST("/signup", helperHandler.Signup)
			helper.POST("/login", helperHandler.Login)
			helper.PUT("/helperRating/:helperID/:userID", helperHandler.SubmitRating)

			protected := helper.Group("")
			protected.Use(utils.AuthMiddleware(jwtUtil, redisClient))
			{
				protected.PUT("/update/:hid", helperHandler.Update)
				protected.DELETE("/delete/:hid", helperHandler.Delete)
				protected.PUT("/addLikedID/:helperID", helperHandler.AddLikedID)
				protected.PUT("/removeLikedID/:helperID", helperHandler.RemoveLikedID)
				protected.PUT("/activeStatus/:helperID", helperHandler.UpdateActiveStatus)
				protected.PUT("/WorkTimeUpdate/:helperID", helperHandler.UpdateWorkTime)
			}
		}
	}

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Helper service running on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	<-shutdownManager.Done()
}
