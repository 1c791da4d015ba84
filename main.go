package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"booking-backend/config"
	"booking-backend/controllers"
	"booking-backend/routes"
	"booking-backend/services"
	"booking-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	utils.InitLogger()

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Upload storage lives under storage/, which is deliberately not
	// registered as a static route.
	storageRoot := os.Getenv("STORAGE_ROOT")
	if storageRoot == "" {
		storageRoot = "storage"
	}
	roomUploads := services.NewUploadService(filepath.Join(storageRoot, "rooms"), services.RoomImagePolicy())
	attachmentUploads := services.NewUploadService(filepath.Join(storageRoot, "attachments"), services.AttachmentPolicy())

	// Initialize services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService, auditService)
	bookingController := controllers.NewBookingController(bookingService, roomService, auditService)
	roomController := controllers.NewRoomController(roomService)
	adminController := controllers.NewAdminController(userService, bookingService, roomService, auditService, roomUploads)
	uploadController := controllers.NewUploadController(attachmentUploads, auditService)
	fileController := controllers.NewFileController(roomUploads)

	router := routes.SetupRouter(
		authController,
		bookingController,
		roomController,
		adminController,
		uploadController,
		fileController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
