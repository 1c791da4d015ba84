package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"booking-backend/controllers"
	"booking-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree. Note the absence of a
// static route for the upload directory: stored files are only reachable
// through the file controller.
func SetupRouter(
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	adc *controllers.AdminController,
	uc *controllers.UploadController,
	fc *controllers.FileController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/logout", middleware.AuthRequired(), ac.Logout)
		}

		// Public catalog and file reads
		api.GET("/rooms", rc.GetRooms)
		api.GET("/rooms/:id", rc.GetRoom)
		api.GET("/files/:name", fc.GetFile)

		authed := api.Group("", middleware.AuthRequired())
		{
			bookings := authed.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)
				bookings.POST("", bc.CreateBooking)
				bookings.GET("/:id", bc.GetBooking)
				bookings.PUT("/:id", bc.UpdateBooking)
				bookings.DELETE("/:id", bc.DeleteBooking)
			}

			authed.POST("/uploads", uc.Upload)
		}

		admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/summary", adc.Summary)

			admin.GET("/users", adc.GetUsers)
			admin.DELETE("/users/:id", adc.DeleteUser)

			admin.POST("/bookings", adc.CreateBooking)
			admin.PATCH("/bookings/:id/status", adc.UpdateStatus)

			admin.GET("/rooms", adc.GetRooms)
			admin.POST("/rooms", adc.CreateRoom)
			admin.PUT("/rooms/:id", adc.UpdateRoom)
			admin.DELETE("/rooms/:id", adc.DeleteRoom)

			admin.GET("/audit-logs", adc.GetAuditLogs)
		}
	}

	return r
}
