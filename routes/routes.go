package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tour-backend/config"
	"tour-backend/controllers"
	"tour-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(config.AppConfig.CORSOrigins)
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

// SetupRouter wires controller instances onto the route tree.
func SetupRouter(
	ac *controllers.AssignmentController,
	tc *controllers.TourController,
	rc *controllers.ReservationController,
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
		assignments := api.Group("/assignments")
		{
			assignments.POST("/preview", ac.Preview)
			assignments.POST("/commit", ac.Commit)
		}

		tours := api.Group("/tours")
		{
			tours.GET("", tc.GetTours)
			tours.GET("/:id", tc.GetTourByID)
			tours.POST("", tc.CreateTour)
			tours.PATCH("/:id", tc.UpdateTour)
			tours.PUT("/:id", tc.UpdateTour)
			tours.DELETE("/:id", tc.DeleteTour)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.GET("/:id", rc.GetReservationByID)
			reservations.POST("", rc.CreateReservation)
			reservations.PATCH("/:id", rc.UpdateReservation)
			reservations.DELETE("/:id", rc.DeleteReservation)
		}

		teamMembers := api.Group("/team-members")
		{
			teamMembers.GET("", controllers.GetTeamMembers)
			teamMembers.GET("/:email", controllers.GetTeamMember)
			teamMembers.POST("", controllers.CreateTeamMember)
			teamMembers.PATCH("/:email", controllers.UpdateTeamMember)
			teamMembers.DELETE("/:email", controllers.DeleteTeamMember)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", controllers.GetVehicles)
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.PATCH("/:id", controllers.UpdateVehicle)
			vehicles.DELETE("/:id", controllers.DeleteVehicle)
		}

		pickupHotels := api.Group("/pickup-hotels")
		{
			pickupHotels.GET("", controllers.GetPickupHotels)
			pickupHotels.POST("", controllers.CreatePickupHotel)
			pickupHotels.PATCH("/:id", controllers.UpdatePickupHotel)
			pickupHotels.DELETE("/:id", controllers.DeletePickupHotel)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomerByID)
			customers.POST("", controllers.CreateCustomer)
		}

		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProductByID)
			products.POST("", controllers.CreateProduct)
		}

		choiceOptions := api.Group("/choice-options")
		{
			choiceOptions.GET("", controllers.GetChoiceOptions)
			choiceOptions.POST("", controllers.CreateChoiceOption)
		}
	}

	return r
}
