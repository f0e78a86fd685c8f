package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wellfit-garage/authentication"
	"wellfit-garage/controllers"
	"wellfit-garage/database"
	"wellfit-garage/environment"
	"wellfit-garage/middleware"
)

var (
	router = gin.Default()
)

// called BEFORE main - note the order of package inits is undefined!
func init() {
	// Load Config
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func handleRequests() {
	router.Use(middleware.CORSMiddleware())

	router.GET("/lookups", controllers.ListLookups)

	// auth-related
	router.POST("/login", controllers.Login)
	router.POST("/logout", authentication.TokenAuthMiddleware(), controllers.Logout)
	router.POST("/refresh", controllers.Refresh) // do not check whether the at is still valid (no middleware)
	router.POST("/register", controllers.Register)

	router.POST("/user/exists", controllers.UserExists)

	// user-mgmt
	router.GET("/users/:id", authentication.TokenAuthMiddleware(), controllers.GetUser)

	// favorites (anonymous requests address the default user)
	router.GET("/user/favorites", controllers.GetUserFavorites)
	router.POST("/user/favorites", controllers.ToggleFavorite)

	// facility catalog
	// GET has no BODY (Go/Gin & Postman would support it, Angular does not) - hence parameters
	router.GET("/facilities", controllers.ListFacilities)
	router.GET("/facilities/:id", controllers.GetFacility)
	router.GET("/facilities/:id/visits", controllers.GetFacilityVisits)
	router.POST("/facilities/import", authentication.TokenAuthMiddleware(), controllers.ImportCatalog)

	// reviews
	router.GET("/facilities/:id/reviews", controllers.ListReviews)
	router.POST("/facilities/:id/reviews", authentication.TokenAuthMiddleware(), controllers.AddReview)

	// analytics
	router.GET("/stats/visitors", authentication.TokenAuthMiddleware(), controllers.ListVisitors)

	// internals
	router.GET("/monitor/requests/count", controllers.CountRequests)
	router.GET("/monitor/requests/dump", controllers.DumpRequests)
	router.POST("/monitor/requests/flush", controllers.FlushRequests)

	switch os.Getenv("APP_ENV") {
	case "DEV":
		router.Run(":" + os.Getenv("API_PORT"))
	case "PRD":
		router.RunTLS(":"+os.Getenv("API_PORT"), os.Getenv("APP_CERTFILE"), os.Getenv("APP_KEYFILE"))
	default:
		panic(fmt.Errorf("APP_ENV must not set"))
	}
}

func main() {
	// Connect to main database here (mongoDB)
	err := database.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseConnection()

	// connect to JWT Store (redis)
	err = authentication.OpenConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer authentication.CloseConnection()

	// connect to the favorites cache (redis)
	err = database.OpenRedisConnection()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseRedisConnection()

	// connect to Analytics-DB (influxDB)
	if os.Getenv("USE_ANALYTICS") == "YES" {
		err = database.OpenInfluxConnection()
		if err != nil {
			log.Fatal(err)
		}
		defer database.CloseInfluxConnection()
	}

	// Initialize the Models
	environment.InitializeModels()

	// read the facility catalog into the cache
	err = environment.Env.FacilityModel.LoadCatalog()
	if err != nil {
		log.Fatal(err)
	}

	// periodically move aged visit counts into the database
	// and clean up the request registry
	ticker := time.NewTicker(6 * time.Hour)
	go func() {
		for range ticker.C {
			environment.Env.Tracker.Replicate()
			environment.Env.Requests.Flush()
		}
	}()

	fmt.Println("WellFit-Garage running...")
	handleRequests()
}
