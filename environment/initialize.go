package environment

import (
	"os"

	"github.com/go-redis/redis/v8"
	influxdb2 "github.com/influxdata/influxdb-client-go"
	"go.mongodb.org/mongo-driver/mongo"

	"wellfit-garage/analytics"
	"wellfit-garage/client"
	"wellfit-garage/database"
	"wellfit-garage/models"
)

// Environment is used for dependency-injection (package de-coupling)
type Environment struct {
	Requests      *client.Registry
	Tracker       *analytics.Tracker
	UserModel     models.UserModel
	FacilityModel *models.FacilityModel
	ReviewModel   models.ReviewModel
	FavoriteModel *models.FavoriteModel
}

// newEnv operates as the constructor to initialize the collection references (private)
func newEnv(mongoClient *mongo.Client, favoritesCache *redis.Client, influxClient *influxdb2.Client) *Environment {
	env := &Environment{}

	db := mongoClient.Database(os.Getenv("DB_NAME"))

	collections := map[string]*mongo.Collection{
		"users":      db.Collection("users"),      // ToDO: Const
		"facilities": db.Collection("facilities"), // ToDO: Const
		"reviews":    db.Collection("reviews"),    // ToDO: Const
	}

	// the registry buffers client requests to detect page refreshes
	env.Requests = new(client.Registry)
	env.Requests.Initialize()

	// prepare analytics gathering (facility visits)
	// always create the object so no further checking is needed in the models
	env.Tracker = new(analytics.Tracker)
	env.Tracker.SetConnections(influxClient, collections)
	if os.Getenv("USE_ANALYTICS") == "YES" {
		env.Tracker.VisitorAPI = database.InfluxAPI{
			WriteAPI:  (*influxClient).WriteAPIBlocking(os.Getenv("ANALYTICS_ORG"), os.Getenv("ANALYTICS_VISITORS_BUCKET")),
			QueryAPI:  (*influxClient).QueryAPI(os.Getenv("ANALYTICS_ORG")),
			DeleteAPI: (*influxClient).DeleteAPI(),
		}
	}
	env.Tracker.Requests = env.Requests

	env.UserModel.Client = mongoClient
	env.UserModel.Collection = collections["users"]

	// inject user model function to analytics tracker after its initialization
	env.Tracker.GetUserName = env.UserModel.GetUserName

	// favorites live in the user documents, the global set in the cache
	env.FavoriteModel = new(models.FavoriteModel)
	env.FavoriteModel.Collection = collections["users"]
	env.FavoriteModel.Cache = favoritesCache
	env.FavoriteModel.Initialize()

	env.FacilityModel = new(models.FacilityModel)
	env.FacilityModel.Collection = collections["facilities"]
	// "inject" functions from the favorites model into the facility model
	env.FacilityModel.IsFavorite = env.FavoriteModel.IsFavorite
	env.FacilityModel.FavoriteIDs = env.FavoriteModel.FavoriteIDs

	env.ReviewModel.Collection = collections["reviews"]
	env.ReviewModel.GetUserNameOID = env.UserModel.GetUserNameOID
	env.ReviewModel.SetAggregates = env.FacilityModel.SetAggregates

	return env
}

// Env is the singleton registry
var Env *Environment

// InitializeModels injects the database connections to the models
// (do not confuse with package init)
func InitializeModels() {
	Env = newEnv(database.GetConnection(), database.GetRedisConnection(), database.GetInfluxConnection())
}
