package models

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellfit-garage/helpers"
)

// redis key of the global favorites set
const favoritesCacheKey = "favorites:global"

// FavoriteModel owns the favorites state: the per-user map stored inside the
// user document is authoritative, the global set is a derived convenience that
// is cached in redis and in process memory. both views are updated before a
// toggle returns, so a reader checking either one observes the same boolean
type FavoriteModel struct {
	Collection *mongo.Collection // users
	Cache      *redis.Client     // maybe nil, then the process-local set stands alone

	mu     sync.Mutex
	global map[string]bool
}

// Initialize prepares the process-local set and warms it from the cache
func (m *FavoriteModel) Initialize() {
	m.mu.Lock()
	m.global = make(map[string]bool)
	m.mu.Unlock()

	if m.Cache == nil {
		return
	}

	var ctx = context.Background()
	ids, err := m.Cache.SMembers(ctx, favoritesCacheKey).Result()
	if err != nil {
		// cache is a convenience, start empty
		return
	}

	m.mu.Lock()
	for _, id := range ids {
		m.global[id] = true
	}
	m.mu.Unlock()
}

// Toggle flips the favorite status of a facility for a user and returns the
// new status once the write is acknowledged. an empty userID operates on the
// default/global user only (no store round trip).
// concurrent toggles on the same pair are not serialized - the last
// acknowledged write wins
func (m *FavoriteModel) Toggle(userID string, facilityID string) (bool, error) {

	id := SafeFacilityID(facilityID)

	if userID == "" {
		newState := m.toggleGlobal(id)
		m.writeCache(id, newState)
		return newState, nil
	}

	// per-user path: read the current boolean, write its negation
	current, err := m.userFavorite(userID, id)
	if err != nil {
		return false, err
	}
	newState := !current

	filter := bson.D{{Key: "_id", Value: ObjectID(userID)}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "favorites." + id, Value: newState}}}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	result, err := m.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return false, ErrInvalidUser
	}

	// update the derived global set after the write was acknowledged
	m.setGlobal(id, newState)
	m.writeCache(id, newState)

	return newState, nil
}

// IsFavorite reports the favorite status for a (user, facility) pair.
// a facility counts as favorited when it is in the global set OR in the
// user's own set
func (m *FavoriteModel) IsFavorite(userID string, facilityID string) bool {

	id := SafeFacilityID(facilityID)

	m.mu.Lock()
	inGlobal := m.global[id]
	m.mu.Unlock()

	if inGlobal || userID == "" {
		return inGlobal
	}

	current, err := m.userFavorite(userID, id)
	if err != nil {
		// callers render the flag only, errors are not actionable here
		return false
	}

	return current
}

// FavoriteIDs returns the facility IDs favorited by a user
// (empty userID = the global set)
func (m *FavoriteModel) FavoriteIDs(userID string) ([]string, error) {

	if userID == "" {
		m.mu.Lock()
		defer m.mu.Unlock()

		var ids []string
		for id, set := range m.global {
			if set {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	favorites, err := m.userFavorites(userID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for id, set := range favorites {
		if set {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// internal implementations

func (m *FavoriteModel) toggleGlobal(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	newState := !m.global[id]
	if newState {
		m.global[id] = true
	} else {
		delete(m.global, id)
	}
	return newState
}

func (m *FavoriteModel) setGlobal(id string, state bool) {
	m.mu.Lock()
	if state {
		m.global[id] = true
	} else {
		delete(m.global, id)
	}
	m.mu.Unlock()
}

// writeCache mirrors a state change into redis.
// best effort - the cache may lag behind writes of other processes anyway
func (m *FavoriteModel) writeCache(id string, state bool) {
	if m.Cache == nil {
		return
	}

	var ctx = context.Background()
	if state {
		_ = m.Cache.SAdd(ctx, favoritesCacheKey, id).Err()
	} else {
		_ = m.Cache.SRem(ctx, favoritesCacheKey, id).Err()
	}
}

// userFavorite reads the current boolean at the per-user favorite path
func (m *FavoriteModel) userFavorite(userID string, id string) (bool, error) {

	favorites, err := m.userFavorites(userID)
	if err != nil {
		return false, err
	}

	return favorites[id], nil
}

// userFavorites reads the favorites map of the user document
func (m *FavoriteModel) userFavorites(userID string) (map[string]bool, error) {

	data := struct {
		Favorites map[string]bool `bson:"favorites"`
	}{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	fields := bson.D{
		{Key: "_id", Value: 0},
		{Key: "favorites", Value: 1}}

	err := m.Collection.FindOne(ctx, bson.M{"_id": ObjectID(userID)}, options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidUser
		}
		// pass any other error
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	if data.Favorites == nil {
		return map[string]bool{}, nil
	}

	return data.Favorites, nil
}
