package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellfit-garage/database"
	"wellfit-garage/helpers"
	"wellfit-garage/lookups"
)

// User is the "interface" used for client communication.
// the store-assigned ID is distinct from the user-chosen login name
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	LoginName    string             `json:"loginName" bson:"loginName"`
	Password     string             `json:"password" bson:"password"` // hash value
	Name         string             `json:"name" bson:"name"`         // display name
	RoleCode     int32              `json:"roleCode" bson:"roleCD"`
	RoleText     string             `json:"roleText" bson:"-"`
	LanguageCode int32              `json:"languageCode" bson:"languageCD"`
	LanguageText string             `json:"languageText" bson:"-"`
	Favorites    map[string]bool    `json:"favorites" bson:"favorites"` // facilityID -> flag, maintained by the favorites model
	LastSeenTS   time.Time          `json:"lastSeenTS" bson:"lastSeenTS,omitempty"`
}

// UserModel provides the logic to the interface and access to the database
type UserModel struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// UserExists checks if a login name is available - used in client for in-type error checking
// (wrapper of internal helper function)
func (m UserModel) UserExists(userName string) bool {
	b, _ := userExists(m.Collection, userName)
	return b
}

// CreateUser adds a new User
func (m UserModel) CreateUser(user User) (string, error) {

	var err error

	// checked via an equality query before insert - not transactional.
	// a race between two concurrent registrations is accepted (ToDo: unique index in DB)
	b, err := userExists(m.Collection, user.LoginName)
	if err = userNameAvailable(b, err); err != nil {
		return "", err
	}

	pwdHash, err := helpers.GenerateHash(user.Password)
	if err != nil {
		return "", err
	}

	user.ID = primitive.NewObjectID()
	user.Password = pwdHash
	user.RoleCode = lookups.UserRoleMember
	user.LastSeenTS = time.Now()
	if user.Favorites == nil {
		user.Favorites = map[string]bool{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	res, err := m.Collection.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetUserByName reads a user's login account data
func (m UserModel) GetUserByName(userName string) (*User, error) {

	var err error
	var user User

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	err = m.Collection.FindOne(ctx, bson.M{"loginName": userName}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidUser
		}
		// pass any other real error
		return nil, err
	}

	// add look-up texts
	addLookups(&user)

	return &user, nil
}

// GetUserByID reads a user's login account data
func (m UserModel) GetUserByID(ID string) (*User, error) {

	var user User

	id, err := primitive.ObjectIDFromHex(ID)
	if err != nil {
		return nil, ErrInvalidUser
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	err = m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidUser
		}
		// pass any other error
		return nil, err
	}

	addLookups(&user)

	return &user, nil
}

// GetUserName returns the login name from an ID (reduced version, without profile data)
func (m UserModel) GetUserName(ID string) (string, error) {

	id, err := primitive.ObjectIDFromHex(ID)
	if err != nil {
		return "", ErrInvalidUser
	}

	return m.GetUserNameOID(id)
}

// GetUserNameOID is the ObjectID-variant of GetUserName
// (injected into the review model)
func (m UserModel) GetUserNameOID(ID primitive.ObjectID) (string, error) {

	data := struct {
		LoginName string `bson:"loginName"`
	}{}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	fields := bson.D{
		{Key: "_id", Value: 0}, // _id always returned unless explicitly excluded (0)
		{Key: "loginName", Value: 1}}

	err := m.Collection.FindOne(ctx, bson.M{"_id": ID}, options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrInvalidUser
		}
		// pass any other error
		return "", err
	}

	return data.LoginName, nil
}

// CheckPassword tests if a login's password matches
// (no store access required)
func (m UserModel) CheckPassword(givenPassword string, userInfo User) bool {
	match, err := helpers.CompareHash(userInfo.Password, givenPassword)
	if err != nil {
		return false
	}
	return match
}

// SetLastSeen saves timestamp of last log-in
func (m UserModel) SetLastSeen(userID primitive.ObjectID) {
	// no error is returned since this function is not essential

	filter := bson.D{{Key: "_id", Value: userID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "lastSeenTS", Value: time.Now()}}}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	// just fire & forget
	_, _ = m.Collection.UpdateOne(ctx, filter, update)
}

// SetPassword is used to change a User's password
func (m UserModel) SetPassword(userID primitive.ObjectID, newPassword string) error {

	pwdHash, err := helpers.GenerateHash(newPassword)
	if err != nil {
		return err
	}

	filter := bson.D{{Key: "_id", Value: userID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: pwdHash}}}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	result, err := m.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	// just an additional check to discover data consistency problems
	if result.MatchedCount != 1 || result.ModifiedCount != 1 {
		return errors.New("mulitple records found")
	}

	return nil
}

// userNameAvailable converts the exists-check result into the registration outcome.
// a store failure must surface as such, not as a taken name
func userNameAvailable(exists bool, err error) error {
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if exists {
		return ErrUserNameNotAvailable
	}
	return nil
}

// internal implementations that are used by multiple methods of the model and corresponding handlers
func userExists(collection *mongo.Collection, userName string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	// there seems to be no function like "exists" so a projection on just the ID is used
	fields := bson.D{
		{Key: "_id", Value: 1}}

	data := struct {
		ID primitive.ObjectID `bson:"_id"`
	}{}

	err := collection.FindOne(ctx, bson.M{"loginName": userName}, options.FindOne().SetProjection(fields)).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		// treat errors as a "yes" - caller should not evaluate the result in case of an error
		return true, err
	}
	// no error means a document was found, hence the user does exist
	return true, nil
}

// internal helpers
// actually that's not immutable, but ok here
func addLookups(user *User) *User {
	user.RoleText = database.GetLookupText(lookups.LookupType(lookups.LTuserRole), user.RoleCode)
	user.LanguageText = database.GetLookupText(lookups.LookupType(lookups.LTlang), user.LanguageCode)

	return user
}
