package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/twinj/uuid"

	"wellfit-garage/helpers"
)

// token types
const (
	AT = "access_token"
	RT = "refresh_token"
)

var (
	ErrUnauthorized = errors.New("unauthorized") // invalid token/cookie
	ErrNotLoggedIn  = errors.New("requires authorization")
)

// TokenDetails holds the data of AT and RT
type TokenDetails struct {
	AccessToken  string
	RefreshToken string
	AccessUUID   string
	RefreshUUID  string
	AtExpires    int64
	RtExpires    int64
}

// AccessDetails is the token metadata for the registry (key/value redis)
type AccessDetails struct {
	TokenUUID string
	UserID    string
}

// CreateTokens creates a token pair, registers it in redis and sends it via cookie
func CreateTokens(c *gin.Context, userID string) error {

	// create pair of AT & RT
	ts, err := CreateToken(userID)
	if err != nil {
		return err
	}

	// register tokens
	err = CreateAuth(userID, ts)
	if err != nil {
		return err
	}

	tokens := map[string]string{
		AT: ts.AccessToken,
		RT: ts.RefreshToken,
	}

	// send token pair to client as a server-side cookie
	err = helpers.SetCookie(c, os.Getenv("JWTCK_NAME"), tokens)
	if err != nil {
		return err
	}

	return nil
}

// Authenticate checks the permission to execute a route
// and returns the userID
func Authenticate(r *http.Request) (string, error) {

	tokenAuth, err := ExtractTokenMetadata(AT, r)
	if err != nil {
		return "", err
	}

	userID, err := FetchAuth(tokenAuth)
	if err != nil {
		return "", err
	}

	return userID, nil
}

// DeleteAuths counts the tokens of a user. If there are too many (see limit in code)
// all of them are removed for security reasons; otherwise only the current one.
// usually called for RTs, yet kept generic
func DeleteAuths(tokenType string, userID string, currentUUID string) (int64, error) {

	// redis is case-sensitive
	tt := ""
	switch tokenType {
	case AT:
		tt = "at"
	case RT:
		tt = "rt"
	}
	searchString := tt + "_*"

	var cursor uint64
	var allKeys []string // all keys for the token type
	var usrKeys []string // all keys for the requested user

	var keys []string // keys read in the current cursor iteration
	var err error

	var ctx = context.Background()

	// redis can only scan keys, not values.
	// so all keys of the token type are read first and their
	// contents are checked client-side
	for {
		keys, cursor, err = client.Scan(ctx, cursor, searchString, 10).Result()
		if err != nil {
			return 0, err
		}

		allKeys = append(allKeys, keys...)

		if cursor == 0 {
			break
		}
	}

	// read values
	for _, v := range allKeys {
		val, err := client.Get(ctx, v).Result()
		if err != nil {
			panic(err)
		}

		if val == userID {
			usrKeys = append(usrKeys, v)
		}
	}

	// delete all if there are X or more (r) tokens currently in use
	var delErr error // preserve last error that may have occured while in the loop
	var delCnt int64 = 0
	if len(usrKeys) >= 5 {
		for _, v := range usrKeys {
			deleted, err := client.Del(ctx, v).Result()
			if err != nil {
				delErr = err
				delCnt = deleted
			}
			delCnt += deleted
		}
	} else {
		// otherwise only remove the current (r) token
		if len(usrKeys) >= 1 {
			delCnt, delErr = client.Del(ctx, currentUUID).Result()
		}
	}

	// in case of errors report 0 removals
	if delErr != nil {
		delCnt = 0
	}

	return delCnt, delErr
}

// CreateToken creates a token pair (AT & RT)
func CreateToken(userID string) (*TokenDetails, error) {

	var err error
	td := &TokenDetails{}

	// access token
	td.AtExpires = time.Now().Add(time.Minute * 15).Unix() // default 15 min
	td.AccessUUID = "at_" + uuid.NewV4().String()

	// refresh token
	td.RtExpires = time.Now().Add(time.Hour * 24 * 7).Unix() // default 1 week
	td.RefreshUUID = "rt_" + uuid.NewV4().String()

	// create access token
	atClaims := jwt.MapClaims{}
	atClaims["authorized"] = true
	atClaims["access_uuid"] = td.AccessUUID
	atClaims["user_id"] = userID // userID rather than username (login name)
	atClaims["exp"] = td.AtExpires

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, atClaims)
	td.AccessToken, err = at.SignedString([]byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	// create refresh token
	rtClaims := jwt.MapClaims{}
	rtClaims["refresh_uuid"] = td.RefreshUUID
	rtClaims["user_id"] = userID
	rtClaims["exp"] = td.RtExpires
	rt := jwt.NewWithClaims(jwt.SigningMethodHS256, rtClaims)
	td.RefreshToken, err = rt.SignedString([]byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, err
	}

	return td, nil
}

// CreateAuth saves the metadata of the token pair in the registry (redis)
// public because of refresh
func CreateAuth(userID string, td *TokenDetails) error {

	var err error

	// converting Unix to UTC (to Time object)
	at := time.Unix(td.AtExpires, 0)
	rt := time.Unix(td.RtExpires, 0)
	now := time.Now()

	var ctx = context.Background()

	err = client.Set(ctx, td.AccessUUID, userID, at.Sub(now)).Err()
	if err != nil {
		return err
	}

	err = client.Set(ctx, td.RefreshUUID, userID, rt.Sub(now)).Err()
	if err != nil {
		return err
	}

	return nil
}

// ExtractToken returns a still encrypted token
func ExtractToken(tokenType string, r *http.Request) (string, error) {

	cval, err := helpers.GetCookie(r, os.Getenv("JWTCK_NAME"))
	if err != nil {
		return "", err
	}

	tokens := make(map[string]string)
	err = json.Unmarshal(cval.([]byte), &tokens)
	if err != nil {
		return "", err
	}

	return tokens[tokenType], nil
}

// VerifyToken checks the signature
func VerifyToken(tokenType string, r *http.Request) (*jwt.Token, error) {

	tokenString, err := ExtractToken(tokenType, r)
	if err != nil {
		return nil, err
	}

	var secret []byte

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// make sure the token method conforms to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		switch tokenType {
		case AT:
			secret = []byte(os.Getenv("ACCESS_SECRET"))
		case RT:
			secret = []byte(os.Getenv("REFRESH_SECRET"))

		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// TokenValid checks if a token is still valid
func TokenValid(tokenType string, r *http.Request) error {
	token, err := VerifyToken(tokenType, r)
	if err != nil {
		return err
	}
	if _, ok := token.Claims.(jwt.Claims); !ok && !token.Valid {
		return err
	}
	return nil
}

// ExtractTokenMetadata reads the metadata (for the redis access)
func ExtractTokenMetadata(tokenType string, r *http.Request) (*AccessDetails, error) {

	var accessUUID string
	// map-extract function returns a boolean flag instead of an error
	var ok bool

	token, err := VerifyToken(tokenType, r)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		// read the UUID of the requested token
		switch tokenType {
		case AT:
			accessUUID, ok = claims["access_uuid"].(string)
			if !ok {
				return nil, err
			}
		case RT:
			accessUUID, ok = claims["refresh_uuid"].(string)
			if !ok {
				return nil, err
			}
		}
		userID, ok := claims["user_id"].(string)
		if !ok {
			return nil, err
		}
		return &AccessDetails{
			TokenUUID: accessUUID,
			UserID:    userID,
		}, nil
	}
	return nil, err
}

// FetchAuth reads the userID via metadata from the registry
func FetchAuth(authD *AccessDetails) (string, error) {

	var ctx = context.Background()
	userID, err := client.Get(ctx, authD.TokenUUID).Result()
	if err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteAuth removes a token from the store upon log-out request
// (returns count of deleted records)
func DeleteAuth(givenUUID string) (int64, error) {

	var ctx = context.Background()
	deleted, err := client.Del(ctx, givenUUID).Result()
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// TokenAuthMiddleware checks the technical validity of the token
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := TokenValid(AT, c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrNotLoggedIn.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
