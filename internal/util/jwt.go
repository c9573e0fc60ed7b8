package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/ferdian3456/communityclient"
	AccessTokenDuration     = 24 * time.Hour
	ErrInvalidSigningMethod = errors.New("invalid token signing method")

	// claim names the API has used for the user id, in lookup order
	userIdClaimKeys = []string{"userId", "UserId", "id", "Id"}
)

// GenerateAccessToken signs an HS256 token the way the community API does.
// Used by the stub backend.
func GenerateAccessToken(userId int64, role string, jwtSecretKey string) (string, error) {
	if jwtSecretKey == "" {
		return "", errors.New("jwt secret key is not configured")
	}

	now := time.Now().UTC()
	claims := &model.Claims{
		UserId: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprintf("user:%d", userId),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateAccessToken validates an Authorization header value and returns
// the user id and role it carries.
func ValidateAccessToken(authHeader string, log *zap.Logger, jwtSecretKey string) (int64, string, error) {
	if jwtSecretKey == "" {
		return 0, "", errors.New("jwt secret key is not configured")
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return 0, "", err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		log.Debug("access token rejected", zap.Error(err))
		return 0, "", handleParseError(err)
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid || claims.UserId == 0 {
		return 0, "", &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is invalid",
			Param:   "accessToken",
		}
	}

	return claims.UserId, claims.Role, nil
}

// ParseSessionToken reads the user id out of a token issued by the API.
// The client holds no signing key, so the signature is not checked here;
// the server checks it on every request.
func ParseSessionToken(tokenString string) (int64, error) {
	tokenString = strings.TrimPrefix(strings.TrimSpace(tokenString), BearerPrefix)
	if tokenString == "" {
		return 0, &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is empty",
			Param:   "token",
		}
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return 0, handleParseError(err)
	}

	for _, key := range userIdClaimKeys {
		value, ok := claims[key]
		if !ok {
			continue
		}

		userId, ok := claimToInt64(value)
		if ok && userId > 0 {
			return userId, nil
		}
	}

	return 0, &model.ValidationError{
		Code:    constant.ERR_UNATHORIZED_ERROR,
		Message: "Authentication token does not identify a user",
		Param:   "token",
	}
}

func claimToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), v == float64(int64(v))
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		return parsed, err == nil
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "No authentication token is provided",
			Param:   "accessToken",
		}
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token format is not match",
			Param:   "accessToken",
		}
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is empty",
			Param:   "accessToken",
		}
	}

	return token, nil
}

func handleParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is malformed",
			Param:   "accessToken",
		}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is expired",
			Param:   "accessToken",
		}
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is not valid yet",
			Param:   "accessToken",
		}
	case errors.Is(err, ErrInvalidSigningMethod):
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token has invalid signing method",
			Param:   "accessToken",
		}
	default:
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authentication token is invalid",
			Param:   "accessToken",
		}
	}
}
