package util

import (
	"errors"
	"testing"

	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(7, "Admin", testSecret)
	require.NoError(t, err)

	userId, role, err := ValidateAccessToken(BearerPrefix+token, zap.NewNop(), testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userId)
	assert.Equal(t, "Admin", role)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	token, err := GenerateAccessToken(7, "", testSecret)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "No authentication token is provided"},
		{"no bearer prefix", token, "Authentication token format is not match"},
		{"empty token", BearerPrefix, "Authentication token is empty"},
		{"malformed", BearerPrefix + "not.a.jwt", "Authentication token is malformed"},
		{"wrong secret", BearerPrefix + token + "x", "Authentication token is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateAccessToken(tt.header, zap.NewNop(), testSecret)
			require.Error(t, err)

			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, constant.ERR_UNATHORIZED_ERROR, validationErr.Code)
			if tt.name != "wrong secret" {
				assert.Equal(t, tt.message, validationErr.Message)
			}
		})
	}
}

func TestParseSessionToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "", testSecret)
	require.NoError(t, err)

	userId, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userId)

	userId, err = ParseSessionToken(BearerPrefix + token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userId)
}

func TestParseSessionTokenAlternateClaimNames(t *testing.T) {
	for _, claims := range []jwt.MapClaims{
		{"UserId": "15"},
		{"id": float64(15)},
		{"Id": float64(15), "userId": "not-a-number"},
	} {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		userId, err := ParseSessionToken(signed)
		require.NoError(t, err, claims)
		assert.Equal(t, int64(15), userId)
	}
}

func TestParseSessionTokenWithoutUser(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ParseSessionToken(signed)
	assert.EqualError(t, err, "Authentication token does not identify a user")

	_, err = ParseSessionToken("")
	assert.EqualError(t, err, "Authentication token is empty")

	_, err = ParseSessionToken("garbage")
	assert.EqualError(t, err, "Authentication token is malformed")
}

func TestHighlight(t *testing.T) {
	segments := Highlight("Refund for order, REFUND pending", "refund")

	assert.Equal(t, []Segment{
		{Text: "Refund", Matched: true},
		{Text: " for order, "},
		{Text: "REFUND", Matched: true},
		{Text: " pending"},
	}, segments)

	assert.Equal(t, []Segment{{Text: "a+b=c"}}, Highlight("a+b=c", ""))
	assert.Equal(t, []Segment{{Text: "a"}, {Text: "+b", Matched: true}, {Text: "=c"}}, Highlight("a+b=c", "+b"))
	assert.Equal(t, []Segment{{Text: "nothing here"}}, Highlight("nothing here", "zzz"))
	assert.Nil(t, Highlight("", "x"))
}

func TestCleanChatText(t *testing.T) {
	assert.Equal(t, "hello there", CleanChatText("[support-12] hello there"))
	assert.Equal(t, "no tag", CleanChatText("no tag"))
	assert.Equal(t, "keep [inner] tag", CleanChatText("keep [inner] tag"))
}
