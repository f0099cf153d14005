package auth

import (
	"testing"

	"asociacion-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "clave-de-prueba-con-al-menos-32-caracteres"

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := &models.User{
		Name:  "Admin de Prueba",
		Email: "admin@asociacion.pe",
		Role:  models.RoleAdmin,
	}
	user.ID = 7

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@asociacion.pe", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestGenerateTokenOtraClaveNoValida(t *testing.T) {
	user := &models.User{Email: "op@asociacion.pe", Role: models.RoleOperador}
	user.ID = 2

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("otra-clave-distinta-tambien-de-32-chars"), nil
	})
	assert.Error(t, err)
}
