package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := &JWTService{}

	token, err := service.GenerateJWT(42, RoleUser, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestValidateToken_Invalid(t *testing.T) {
	service := &JWTService{}

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "Garbage token",
			token: func() string { return "not-a-token" },
		},
		{
			name: "Expired token",
			token: func() string {
				token, _ := service.GenerateJWT(42, RoleUser, time.Now().Add(-time.Hour))
				return token
			},
		},
		{
			name: "Zero user id",
			token: func() string {
				token, _ := service.GenerateJWT(0, RoleUser, time.Now().Add(time.Hour))
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token())
			assert.Error(t, err)
		})
	}
}
