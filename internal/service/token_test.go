package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
)

func testUser() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Email:    "consultant@example.com",
		Username: "consultant",
		Role:     valueobject.RoleConsultant,
		IsActive: true,
	}
}

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	user := testUser()

	pair, refreshExp, err := manager.GeneratePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 15*time.Minute, pair.ExpiresIn)
	assert.True(t, refreshExp.After(time.Now().Add(23*time.Hour)))

	userID, role, err := manager.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, string(valueobject.RoleConsultant), role)
}

func TestTokenManager_RefreshRoundTrip(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := testUser()

	pair, _, err := manager.GeneratePair(user)
	require.NoError(t, err)

	claims, err := manager.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "refresh token must carry a jti")
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	verifier := NewTokenManager("other-secret", "other-refresh", time.Minute, time.Hour)

	pair, _, err := issuer.GeneratePair(testUser())
	require.NoError(t, err)

	_, _, err = verifier.ParseAccess(pair.AccessToken)
	assert.Error(t, err, "access token signed with another secret must be rejected")

	_, err = verifier.ParseRefresh(pair.RefreshToken)
	assert.Error(t, err, "refresh token signed with another secret must be rejected")
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, _, err := manager.GeneratePair(testUser())
	require.NoError(t, err)

	_, _, err = manager.ParseAccess(pair.AccessToken)
	assert.Error(t, err, "expired access token must be rejected")

	_, err = manager.ParseRefresh(pair.RefreshToken)
	assert.Error(t, err, "expired refresh token must be rejected")
}

func TestTokenManager_CrossTokenMisuse(t *testing.T) {
	manager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	pair, _, err := manager.GeneratePair(testUser())
	require.NoError(t, err)

	// Access and refresh tokens are signed with different secrets and must
	// never pass verification in each other's place.
	_, _, err = manager.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)

	_, err = manager.ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}
