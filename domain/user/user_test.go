package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merculy-backend/domain/news"
)

func TestIDFromEmail(t *testing.T) {
	id := IDFromEmail("ana@example.com")
	assert.Len(t, id, 32)

	// Normalized before hashing
	assert.Equal(t, id, IDFromEmail(" Ana@Example.COM "))
	assert.NotEqual(t, id, IDFromEmail("outra@example.com"))
}

func TestNewUserDefaults(t *testing.T) {
	u, err := NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	assert.Equal(t, IDFromEmail("ana@example.com"), u.ID())
	assert.Empty(t, u.Interests())
	assert.False(t, u.HasInterests())
	assert.Equal(t, news.FormatSingle, u.NewsletterFormat())
	assert.Equal(t, DefaultDeliveryTime, u.DeliveryTime())
	assert.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday", "friday"}, u.DeliveryDays())
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("Ana", "", "hash")
	require.Error(t, err)

	_, err = NewUser("Ana", "ana@example.com", "")
	require.Error(t, err)
}

func TestNewOAuthUser(t *testing.T) {
	u, err := NewOAuthUser("Ana", "ana@example.com", "google", "sub-123")
	require.NoError(t, err)

	assert.Equal(t, "google", u.OAuthProvider())
	assert.Equal(t, "sub-123", u.OAuthSubject())
	assert.Empty(t, u.PasswordHash())

	_, err = NewOAuthUser("Ana", "ana@example.com", "google", "")
	require.Error(t, err)
}

func TestSetFollowedChannelsDeduplicates(t *testing.T) {
	u, err := NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	u.SetFollowedChannels([]string{"ch-g1", "ch-folha", "ch-g1", "ch-uol", "ch-folha"})
	assert.Equal(t, []string{"ch-g1", "ch-folha", "ch-uol"}, u.FollowedChannels())
}

func TestSetInterests(t *testing.T) {
	u, err := NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	u.SetInterests([]string{"tecnologia", "economia"})
	assert.True(t, u.HasInterests())

	// Getter returns a copy
	got := u.Interests()
	got[0] = "mutated"
	assert.Equal(t, []string{"tecnologia", "economia"}, u.Interests())
}
