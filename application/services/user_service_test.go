package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domaincfg "merculy-backend/domain/config"
	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	pkgerrors "merculy-backend/pkg/errors"
)

func newUserFixture(t *testing.T) (*UserService, *user.User) {
	t.Helper()

	u, err := user.NewUser("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	users := newFakeUserRepo(u)
	svc := NewUserService(users, domaincfg.DefaultDomainConfig(), zap.NewNop())
	return svc, u
}

func TestUpdatePreferencesPartial(t *testing.T) {
	svc, u := newUserFixture(t)
	ctx := context.Background()

	name := "Ana Silva"
	updated, err := svc.UpdatePreferences(ctx, u.ID(), PreferenceUpdate{
		Name:      &name,
		Interests: []string{"tecnologia", "economia"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Silva", updated.Name())
	assert.Equal(t, []string{"tecnologia", "economia"}, updated.Interests())
	// Untouched fields keep their defaults
	assert.Equal(t, news.FormatSingle, updated.NewsletterFormat())
	assert.Equal(t, user.DefaultDeliveryTime, updated.DeliveryTime())
}

func TestUpdatePreferencesFormat(t *testing.T) {
	svc, u := newUserFixture(t)

	format := "by_topic"
	updated, err := svc.UpdatePreferences(context.Background(), u.ID(), PreferenceUpdate{
		NewsletterFormat: &format,
	})
	require.NoError(t, err)
	assert.Equal(t, news.FormatByTopic, updated.NewsletterFormat())
}

func TestUpdatePreferencesTooManyInterests(t *testing.T) {
	svc, u := newUserFixture(t)

	interests := make([]string, domaincfg.DefaultDomainConfig().MaxInterests+1)
	for i := range interests {
		interests[i] = "topic"
	}

	_, err := svc.UpdatePreferences(context.Background(), u.ID(), PreferenceUpdate{
		Interests: interests,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestUpdatePreferencesUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.UpdatePreferences(context.Background(), "missing", PreferenceUpdate{})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
