package user

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"merculy-backend/domain/news"
	pkgerrors "merculy-backend/pkg/errors"
)

// Delivery defaults applied to new accounts
const (
	DefaultDeliveryTime = "08:00"
)

var defaultDeliveryDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// User is an account with newsletter preferences. Interests and
// followed channels feed the allocation engine; delivery settings feed
// the out-of-process scheduler.
type User struct {
	id               string
	name             string
	email            string
	passwordHash     string
	oauthProvider    string
	oauthSubject     string
	interests        []string
	followedChannels []string
	newsletterFormat news.Format
	deliveryTime     string
	deliveryDays     []string
	createdAt        time.Time
	updatedAt        time.Time
}

// IDFromEmail derives the stable user identifier from an email address
func IDFromEmail(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// NewUser creates a password-based account
func NewUser(name, email, passwordHash string) (*User, error) {
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password hash cannot be empty")
	}

	return newAccount(name, email, passwordHash, "", ""), nil
}

// NewOAuthUser creates an account from a verified external identity
func NewOAuthUser(name, email, provider, subject string) (*User, error) {
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if provider == "" || subject == "" {
		return nil, pkgerrors.NewValidationError("oauth provider and subject are required")
	}

	return newAccount(name, email, "", provider, subject), nil
}

func newAccount(name, email, passwordHash, provider, subject string) *User {
	now := time.Now()
	return &User{
		id:               IDFromEmail(email),
		name:             name,
		email:            email,
		passwordHash:     passwordHash,
		oauthProvider:    provider,
		oauthSubject:     subject,
		interests:        []string{},
		followedChannels: []string{},
		newsletterFormat: news.FormatSingle,
		deliveryTime:     DefaultDeliveryTime,
		deliveryDays:     append([]string(nil), defaultDeliveryDays...),
		createdAt:        now,
		updatedAt:        now,
	}
}

// ReconstructUser rebuilds a user from repository data
func ReconstructUser(
	id, name, email, passwordHash, oauthProvider, oauthSubject string,
	interests, followedChannels []string,
	newsletterFormat news.Format,
	deliveryTime string,
	deliveryDays []string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("user id cannot be empty")
	}
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}

	return &User{
		id:               id,
		name:             name,
		email:            email,
		passwordHash:     passwordHash,
		oauthProvider:    oauthProvider,
		oauthSubject:     oauthSubject,
		interests:        append([]string(nil), interests...),
		followedChannels: append([]string(nil), followedChannels...),
		newsletterFormat: newsletterFormat,
		deliveryTime:     deliveryTime,
		deliveryDays:     append([]string(nil), deliveryDays...),
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

// UpdateProfile changes the display name
func (u *User) UpdateProfile(name string) {
	u.name = name
	u.touch()
}

// SetInterests replaces the interest set, dropping empty labels and
// duplicates while preserving first-seen order
func (u *User) SetInterests(interests []string) {
	u.interests = dedupe(interests)
	u.touch()
}

// SetFollowedChannels replaces the followed channel set
func (u *User) SetFollowedChannels(channels []string) {
	u.followedChannels = dedupe(channels)
	u.touch()
}

// SetNewsletterFormat changes the preferred generation format
func (u *User) SetNewsletterFormat(format news.Format) {
	u.newsletterFormat = format
	u.touch()
}

// SetDeliverySchedule changes the delivery time and days
func (u *User) SetDeliverySchedule(deliveryTime string, days []string) {
	if deliveryTime != "" {
		u.deliveryTime = deliveryTime
	}
	if len(days) > 0 {
		u.deliveryDays = dedupe(days)
	}
	u.touch()
}

// HasInterests reports whether any topics are configured
func (u *User) HasInterests() bool { return len(u.interests) > 0 }

// ID returns the user's identifier
func (u *User) ID() string { return u.id }

// Name returns the display name
func (u *User) Name() string { return u.name }

// Email returns the account email
func (u *User) Email() string { return u.email }

// PasswordHash returns the bcrypt hash, empty for oauth-only accounts
func (u *User) PasswordHash() string { return u.passwordHash }

// OAuthProvider returns the external identity provider, if any
func (u *User) OAuthProvider() string { return u.oauthProvider }

// OAuthSubject returns the external identity subject, if any
func (u *User) OAuthSubject() string { return u.oauthSubject }

// Interests returns the topic labels the user follows
func (u *User) Interests() []string {
	return append([]string(nil), u.interests...)
}

// FollowedChannels returns the followed source identifiers
func (u *User) FollowedChannels() []string {
	return append([]string(nil), u.followedChannels...)
}

// NewsletterFormat returns the preferred generation format
func (u *User) NewsletterFormat() news.Format { return u.newsletterFormat }

// DeliveryTime returns the preferred delivery time (HH:MM)
func (u *User) DeliveryTime() string { return u.deliveryTime }

// DeliveryDays returns the preferred delivery days
func (u *User) DeliveryDays() []string {
	return append([]string(nil), u.deliveryDays...)
}

// CreatedAt returns the account creation timestamp
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last modification timestamp
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) touch() {
	u.updatedAt = time.Now()
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
