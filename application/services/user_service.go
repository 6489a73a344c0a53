package services

import (
	"context"

	"merculy-backend/application/ports"
	domaincfg "merculy-backend/domain/config"
	"merculy-backend/domain/news"
	"merculy-backend/domain/user"
	pkgerrors "merculy-backend/pkg/errors"

	"go.uber.org/zap"
)

// PreferenceUpdate carries the user-editable profile fields. Nil
// pointers mean "leave unchanged".
type PreferenceUpdate struct {
	Name             *string
	Interests        []string
	FollowedChannels []string
	NewsletterFormat *string
	DeliveryTime     *string
	DeliveryDays     []string
}

// UserService handles profile reads and preference updates
type UserService struct {
	users  ports.UserRepository
	cfg    *domaincfg.DomainConfig
	logger *zap.Logger
}

// NewUserService creates a user service
func NewUserService(users ports.UserRepository, cfg *domaincfg.DomainConfig, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		cfg:    cfg,
		logger: logger,
	}
}

// Get retrieves a user profile
func (s *UserService) Get(ctx context.Context, userID string) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdatePreferences applies a partial preference update
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, update PreferenceUpdate) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(update.Interests) > s.cfg.MaxInterests {
		return nil, pkgerrors.NewValidationError("too many interests")
	}
	if len(update.FollowedChannels) > s.cfg.MaxFollowedChannels {
		return nil, pkgerrors.NewValidationError("too many followed channels")
	}

	if update.Name != nil {
		u.UpdateProfile(*update.Name)
	}
	if update.Interests != nil {
		u.SetInterests(update.Interests)
	}
	if update.FollowedChannels != nil {
		u.SetFollowedChannels(update.FollowedChannels)
	}
	if update.NewsletterFormat != nil {
		u.SetNewsletterFormat(news.ParseFormat(*update.NewsletterFormat))
	}
	if update.DeliveryTime != nil || len(update.DeliveryDays) > 0 {
		deliveryTime := ""
		if update.DeliveryTime != nil {
			deliveryTime = *update.DeliveryTime
		}
		u.SetDeliverySchedule(deliveryTime, update.DeliveryDays)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User preferences updated",
		zap.String("user_id", userID),
		zap.Int("interests", len(u.Interests())),
		zap.Int("followed_channels", len(u.FollowedChannels())),
	)

	return u, nil
}
