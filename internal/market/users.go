package market

import (
	"context"
	"fmt"
	"strings"

	"priceoffers/models"

	"github.com/google/uuid"
)

const welcomeNotification = "Thank you for registration. Your account is ready to use."

// ProfilePatch is a merge patch for the caller's own profile.
type ProfilePatch struct {
	Name models.Optional[string]
}

// RegisterUser заводит пользователя и кладёт ему приветственное уведомление в той же транзакции.
func (s *Service) RegisterUser(ctx context.Context, name, email string) (*models.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, newError(KindInvalidInput, "user name and email are required")
	}

	u := &models.User{ID: uuid.New(), Name: name, Email: email}
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateUser(ctx, u); err != nil {
			return storeErr(err, "user with this email")
		}
		return s.notify(ctx, u.ID, welcomeNotification)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) Profile(ctx context.Context, callerID uuid.UUID) (*models.User, error) {
	u, err := s.store.GetUser(ctx, callerID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}

// UpdateProfile меняет имя вызывающего пользователя. Пустой патч возвращает профиль без изменений.
func (s *Service) UpdateProfile(ctx context.Context, callerID uuid.UUID, patch ProfilePatch) (*models.User, error) {
	u, err := s.Profile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !patch.Name.Set {
		return u, nil
	}

	name := strings.TrimSpace(patch.Name.Value)
	if name == "" {
		return nil, newError(KindInvalidInput, "user name is required")
	}
	if err := s.store.UpdateUserName(ctx, u.ID, name); err != nil {
		return nil, storeErr(err, "user")
	}
	u.Name = name
	return u, nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми.
func (s *Service) ListNotifications(ctx context.Context, callerID uuid.UUID) ([]models.Notification, error) {
	notifications, err := s.store.ListNotifications(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Service) DeleteNotification(ctx context.Context, callerID, notificationID uuid.UUID) error {
	n, err := s.store.GetNotification(ctx, notificationID)
	if err != nil {
		return storeErr(err, "notification")
	}
	if n.UserID != callerID {
		return newError(KindForbidden, "permission error, this notification does not belong to you")
	}
	if err := s.store.DeleteNotification(ctx, n.ID); err != nil {
		return storeErr(err, "notification")
	}
	return nil
}
