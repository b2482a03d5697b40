package services

import (
	"context"
	"errors"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/validators"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountService manages user accounts: registration, credentials, username
// changes and moderation flags.
type AccountService struct {
	store    *repositories.Store
	validate *validators.CustomValidator
	logger   *zap.Logger
}

// NewAccountService creates an AccountService
func NewAccountService(store *repositories.Store, logger *zap.Logger) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{store: store, validate: validators.NewValidator(), logger: logger}
}

// Register creates a local account with a bcrypt-hashed password
func (s *AccountService) Register(ctx context.Context, req models.CreateLocalUserRequest) (*models.User, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := checkAvailable(ctx, tx, req.Username, req.Email); err != nil {
			return err
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func checkAvailable(ctx context.Context, tx *repositories.Store, username, email string) error {
	taken, err := tx.Users.UsernameTaken(ctx, username, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("user", "username already taken")
	}
	taken, err = tx.Users.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("user", "email already registered")
	}
	return nil
}

// Authenticate checks a username-or-email and password pair. Unknown logins,
// wrong passwords and banned accounts are all rejected as unauthorized.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.store.Users.GetByLogin(ctx, login)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, apperr.Unauthorized("account has no local password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if user.Banned {
		return nil, apperr.Unauthorized("account is banned")
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users.GetByID(ctx, id)
}

// ChangeUsername renames a user. Taking another user's name is a conflict.
func (s *AccountService) ChangeUsername(ctx context.Context, id uint, username string) (*models.User, error) {
	if err := s.validate.Validate(models.UpdateUsernameRequest{Username: username}); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		taken, err := tx.Users.UsernameTaken(ctx, username, id)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("user", "username already taken")
		}
		if err := tx.Users.UpdateUsername(ctx, id, username); err != nil {
			return err
		}
		user, err = tx.Users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetBanned flips the moderation flag. Banning does not hide or delete content.
func (s *AccountService) SetBanned(ctx context.Context, id uint, banned bool) error {
	if err := s.store.Users.SetBanned(ctx, id, banned); err != nil {
		return err
	}
	s.logger.Info("user moderation changed", zap.Uint("user_id", id), zap.Bool("banned", banned))
	return nil
}

// GetByFirebaseUID resolves the account linked to a Firebase identity
func (s *AccountService) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return s.store.Users.GetByFirebaseUID(ctx, firebaseUID)
}

// LinkFirebaseUser returns the account for a verified Firebase identity. An existing
// account with the same email is linked; otherwise a new account without a local
// password is created under username.
func (s *AccountService) LinkFirebaseUser(ctx context.Context, firebaseUID, email, username string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.Users.GetByFirebaseUID(ctx, firebaseUID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		existing, err = tx.Users.GetByLogin(ctx, email)
		switch {
		case err == nil:
			existing.FirebaseUID = &firebaseUID
			user = existing
			return tx.Users.Save(ctx, existing)
		case !errors.Is(err, apperr.ErrNotFound):
			return err
		}

		if err := s.validate.Validate(models.UpdateUsernameRequest{Username: username}); err != nil {
			return err
		}
		if err := checkAvailable(ctx, tx, username, email); err != nil {
			return err
		}
		user = &models.User{
			Username:    username,
			Email:       email,
			FirebaseUID: &firebaseUID,
			Role:        models.RoleUser,
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
