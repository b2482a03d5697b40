package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"gorm.io/gorm"
)

// Store groups the repositories of every entity kind over one connection. A Store
// handed to a Transaction callback is bound to that transaction, so every repository
// reached through it joins the same unit of work.
type Store struct {
	db *gorm.DB

	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Subscriptions SubscriptionRepository
	Likes         LikeRepository
	Notifications NotificationRepository
	Reports       ReportRepository
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewUserRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Likes:         NewLikeRepository(db),
		Notifications: NewNotificationRepository(db),
		Reports:       NewReportRepository(db),
	}
}

// DB returns the underlying connection (or transaction).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside one transaction. Any error returned by fn, or a failed
// commit, rolls back every write fn made. Typed errors from fn are returned as-is;
// anything else is wrapped as apperr.ErrTransaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
	return apperr.Transaction(err)
}
