package services

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"go.uber.org/zap"
)

// FeedAggregator builds post listings with author, comments (and their authors) and
// likes attached. The number of queries per listing does not grow with the number
// of posts returned.
type FeedAggregator struct {
	store  *repositories.Store
	logger *zap.Logger
}

// NewFeedAggregator creates a FeedAggregator
func NewFeedAggregator(store *repositories.Store, logger *zap.Logger) *FeedAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedAggregator{store: store, logger: logger}
}

// GetFeedPosts returns the visible posts of userID and of everyone userID follows,
// newest first.
func (f *FeedAggregator) GetFeedPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	if _, err := f.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := f.store.Posts.ListFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("feed built", zap.Uint("user_id", userID), zap.Int("posts", len(posts)))
	return posts, nil
}

// GetVisiblePosts returns the author's posts as other users see them.
func (f *FeedAggregator) GetVisiblePosts(ctx context.Context, authorID uint) ([]models.Post, error) {
	return f.postsByAuthor(ctx, authorID, false)
}

// GetOwnPosts returns all of the author's posts, hidden ones included.
func (f *FeedAggregator) GetOwnPosts(ctx context.Context, authorID uint) ([]models.Post, error) {
	return f.postsByAuthor(ctx, authorID, true)
}

func (f *FeedAggregator) postsByAuthor(ctx context.Context, authorID uint, includeHidden bool) ([]models.Post, error) {
	if _, err := f.store.Users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return f.store.Posts.ListByAuthor(ctx, authorID, includeHidden)
}
