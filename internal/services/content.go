package services

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/validators"
	"go.uber.org/zap"
)

// ContentService publishes posts and comments and manages post visibility
type ContentService struct {
	store    *repositories.Store
	notifier *NotificationDispatcher
	validate *validators.CustomValidator
	logger   *zap.Logger
}

// NewContentService creates a ContentService
func NewContentService(store *repositories.Store, notifier *NotificationDispatcher, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		store:    store,
		notifier: notifier,
		validate: validators.NewValidator(),
		logger:   logger,
	}
}

// PublishPost creates a visible post owned by authorID
func (s *ContentService) PublishPost(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	if err := s.validate.Validate(models.CreatePostRequest{Title: title, Content: content}); err != nil {
		return nil, err
	}
	if _, err := s.store.Users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	post := &models.Post{AuthorID: authorID, Title: title, Content: content}
	if err := s.store.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("post published", zap.Uint("post_id", post.ID), zap.Uint("author_id", authorID))
	return post, nil
}

// GetPost returns a post with its author, comments and likes. Hidden posts are only
// returned to their author; everyone else gets not found.
func (s *ContentService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.store.Posts.GetWithRelations(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(post, viewerID); err != nil {
		return nil, err
	}
	return post, nil
}

// visiblePost loads a post viewerID may see and act on
func visiblePost(ctx context.Context, store *repositories.Store, viewerID, postID uint) (*models.Post, error) {
	post, err := store.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := checkVisible(post, viewerID); err != nil {
		return nil, err
	}
	return post, nil
}

// checkVisible reports a hidden post as not found to everyone but its author
func checkVisible(post *models.Post, viewerID uint) error {
	if post.Hidden && post.AuthorID != viewerID {
		return apperr.NotFound("post", post.ID)
	}
	return nil
}

// SetPostHidden toggles the visibility of one of authorID's posts
func (s *ContentService) SetPostHidden(ctx context.Context, authorID, postID uint, hidden bool) error {
	if err := s.requireOwnPost(ctx, s.store, authorID, postID); err != nil {
		return err
	}
	return s.store.Posts.SetHidden(ctx, postID, hidden)
}

// RequireOwnPost fails with not found unless authorID wrote postID
func (s *ContentService) RequireOwnPost(ctx context.Context, authorID, postID uint) error {
	return s.requireOwnPost(ctx, s.store, authorID, postID)
}

func (s *ContentService) requireOwnPost(ctx context.Context, store *repositories.Store, authorID, postID uint) error {
	post, err := store.Posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != authorID {
		return apperr.NotFound("post", postID)
	}
	return nil
}

// AddComment stores a comment and notifies the post's author. When replyTo names a
// comment on the same post, that comment's author is notified of the reply too.
func (s *ContentService) AddComment(ctx context.Context, authorID, postID uint, content string, replyTo *uint) (*models.Comment, error) {
	if err := s.validate.Validate(models.CreateCommentRequest{Content: content}); err != nil {
		return nil, err
	}

	var comment *models.Comment
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		commenter, err := tx.Users.GetByID(ctx, authorID)
		if err != nil {
			return err
		}
		post, err := visiblePost(ctx, tx, authorID, postID)
		if err != nil {
			return err
		}

		var parent *models.Comment
		if replyTo != nil {
			parent, err = tx.Comments.GetByID(ctx, *replyTo)
			if err != nil {
				return err
			}
			if parent.PostID != postID {
				return apperr.Validation("comment", "reply must target a comment on the same post")
			}
		}

		comment = &models.Comment{PostID: postID, AuthorID: authorID, Content: content}
		if err := tx.Comments.Create(ctx, comment); err != nil {
			return err
		}
		comment.Author = commenter

		notifier := s.notifier.WithStore(tx)
		if err := notifier.NotifyPostComment(ctx, commenter, post, comment); err != nil {
			return err
		}
		if parent != nil && parent.AuthorID != post.AuthorID {
			return notifier.NotifyCommentReply(ctx, commenter, parent, comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a post's comments, oldest first. A hidden post's comments are
// only listed for its author.
func (s *ContentService) ListComments(ctx context.Context, viewerID, postID uint) ([]models.Comment, error) {
	if _, err := visiblePost(ctx, s.store, viewerID, postID); err != nil {
		return nil, err
	}
	return s.store.Comments.ListByPost(ctx, postID)
}

// DeleteComment removes one of authorID's comments and the notifications pointing
// at it.
func (s *ContentService) DeleteComment(ctx context.Context, authorID, commentID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != authorID {
			return apperr.NotFound("comment", commentID)
		}
		if _, err := tx.Notifications.DeleteWhere(ctx, repositories.Where("comment_id = ?", commentID)); err != nil {
			return err
		}
		return tx.Comments.Delete(ctx, comment)
	})
}
