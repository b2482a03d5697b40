package services

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"go.uber.org/zap"
)

// RelationshipManager owns every operation that changes more than one entity at a
// time: cascading deletes, likes and follows. Each operation runs in a single
// transaction, so a failure leaves the store as it was.
type RelationshipManager struct {
	store    *repositories.Store
	notifier *NotificationDispatcher
	logger   *zap.Logger
}

// NewRelationshipManager creates a RelationshipManager
func NewRelationshipManager(store *repositories.Store, notifier *NotificationDispatcher, logger *zap.Logger) *RelationshipManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelationshipManager{store: store, notifier: notifier, logger: logger}
}

type cascadeStep struct {
	name string
	run  func() (int64, error)
}

func runSteps(steps []cascadeStep) (map[string]int64, error) {
	removed := make(map[string]int64, len(steps))
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return nil, err
		}
		removed[step.name] += n
	}
	return removed, nil
}

// DeleteUser removes the user and everything that references them: reports filed by
// or against them, the notifications they sent or received, their comments, their
// follow edges in both directions, their likes and their posts with all
// post-dependent data. It returns true once the user is gone.
func (m *RelationshipManager) DeleteUser(ctx context.Context, userID uint) (bool, error) {
	var removed map[string]int64
	err := m.store.Transaction(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		removed, err = deleteUserGraph(ctx, tx, user)
		return err
	})
	if err != nil {
		m.logger.Warn("user deletion rolled back", zap.Uint("user_id", userID), zap.Error(err))
		return false, err
	}

	m.logger.Info("user deleted",
		zap.Uint("user_id", userID),
		zap.Int64("subscriptions", removed["subscriptions"]),
		zap.Int64("notifications", removed["notifications"]),
		zap.Int64("comments", removed["comments"]),
		zap.Int64("likes", removed["likes"]),
		zap.Int64("posts", removed["posts"]),
	)
	return true, nil
}

// deleteUserGraph deletes in dependency order: nothing is removed while a row that
// must survive it still points at it.
func deleteUserGraph(ctx context.Context, tx *repositories.Store, user *models.User) (map[string]int64, error) {
	postIDs, err := tx.Posts.IDsByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	steps := []cascadeStep{
		{"reports", func() (int64, error) { return tx.Reports.DeleteInvolvingUser(ctx, user.ID) }},
		{"notifications", func() (int64, error) { return tx.Notifications.DeleteInvolvingUser(ctx, user.ID) }},
		{"comments", func() (int64, error) { return tx.Comments.DeleteByAuthor(ctx, user.ID) }},
		{"subscriptions", func() (int64, error) { return tx.Subscriptions.DeleteInvolving(ctx, user.ID) }},
		{"likes", func() (int64, error) { return tx.Likes.DeleteByUser(ctx, user.ID) }},
	}
	for _, postID := range postIDs {
		steps = append(steps, cascadeStep{"posts", func() (int64, error) {
			return deletePostGraph(ctx, tx, postID)
		}})
	}
	steps = append(steps, cascadeStep{"users", func() (int64, error) {
		return 1, tx.Users.Delete(ctx, user)
	}})

	return runSteps(steps)
}

// deletePostGraph removes a post after its notifications, likes and comments.
func deletePostGraph(ctx context.Context, tx *repositories.Store, postID uint) (int64, error) {
	if _, err := tx.Notifications.DeleteForPost(ctx, postID); err != nil {
		return 0, err
	}
	if _, err := tx.Likes.DeleteByPost(ctx, postID); err != nil {
		return 0, err
	}
	if _, err := tx.Comments.DeleteByPost(ctx, postID); err != nil {
		return 0, err
	}
	return tx.Posts.DeleteWhere(ctx, repositories.Where("id = ?", postID))
}

// DeletePost removes a post together with its comments, likes and notifications.
// The author's account is untouched.
func (m *RelationshipManager) DeletePost(ctx context.Context, postID uint) (bool, error) {
	err := m.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Posts.GetByID(ctx, postID); err != nil {
			return err
		}
		_, err := deletePostGraph(ctx, tx, postID)
		return err
	})
	if err != nil {
		return false, err
	}
	m.logger.Info("post deleted", zap.Uint("post_id", postID))
	return true, nil
}

// LikePost adds userID to the post's like set. Liking twice is a no-op; only the
// first like notifies the post's author. A hidden post can only be liked by its author.
func (m *RelationshipManager) LikePost(ctx context.Context, userID, postID uint) error {
	return m.store.Transaction(ctx, func(tx *repositories.Store) error {
		liker, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		post, err := visiblePost(ctx, tx, userID, postID)
		if err != nil {
			return err
		}

		added, err := tx.Likes.Add(ctx, userID, postID)
		if err != nil {
			return err
		}
		if !added {
			return nil
		}
		return m.notifier.WithStore(tx).NotifyPostLike(ctx, liker, post)
	})
}

// UnlikePost removes userID from the post's like set. Removing an absent like is a
// no-op.
func (m *RelationshipManager) UnlikePost(ctx context.Context, userID, postID uint) error {
	return m.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.Posts.GetByID(ctx, postID); err != nil {
			return err
		}
		_, err := tx.Likes.Remove(ctx, userID, postID)
		return err
	})
}

// Subscribe makes subscriberID follow targetID and notifies the target. Following
// yourself is invalid; following twice is a conflict.
func (m *RelationshipManager) Subscribe(ctx context.Context, subscriberID, targetID uint) error {
	if subscriberID == targetID {
		return apperr.Validation("subscription", "users cannot follow themselves")
	}

	err := m.store.Transaction(ctx, func(tx *repositories.Store) error {
		subscriber, err := tx.Users.GetByID(ctx, subscriberID)
		if err != nil {
			return err
		}
		target, err := tx.Users.GetByID(ctx, targetID)
		if err != nil {
			return err
		}

		following, err := tx.Subscriptions.IsFollowing(ctx, subscriberID, targetID)
		if err != nil {
			return err
		}
		if following {
			return apperr.Conflict("subscription", "already following this user")
		}

		sub := &models.Subscription{SubscriberID: subscriberID, SubscribedToID: targetID}
		if err := tx.Subscriptions.Create(ctx, sub); err != nil {
			return err
		}
		return m.notifier.WithStore(tx).NotifyNewFollower(ctx, subscriber, target)
	})
	if err != nil {
		return err
	}
	m.logger.Debug("subscription created", zap.Uint("subscriber_id", subscriberID), zap.Uint("target_id", targetID))
	return nil
}

// Unsubscribe removes the follow edge if it exists.
func (m *RelationshipManager) Unsubscribe(ctx context.Context, subscriberID, targetID uint) error {
	_, err := m.store.Subscriptions.DeletePair(ctx, subscriberID, targetID)
	return err
}

// IsFollowing reports whether subscriberID follows targetID.
func (m *RelationshipManager) IsFollowing(ctx context.Context, subscriberID, targetID uint) (bool, error) {
	return m.store.Subscriptions.IsFollowing(ctx, subscriberID, targetID)
}

func (m *RelationshipManager) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := m.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return m.store.Subscriptions.GetFollowers(ctx, userID)
}

func (m *RelationshipManager) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := m.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return m.store.Subscriptions.GetFollowing(ctx, userID)
}

// FollowCounts is the follower and following totals of one user.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

func (m *RelationshipManager) FollowCounts(ctx context.Context, userID uint) (*FollowCounts, error) {
	if _, err := m.store.Users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	followers, err := m.store.Subscriptions.GetFollowersCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := m.store.Subscriptions.GetFollowingCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FollowCounts{Followers: followers, Following: following}, nil
}

// ReportUser files a pending report from reporterID against reportedID.
func (m *RelationshipManager) ReportUser(ctx context.Context, reporterID, reportedID uint, req models.CreateReportRequest) (*models.Report, error) {
	if reporterID == reportedID {
		return nil, apperr.Validation("report", "users cannot report themselves")
	}

	report := &models.Report{
		ReporterID: reporterID,
		ReportedID: reportedID,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     models.ReportStatusPending,
	}
	err := m.store.Transaction(ctx, func(tx *repositories.Store) error {
		for _, id := range []uint{reporterID, reportedID} {
			if _, err := tx.Users.GetByID(ctx, id); err != nil {
				return err
			}
		}
		return tx.Reports.Create(ctx, report)
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("user reported",
		zap.Uint("reporter_id", reporterID),
		zap.Uint("reported_id", reportedID),
		zap.String("reason", req.Reason),
	)
	return report, nil
}

// LikeSummary is the like total of a post and whether the viewer is in its like set.
type LikeSummary struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

func (m *RelationshipManager) LikeSummary(ctx context.Context, userID, postID uint) (*LikeSummary, error) {
	if _, err := visiblePost(ctx, m.store, userID, postID); err != nil {
		return nil, err
	}
	count, err := m.store.Likes.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked, err := m.store.Likes.HasUserLikedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return &LikeSummary{Count: count, Liked: liked}, nil
}

// PendingReports lists reports awaiting moderation, oldest first
func (m *RelationshipManager) PendingReports(ctx context.Context, limit int) ([]models.Report, error) {
	return m.store.Reports.ListPending(ctx, limit)
}
