package services

import (
	"context"
	"time"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"go.uber.org/zap"
)

const titlePreviewLength = 50

// NotificationDispatcher records notifications as a side effect of user actions and
// serves the recipient's read path. It never notifies a user about their own action.
type NotificationDispatcher struct {
	store  *repositories.Store
	logger *zap.Logger
}

// NewNotificationDispatcher creates a NotificationDispatcher
func NewNotificationDispatcher(store *repositories.Store, logger *zap.Logger) *NotificationDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationDispatcher{store: store, logger: logger}
}

// WithStore returns a dispatcher writing through tx, so notifications commit or roll
// back together with the action that caused them.
func (d *NotificationDispatcher) WithStore(tx *repositories.Store) *NotificationDispatcher {
	return &NotificationDispatcher{store: tx, logger: d.logger}
}

// CreateNotification stores an unread notification for recipient. When actor and
// recipient are the same user nothing is stored and nil is returned.
func (d *NotificationDispatcher) CreateNotification(
	ctx context.Context,
	recipient, actor *models.User,
	notificationType models.NotificationType,
	message string,
	post *models.Post,
	comment *models.Comment,
) error {
	if recipient == nil {
		return apperr.Validation("notification", "recipient is required")
	}
	if actor != nil && actor.ID == recipient.ID {
		d.logger.Debug("self notification suppressed",
			zap.Uint("user_id", recipient.ID),
			zap.String("type", string(notificationType)),
		)
		return nil
	}

	n := &models.Notification{
		RecipientID: recipient.ID,
		Type:        notificationType,
		Message:     message,
		IsRead:      false,
	}
	if actor != nil {
		n.ActorID = uintPtr(actor.ID)
	}
	if post != nil {
		n.PostID = uintPtr(post.ID)
	}
	if comment != nil {
		n.CommentID = uintPtr(comment.ID)
	}
	if err := d.store.Notifications.Create(ctx, n); err != nil {
		return err
	}

	d.logger.Debug("notification created",
		zap.Uint("notification_id", n.ID),
		zap.Uint("recipient_id", recipient.ID),
		zap.String("type", string(notificationType)),
	)
	return nil
}

// NotifyNewFollower tells followed that follower subscribed to them
func (d *NotificationDispatcher) NotifyNewFollower(ctx context.Context, follower, followed *models.User) error {
	message := follower.Username + " started following you."
	return d.CreateNotification(ctx, followed, follower, models.NotificationNewFollower, message, nil, nil)
}

// NotifyPostLike tells the post's author that liker liked it
func (d *NotificationDispatcher) NotifyPostLike(ctx context.Context, liker *models.User, post *models.Post) error {
	message := liker.Username + " liked your post: " + previewTitle(post.Title)
	return d.CreateNotification(ctx, authorOf(post), liker, models.NotificationPostLike, message, post, nil)
}

// NotifyPostComment tells the post's author that commenter commented on it
func (d *NotificationDispatcher) NotifyPostComment(ctx context.Context, commenter *models.User, post *models.Post, comment *models.Comment) error {
	message := commenter.Username + " commented on your post: " + previewTitle(post.Title)
	return d.CreateNotification(ctx, authorOf(post), commenter, models.NotificationPostComment, message, post, comment)
}

// NotifyCommentReply tells the parent comment's author that replier answered it.
// The notification points at the parent's post and at the reply.
func (d *NotificationDispatcher) NotifyCommentReply(ctx context.Context, replier *models.User, parent, reply *models.Comment) error {
	recipient := parent.Author
	if recipient == nil {
		recipient = &models.User{ID: parent.AuthorID}
	}
	message := replier.Username + " replied to your comment."
	post := &models.Post{ID: parent.PostID}
	return d.CreateNotification(ctx, recipient, replier, models.NotificationCommentReply, message, post, reply)
}

// GetUserNotifications returns one page of the user's notifications, newest first
func (d *NotificationDispatcher) GetUserNotifications(ctx context.Context, userID uint, page, size int) (*repositories.Page[models.Notification], error) {
	if err := d.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return d.store.Notifications.GetByRecipientID(ctx, userID, page, size)
}

// GetGroupedNotifications buckets the user's notifications into today, yesterday,
// this week and older.
func (d *NotificationDispatcher) GetGroupedNotifications(ctx context.Context, userID uint) (*repositories.GroupedNotifications, error) {
	if err := d.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return d.store.Notifications.GetGrouped(ctx, userID, time.Now())
}

func (d *NotificationDispatcher) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	if err := d.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	return d.store.Notifications.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks one of userID's notifications as read. A notification owned by
// someone else is reported as not found.
func (d *NotificationDispatcher) MarkAsRead(ctx context.Context, notificationID, userID uint) error {
	matched, err := d.store.Notifications.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("notification", notificationID)
	}
	return nil
}

func (d *NotificationDispatcher) MarkAllAsRead(ctx context.Context, userID uint) error {
	if err := d.requireUser(ctx, userID); err != nil {
		return err
	}
	updated, err := d.store.Notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		return err
	}
	d.logger.Debug("notifications marked read", zap.Uint("user_id", userID), zap.Int64("count", updated))
	return nil
}

func (d *NotificationDispatcher) requireUser(ctx context.Context, userID uint) error {
	_, err := d.store.Users.GetByID(ctx, userID)
	return err
}

// previewTitle cuts a post title to titlePreviewLength characters, marking the cut.
func previewTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titlePreviewLength {
		return title
	}
	return string(runes[:titlePreviewLength]) + "..."
}

func authorOf(post *models.Post) *models.User {
	if post.Author != nil {
		return post.Author
	}
	return &models.User{ID: post.AuthorID}
}

func uintPtr(v uint) *uint {
	return &v
}
