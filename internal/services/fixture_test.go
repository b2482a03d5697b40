package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/repositories"
	"github.com/4MR4N11/TheDispatch01-sub000/pkg/config"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	store     *repositories.Store
	notifier  *NotificationDispatcher
	relations *RelationshipManager
	feed      *FeedAggregator
	content   *ContentService
	accounts  *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := config.InitDB(config.DatabaseConfig{
		Driver:   "sqlite",
		URL:      "file::memory:?_foreign_keys=1",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(db.CloseDB)

	logger := zaptest.NewLogger(t)
	store := repositories.NewStore(db.Gorm)
	notifier := NewNotificationDispatcher(store, logger)
	return &fixture{
		db:        db.Gorm,
		store:     store,
		notifier:  notifier,
		relations: NewRelationshipManager(store, notifier, logger),
		feed:      NewFeedAggregator(store, logger),
		content:   NewContentService(store, notifier, logger),
		accounts:  NewAccountService(store, logger),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-hash",
		Role:     models.RoleUser,
	}
	if err := f.store.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (f *fixture) post(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	p, err := f.content.PublishPost(context.Background(), author.ID, title, "body of "+title)
	if err != nil {
		t.Fatalf("publish %q: %v", title, err)
	}
	return p
}

// postAt stores a post with a fixed creation time.
func (f *fixture) postAt(t *testing.T, author *models.User, title string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: author.ID, Title: title, Content: "body", CreatedAt: at}
	if err := f.store.Posts.Create(context.Background(), p); err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return p
}

func (f *fixture) comment(t *testing.T, author *models.User, post *models.Post, content string) *models.Comment {
	t.Helper()
	c, err := f.content.AddComment(context.Background(), author.ID, post.ID, content, nil)
	if err != nil {
		t.Fatalf("comment on %d: %v", post.ID, err)
	}
	return c
}

func (f *fixture) follow(t *testing.T, subscriber, target *models.User) {
	t.Helper()
	if err := f.relations.Subscribe(context.Background(), subscriber.ID, target.ID); err != nil {
		t.Fatalf("%s follows %s: %v", subscriber.Username, target.Username, err)
	}
}

func (f *fixture) like(t *testing.T, u *models.User, p *models.Post) {
	t.Helper()
	if err := f.relations.LikePost(context.Background(), u.ID, p.ID); err != nil {
		t.Fatalf("%s likes %d: %v", u.Username, p.ID, err)
	}
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func (f *fixture) notificationsFor(t *testing.T, u *models.User) []models.Notification {
	t.Helper()
	page, err := f.notifier.GetUserNotifications(context.Background(), u.ID, 1, 100)
	if err != nil {
		t.Fatalf("notifications for %s: %v", u.Username, err)
	}
	return page.Items
}

// countQueries counts the SELECT statements issued while fn runs.
func (f *fixture) countQueries(t *testing.T, fn func()) int {
	t.Helper()
	var n int
	name := fmt.Sprintf("test:count_queries:%p", &n)
	if err := f.db.Callback().Query().After("gorm:query").Register(name, func(*gorm.DB) { n++ }); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	defer func() {
		_ = f.db.Callback().Query().Remove(name)
	}()
	fn()
	return n
}
