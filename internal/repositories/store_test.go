package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.PostLike{},
		&models.Subscription{}, &models.Notification{}, &models.Report{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func mustUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Role: models.RoleUser}
	if err := s.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return u
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Posts.GetByID(context.Background(), 12)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got, want := err.Error(), "post: id 12 not found"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDeleteMissingRowNamesIt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	post := &models.Post{AuthorID: author.ID, Title: "t", Content: "c"}
	if err := s.Posts.Create(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := s.Posts.Delete(ctx, post); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := s.Posts.Delete(ctx, post)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if want := fmt.Sprintf("post: id %d not found", post.ID); err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	likes := crud[models.PostLike]{db: s.db, entity: "like"}
	err = likes.Delete(ctx, &models.PostLike{UserID: author.ID, PostID: 999})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for a missing like, got %v", err)
	}
	if strings.Contains(err.Error(), "id ") {
		t.Errorf("expected no empty id in %q", err.Error())
	}
}

func TestFindByCountAndDeleteWhere(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	for _, title := range []string{"b", "a", "c"} {
		if err := s.Posts.Create(ctx, &models.Post{AuthorID: author.ID, Title: title, Content: "x"}); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	posts, err := s.Posts.FindBy(ctx, Where("author_id = ?", author.ID), "title ASC")
	if err != nil {
		t.Fatalf("FindBy: %v", err)
	}
	if len(posts) != 3 || posts[0].Title != "a" || posts[2].Title != "c" {
		t.Errorf("expected posts ordered by title, got %+v", posts)
	}

	n, err := s.Posts.Count(ctx, Where("title <> ?", "a"))
	if err != nil || n != 2 {
		t.Errorf("expected count 2, got %d (%v)", n, err)
	}

	deleted, err := s.Posts.DeleteWhere(ctx, Where("title = ?", "b"))
	if err != nil || deleted != 1 {
		t.Errorf("expected 1 deleted, got %d (%v)", deleted, err)
	}
	exists, err := s.Posts.Exists(ctx, Where("title = ?", "b"))
	if err != nil || exists {
		t.Errorf("expected b to be gone, got %v (%v)", exists, err)
	}
}

func TestFetchWithRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	author := mustUser(t, s, "author")
	fan := mustUser(t, s, "fan")
	post := &models.Post{AuthorID: author.ID, Title: "t", Content: "x"}
	if err := s.Posts.Create(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := s.Comments.Create(ctx, &models.Comment{PostID: post.ID, AuthorID: fan.ID, Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := s.Likes.Add(ctx, fan.ID, post.ID); err != nil {
		t.Fatalf("add like: %v", err)
	}

	got, err := s.Posts.FetchWithRelations(ctx, post.ID, PostRelations...)
	if err != nil {
		t.Fatalf("FetchWithRelations: %v", err)
	}
	if got.Author == nil || got.Author.Username != "author" {
		t.Errorf("expected author, got %+v", got.Author)
	}
	if len(got.Comments) != 1 || got.Comments[0].Author == nil || got.Comments[0].Author.Username != "fan" {
		t.Errorf("expected one comment by fan, got %+v", got.Comments)
	}
	if len(got.Likes) != 1 {
		t.Errorf("expected one like, got %d", len(got.Likes))
	}

	if _, err := s.Posts.FetchWithRelations(ctx, 404, PostRelations...); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestLikesAreASet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustUser(t, s, "u")
	post := &models.Post{AuthorID: u.ID, Title: "t", Content: "x"}
	if err := s.Posts.Create(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	added, err := s.Likes.Add(ctx, u.ID, post.ID)
	if err != nil || !added {
		t.Fatalf("first Add: %v %v", added, err)
	}
	added, err = s.Likes.Add(ctx, u.ID, post.ID)
	if err != nil || added {
		t.Fatalf("second Add should be a no-op, got %v %v", added, err)
	}
	if n, _ := s.Likes.CountByPost(ctx, post.ID); n != 1 {
		t.Errorf("expected 1 like, got %d", n)
	}

	removed, err := s.Likes.Remove(ctx, u.ID, post.ID)
	if err != nil || !removed {
		t.Fatalf("Remove: %v %v", removed, err)
	}
	removed, err = s.Likes.Remove(ctx, u.ID, post.ID)
	if err != nil || removed {
		t.Fatalf("second Remove should be a no-op, got %v %v", removed, err)
	}
}

func TestDuplicateSubscriptionIsConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustUser(t, s, "a")
	b := mustUser(t, s, "b")

	if err := s.Subscriptions.Create(ctx, &models.Subscription{SubscriberID: a.ID, SubscribedToID: b.ID}); err != nil {
		t.Fatalf("first subscription: %v", err)
	}
	err := s.Subscriptions.Create(ctx, &models.Subscription{SubscriberID: a.ID, SubscribedToID: b.ID})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx *Store) error {
		mustUser(t, tx, "ghost")
		return boom
	})
	if !errors.Is(err, apperr.ErrTransaction) || !errors.Is(err, boom) {
		t.Fatalf("expected transaction error wrapping boom, got %v", err)
	}
	if exists, _ := s.Users.Exists(ctx, Where("username = ?", "ghost")); exists {
		t.Error("expected the insert to be rolled back")
	}

	err = s.Transaction(ctx, func(tx *Store) error {
		mustUser(t, tx, "kept")
		_, err := tx.Users.GetByID(ctx, 9999)
		return err
	})
	if !errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrTransaction) {
		t.Fatalf("expected typed not found to pass through, got %v", err)
	}
	if exists, _ := s.Users.Exists(ctx, Where("username = ?", "kept")); exists {
		t.Error("expected the insert to be rolled back")
	}
}

func TestNormalizePageAndMeta(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, 10, 1, 10},
		{2, 1000, 2, MaxPageSize},
	}
	for _, tt := range tests {
		page, size := NormalizePage(tt.page, tt.size)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)", tt.page, tt.size, page, size, tt.wantPage, tt.wantSize)
		}
	}

	p := NewPage[int](nil, 0, 1, 20)
	if p.Items == nil || p.Meta.TotalPages != 0 || p.Meta.HasNextPage {
		t.Errorf("unexpected empty page %+v", p)
	}
}
