package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/apperr"
	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
)

func TestPublishPostValidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")

	if _, err := f.content.PublishPost(ctx, author.ID, "", "body"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for empty title, got %v", err)
	}
	if _, err := f.content.PublishPost(ctx, 999, "title", "body"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for unknown author, got %v", err)
	}

	post, err := f.content.PublishPost(ctx, author.ID, "title", "body")
	if err != nil {
		t.Fatalf("PublishPost: %v", err)
	}
	if post.ID == 0 || post.Hidden {
		t.Errorf("expected a stored visible post, got %+v", post)
	}
}

func TestSetPostHiddenOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	other := f.user(t, "other")
	post := f.post(t, author, "p")

	if err := f.content.SetPostHidden(ctx, other.ID, post.ID, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for non-author, got %v", err)
	}
	if err := f.content.SetPostHidden(ctx, author.ID, post.ID, true); err != nil {
		t.Fatalf("SetPostHidden: %v", err)
	}

	if _, err := f.content.GetPost(ctx, other.ID, post.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected hidden post to be invisible to others, got %v", err)
	}
	got, err := f.content.GetPost(ctx, author.ID, post.ID)
	if err != nil {
		t.Fatalf("GetPost as author: %v", err)
	}
	if !got.Hidden {
		t.Error("expected post to be hidden")
	}

	if err := f.content.SetPostHidden(ctx, author.ID, post.ID, false); err != nil {
		t.Fatalf("unhide: %v", err)
	}
	if _, err := f.content.GetPost(ctx, other.ID, post.ID); err != nil {
		t.Errorf("expected unhidden post to be visible, got %v", err)
	}
}

func TestAddCommentRejectsReplyAcrossPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	commenter := f.user(t, "commenter")
	p1 := f.post(t, author, "one")
	p2 := f.post(t, author, "two")
	parent := f.comment(t, commenter, p1, "on one")

	_, err := f.content.AddComment(ctx, author.ID, p2.ID, "wrong thread", &parent.ID)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := f.count(t, &models.Comment{}, "post_id = ?", p2.ID); n != 0 {
		t.Errorf("expected nothing stored, got %d comments", n)
	}

	missing := uint(999)
	if _, err := f.content.AddComment(ctx, author.ID, p1.ID, "ghost", &missing); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for missing parent, got %v", err)
	}
}

func TestAddCommentValidatesContent(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	post := f.post(t, author, "p")

	_, err := f.content.AddComment(context.Background(), author.ID, post.ID, strings.Repeat("x", 501), nil)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReplyToPostAuthorNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	fan := f.user(t, "fan")
	post := f.post(t, author, "p")

	parent := f.comment(t, author, post, "author speaks")
	if _, err := f.content.AddComment(ctx, fan.ID, post.ID, "fan answers", &parent.ID); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if n := f.count(t, &models.Notification{}, "recipient_id = ?", author.ID); n != 1 {
		t.Errorf("expected a single notification for the author, got %d", n)
	}
}

func TestListAndDeleteComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "author")
	fan := f.user(t, "fan")
	post := f.post(t, author, "p")

	c := f.comment(t, fan, post, "hello")
	f.comment(t, author, post, "hi back")

	comments, err := f.content.ListComments(ctx, fan.ID, post.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != c.ID || comments[0].Author == nil {
		t.Fatalf("expected fan's comment first with author, got %+v", comments)
	}

	if err := f.content.DeleteComment(ctx, author.ID, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found when deleting someone else's comment, got %v", err)
	}
	if err := f.content.DeleteComment(ctx, fan.ID, c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if n := f.count(t, &models.Notification{}, "comment_id = ?", c.ID); n != 0 {
		t.Errorf("expected notifications for the comment to be gone, got %d", n)
	}
	if n := f.count(t, &models.Comment{}, "post_id = ?", post.ID); n != 1 {
		t.Errorf("expected 1 comment left, got %d", n)
	}
}
