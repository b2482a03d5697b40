package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

// PostRelations are the collections attached to every post on the read path.
var PostRelations = []string{"Author", "Comments", "Comments.Author", "Likes"}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	EntityRepository[models.Post]
	GetWithRelations(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, includeHidden bool) ([]models.Post, error)
	ListFeed(ctx context.Context, userID uint) ([]models.Post, error)
	IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
	SetHidden(ctx context.Context, id uint, hidden bool) error
}

type gormPostRepository struct {
	crud[models.Post]
}

// NewPostRepository creates a PostRepository over db
func NewPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{crud[models.Post]{db: db, entity: "post"}}
}

// withRelations preloads author, comments (oldest first, with their authors) and
// like rows. Each relation costs one query for the whole result set.
func (r *gormPostRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC").Order("comments.id ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes")
}

func (r *gormPostRepository) GetWithRelations(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations(ctx).First(&post, id).Error; err != nil {
		return nil, translateRead(err, r.entity, id)
	}
	return &post, nil
}

// ListByAuthor retrieves an author's posts, newest first
func (r *gormPostRepository) ListByAuthor(ctx context.Context, authorID uint, includeHidden bool) ([]models.Post, error) {
	var posts []models.Post
	q := r.withRelations(ctx).Where("posts.author_id = ?", authorID)
	if !includeHidden {
		q = q.Where("posts.hidden = ?", false)
	}
	err := q.Order("posts.created_at DESC").Order("posts.id DESC").Find(&posts).Error
	return posts, err
}

// ListFeed retrieves the visible posts of the user and of everyone the user follows,
// newest first. The follow set is resolved in the same statement.
func (r *gormPostRepository) ListFeed(ctx context.Context, userID uint) ([]models.Post, error) {
	following := r.db.Model(&models.Subscription{}).
		Select("subscribed_to_id").
		Where("subscriber_id = ?", userID)

	var posts []models.Post
	err := r.withRelations(ctx).
		Where("posts.author_id = ? OR posts.author_id IN (?)", userID, following).
		Where("posts.hidden = ?", false).
		Order("posts.created_at DESC").Order("posts.id DESC").
		Find(&posts).Error
	return posts, err
}

func (r *gormPostRepository) IDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.conn(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *gormPostRepository) SetHidden(ctx context.Context, id uint, hidden bool) error {
	res := r.conn(ctx).Model(&models.Post{}).Where("id = ?", id).Update("hidden", hidden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateRead(gorm.ErrRecordNotFound, r.entity, id)
	}
	return nil
}
