package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	EntityRepository[models.User]
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdateUsername(ctx context.Context, id uint, username string) error
	SetBanned(ctx context.Context, id uint, banned bool) error
}

type gormUserRepository struct {
	crud[models.User]
}

// NewUserRepository creates a UserRepository over db
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{crud[models.User]{db: db, entity: "user"}}
}

// GetByLogin retrieves a user by username or email
func (r *gormUserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		return nil, translateRead(err, r.entity, login)
	}
	return &user, nil
}

// GetByFirebaseUID retrieves a user by Firebase UID
func (r *gormUserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translateRead(err, r.entity, firebaseUID)
	}
	return &user, nil
}

func (r *gormUserRepository) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return r.Exists(ctx, Where("username = ? AND id <> ?", username, exceptID))
}

func (r *gormUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, Where("email = ?", email))
}

func (r *gormUserRepository) UpdateUsername(ctx context.Context, id uint, username string) error {
	res := r.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("username", username)
	if res.Error != nil {
		return translateWrite(res.Error, r.entity)
	}
	if res.RowsAffected == 0 {
		return translateRead(gorm.ErrRecordNotFound, r.entity, id)
	}
	return nil
}

func (r *gormUserRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	res := r.conn(ctx).Model(&models.User{}).Where("id = ?", id).Update("banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateRead(gorm.ErrRecordNotFound, r.entity, id)
	}
	return nil
}
