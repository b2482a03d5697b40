package repositories

import (
	"context"

	"github.com/4MR4N11/TheDispatch01-sub000/internal/models"
	"gorm.io/gorm"
)

type ReportRepository interface {
	EntityRepository[models.Report]
	ListPending(ctx context.Context, limit int) ([]models.Report, error)
	DeleteInvolvingUser(ctx context.Context, userID uint) (int64, error)
}

type gormReportRepository struct {
	crud[models.Report]
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &gormReportRepository{crud[models.Report]{db: db, entity: "report"}}
}

func (r *gormReportRepository) ListPending(ctx context.Context, limit int) ([]models.Report, error) {
	var list []models.Report
	err := r.conn(ctx).Where("status = ?", models.ReportStatusPending).Order("created_at ASC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *gormReportRepository) DeleteInvolvingUser(ctx context.Context, userID uint) (int64, error) {
	return r.DeleteWhere(ctx, Where("reporter_id = ? OR reported_id = ?", userID, userID))
}
