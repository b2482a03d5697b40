package models

import "time"

const (
	ReportStatusPending  = "PENDING"
	ReportStatusReviewed = "REVIEWED"
	ReportStatusResolved = "RESOLVED"
)

// Report is filed by one user against another. Deleting either user removes it.
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID uint      `json:"reporter_id" gorm:"not null;index"`
	ReportedID uint      `json:"reported_id" gorm:"not null;index"`
	Reporter   *User     `json:"-" gorm:"foreignKey:ReporterID"`
	Reported   *User     `json:"-" gorm:"foreignKey:ReportedID"`
	Reason     string    `json:"reason" gorm:"size:50;not null"`
	Details    string    `json:"details" gorm:"type:text"`
	Status     string    `json:"status" gorm:"size:20;not null;default:'PENDING';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateReportRequest struct {
	Reason  string `json:"reason" validate:"required,oneof=SPAM HARASSMENT IMPERSONATION OTHER"`
	Details string `json:"details" validate:"max=2000"`
}
