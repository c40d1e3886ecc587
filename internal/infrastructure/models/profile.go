package models

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfile struct {
	AccountID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchYear      int       `gorm:"not null"`
	Department     string    `gorm:"type:varchar(120);not null"`
	StudentNumber  string    `gorm:"type:varchar(50)"`
	UniversityName string    `gorm:"type:varchar(200)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

type CompanyProfile struct {
	AccountID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"type:varchar(200);not null"`
	Industry    string    `gorm:"type:varchar(120);not null"`
	Address     string    `gorm:"type:varchar(300)"`
	Website     string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (CompanyProfile) TableName() string {
	return "company_profiles"
}

type TeacherProfile struct {
	AccountID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Department     string    `gorm:"type:varchar(120);not null"`
	Title          string    `gorm:"type:varchar(80)"`
	UniversityName string    `gorm:"type:varchar(200)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (TeacherProfile) TableName() string {
	return "teacher_profiles"
}

type UniversityProfile struct {
	AccountID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UniversityName string    `gorm:"type:varchar(200);not null"`
	Address        string    `gorm:"type:varchar(300)"`
	Website        string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (UniversityProfile) TableName() string {
	return "university_profiles"
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Account{},
		&StudentProfile{},
		&CompanyProfile{},
		&TeacherProfile{},
		&UniversityProfile{},
		&PasswordResetRequest{},
	}
}
