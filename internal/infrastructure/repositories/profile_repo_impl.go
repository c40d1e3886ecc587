package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/models"
)

// ProfileRepository stores role profiles, one table per role
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts the profile into the table of its role
func (r *ProfileRepository) Create(ctx context.Context, profile entities.RoleProfile) error {
	var m interface{}
	switch p := profile.(type) {
	case *entities.StudentProfile:
		m = &models.StudentProfile{
			AccountID:      p.AccountID,
			BatchYear:      p.BatchYear,
			Department:     p.Department,
			StudentNumber:  p.StudentNumber,
			UniversityName: p.UniversityName,
		}
	case *entities.CompanyProfile:
		m = &models.CompanyProfile{
			AccountID:   p.AccountID,
			CompanyName: p.CompanyName,
			Industry:    p.Industry,
			Address:     p.Address,
			Website:     p.Website,
		}
	case *entities.TeacherProfile:
		m = &models.TeacherProfile{
			AccountID:      p.AccountID,
			Department:     p.Department,
			Title:          p.Title,
			UniversityName: p.UniversityName,
		}
	case *entities.UniversityProfile:
		m = &models.UniversityProfile{
			AccountID:      p.AccountID,
			UniversityName: p.UniversityName,
			Address:        p.Address,
			Website:        p.Website,
		}
	default:
		return fmt.Errorf("%w: unsupported profile type %T", domainerrors.ErrInvalidInput, profile)
	}

	if err := GetDB(ctx, r.db).Omit("Account").Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByAccount loads the profile for an account of the given role
func (r *ProfileRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) (entities.RoleProfile, error) {
	db := GetDB(ctx, r.db).Where("account_id = ?", accountID)

	switch role {
	case entities.RoleStudent:
		var m models.StudentProfile
		if err := db.First(&m).Error; err != nil {
			return nil, mapNotFound(err)
		}
		return &entities.StudentProfile{
			AccountID:      m.AccountID,
			BatchYear:      m.BatchYear,
			Department:     m.Department,
			StudentNumber:  m.StudentNumber,
			UniversityName: m.UniversityName,
			CreatedAt:      m.CreatedAt,
			UpdatedAt:      m.UpdatedAt,
		}, nil
	case entities.RoleCompany:
		var m models.CompanyProfile
		if err := db.First(&m).Error; err != nil {
			return nil, mapNotFound(err)
		}
		return &entities.CompanyProfile{
			AccountID:   m.AccountID,
			CompanyName: m.CompanyName,
			Industry:    m.Industry,
			Address:     m.Address,
			Website:     m.Website,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}, nil
	case entities.RoleTeacher:
		var m models.TeacherProfile
		if err := db.First(&m).Error; err != nil {
			return nil, mapNotFound(err)
		}
		return &entities.TeacherProfile{
			AccountID:      m.AccountID,
			Department:     m.Department,
			Title:          m.Title,
			UniversityName: m.UniversityName,
			CreatedAt:      m.CreatedAt,
			UpdatedAt:      m.UpdatedAt,
		}, nil
	case entities.RoleUniversity:
		var m models.UniversityProfile
		if err := db.First(&m).Error; err != nil {
			return nil, mapNotFound(err)
		}
		return &entities.UniversityProfile{
			AccountID:      m.AccountID,
			UniversityName: m.UniversityName,
			Address:        m.Address,
			Website:        m.Website,
			CreatedAt:      m.CreatedAt,
			UpdatedAt:      m.UpdatedAt,
		}, nil
	case entities.RoleAdmin:
		return nil, domainerrors.ErrNotFound
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domainerrors.ErrInvalidInput, role)
	}
}

// DeleteByAccount removes the profile of an account. A missing row is not an error.
func (r *ProfileRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID, role entities.Role) error {
	var m interface{}
	switch role {
	case entities.RoleStudent:
		m = &models.StudentProfile{}
	case entities.RoleCompany:
		m = &models.CompanyProfile{}
	case entities.RoleTeacher:
		m = &models.TeacherProfile{}
	case entities.RoleUniversity:
		m = &models.UniversityProfile{}
	case entities.RoleAdmin:
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", domainerrors.ErrInvalidInput, role)
	}
	return GetDB(ctx, r.db).Where("account_id = ?", accountID).Delete(m).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}
