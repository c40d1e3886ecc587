package entities

import (
	"time"

	"github.com/google/uuid"
)

// RoleProfile is the role-specific record owned by a non-admin account.
type RoleProfile interface {
	ProfileRole() Role
	OwnerID() uuid.UUID
}

// StudentProfile holds student attributes
type StudentProfile struct {
	AccountID      uuid.UUID `json:"accountId"`
	BatchYear      int       `json:"batchYear"`
	Department     string    `json:"department"`
	StudentNumber  string    `json:"studentNumber,omitempty"`
	UniversityName string    `json:"universityName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (p *StudentProfile) ProfileRole() Role  { return RoleStudent }
func (p *StudentProfile) OwnerID() uuid.UUID { return p.AccountID }

// CompanyProfile holds company attributes
type CompanyProfile struct {
	AccountID   uuid.UUID `json:"accountId"`
	CompanyName string    `json:"companyName"`
	Industry    string    `json:"industry"`
	Address     string    `json:"address,omitempty"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *CompanyProfile) ProfileRole() Role  { return RoleCompany }
func (p *CompanyProfile) OwnerID() uuid.UUID { return p.AccountID }

// TeacherProfile holds teacher attributes
type TeacherProfile struct {
	AccountID      uuid.UUID `json:"accountId"`
	Department     string    `json:"department"`
	Title          string    `json:"title,omitempty"`
	UniversityName string    `json:"universityName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (p *TeacherProfile) ProfileRole() Role  { return RoleTeacher }
func (p *TeacherProfile) OwnerID() uuid.UUID { return p.AccountID }

// UniversityProfile holds university attributes
type UniversityProfile struct {
	AccountID      uuid.UUID `json:"accountId"`
	UniversityName string    `json:"universityName"`
	Address        string    `json:"address,omitempty"`
	Website        string    `json:"website,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (p *UniversityProfile) ProfileRole() Role  { return RoleUniversity }
func (p *UniversityProfile) OwnerID() uuid.UUID { return p.AccountID }

// StudentAttributes are the sign-up fields for students
type StudentAttributes struct {
	BatchYear      int    `json:"batchYear" validate:"required,gte=1950,lte=2100"`
	Department     string `json:"department" validate:"required,max=120"`
	StudentNumber  string `json:"studentNumber" validate:"omitempty,max=50"`
	UniversityName string `json:"universityName" validate:"omitempty,max=200"`
}

// CompanyAttributes are the sign-up fields for companies
type CompanyAttributes struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	Industry    string `json:"industry" validate:"required,max=120"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	Website     string `json:"website" validate:"omitempty,url"`
}

// TeacherAttributes are the sign-up fields for teachers
type TeacherAttributes struct {
	Department     string `json:"department" validate:"required,max=120"`
	Title          string `json:"title" validate:"omitempty,max=80"`
	UniversityName string `json:"universityName" validate:"omitempty,max=200"`
}

// UniversityAttributes are the sign-up fields for universities
type UniversityAttributes struct {
	UniversityName string `json:"universityName" validate:"required,max=200"`
	Address        string `json:"address" validate:"omitempty,max=300"`
	Website        string `json:"website" validate:"omitempty,url"`
}
