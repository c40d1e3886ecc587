package usecases

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sannyeinphyo/internlink-sub001/internal/domain/entities"
	domainerrors "github.com/sannyeinphyo/internlink-sub001/internal/domain/errors"
)

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// buildProfile validates the attribute block for role and returns a
// constructor for the matching profile.
func buildProfile(role entities.Role, input *entities.RegisterInput) (func(uuid.UUID) entities.RoleProfile, error) {
	switch role {
	case entities.RoleStudent:
		a := input.Student
		if a == nil {
			return nil, missingAttributes(role)
		}
		if err := validateAttributes(string(role), a); err != nil {
			return nil, err
		}
		return func(id uuid.UUID) entities.RoleProfile {
			return &entities.StudentProfile{
				AccountID:      id,
				BatchYear:      a.BatchYear,
				Department:     strings.TrimSpace(a.Department),
				StudentNumber:  strings.TrimSpace(a.StudentNumber),
				UniversityName: strings.TrimSpace(a.UniversityName),
			}
		}, nil
	case entities.RoleCompany:
		a := input.Company
		if a == nil {
			return nil, missingAttributes(role)
		}
		if err := validateAttributes(string(role), a); err != nil {
			return nil, err
		}
		return func(id uuid.UUID) entities.RoleProfile {
			return &entities.CompanyProfile{
				AccountID:   id,
				CompanyName: strings.TrimSpace(a.CompanyName),
				Industry:    strings.TrimSpace(a.Industry),
				Address:     strings.TrimSpace(a.Address),
				Website:     strings.TrimSpace(a.Website),
			}
		}, nil
	case entities.RoleTeacher:
		a := input.Teacher
		if a == nil {
			return nil, missingAttributes(role)
		}
		if err := validateAttributes(string(role), a); err != nil {
			return nil, err
		}
		return func(id uuid.UUID) entities.RoleProfile {
			return &entities.TeacherProfile{
				AccountID:      id,
				Department:     strings.TrimSpace(a.Department),
				Title:          strings.TrimSpace(a.Title),
				UniversityName: strings.TrimSpace(a.UniversityName),
			}
		}, nil
	case entities.RoleUniversity:
		a := input.University
		if a == nil {
			return nil, missingAttributes(role)
		}
		if err := validateAttributes(string(role), a); err != nil {
			return nil, err
		}
		return func(id uuid.UUID) entities.RoleProfile {
			return &entities.UniversityProfile{
				AccountID:      id,
				UniversityName: strings.TrimSpace(a.UniversityName),
				Address:        strings.TrimSpace(a.Address),
				Website:        strings.TrimSpace(a.Website),
			}
		}, nil
	case entities.RoleAdmin:
		return nil, domainerrors.Validation(map[string]string{"role": "admin accounts cannot self-register"})
	default:
		return nil, domainerrors.Validation(map[string]string{"role": "must be one of student, company, teacher, university"})
	}
}

func missingAttributes(role entities.Role) error {
	return domainerrors.Validation(map[string]string{string(role): "required"})
}

// validateAttributes reports every failing field as "<block>.<field>": "<rule>".
func validateAttributes(block string, attrs interface{}) error {
	err := profileValidator.Struct(attrs)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domainerrors.Validation(map[string]string{block: err.Error()})
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[block+"."+fe.Field()] = rule
	}
	return domainerrors.Validation(fields)
}
