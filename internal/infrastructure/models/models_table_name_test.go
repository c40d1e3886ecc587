package models

import "testing"

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		Account{}.TableName():              "accounts",
		PasswordResetRequest{}.TableName(): "password_reset_requests",
		StudentProfile{}.TableName():       "student_profiles",
		CompanyProfile{}.TableName():       "company_profiles",
		TeacherProfile{}.TableName():       "teacher_profiles",
		UniversityProfile{}.TableName():    "university_profiles",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("unexpected table name: got %s want %s", got, want)
		}
	}
}

func TestAll_ListsAccountFirst(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("expected 6 models, got %d", len(all))
	}
	if _, ok := all[0].(*Account); !ok {
		t.Fatal("accounts must migrate before dependent tables")
	}
}
