package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

func validEmployee() *Employee {
	return &Employee{
		Name:        "Riya Sen",
		Email:       "riya@example.com",
		MobileNo:    "9876543210",
		Designation: DesignationManager,
		Gender:      GenderFemale,
		Course:      CourseList{CourseMCA},
		ImgUpload:   "https://cdn.example.com/img/riya.png",
		Status:      StatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestValidateEmployee_Valid(t *testing.T) {
	require.NoError(t, ValidateEmployee(validEmployee()))
}

func TestValidateEmployee_MobileNo(t *testing.T) {
	tests := []struct {
		name    string
		mobile  string
		wantErr bool
	}{
		{"too short", "123456789", true},
		{"letters", "98765x3210", true},
		{"exactly ten digits", "9876543210", false},
		{"more than ten digits", "919876543210", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmployee()
			e.MobileNo = tt.mobile
			err := ValidateEmployee(e)
			if tt.wantErr {
				require.ErrorIs(t, err, shared.ErrorValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEmployee_EnumMembership(t *testing.T) {
	e := validEmployee()
	e.Designation = "Intern"
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)

	e = validEmployee()
	e.Gender = "X"
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)

	e = validEmployee()
	e.Status = "Suspended"
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)

	e = validEmployee()
	e.Course = CourseList{CourseBCA, "PHD"}
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)

	e = validEmployee()
	e.Course = CourseList{}
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)
}

func TestValidateEmployee_MissingImage(t *testing.T) {
	e := validEmployee()
	e.ImgUpload = ""
	require.ErrorIs(t, ValidateEmployee(e), shared.ErrorValidation)
}

func TestCourseList_ValueScanRoundTrip(t *testing.T) {
	c := CourseList{CourseMCA, CourseBSC}
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, "MCA,BSC", v)

	var back CourseList
	require.NoError(t, back.Scan(v))
	require.Equal(t, c, back)
}

func TestCourseList_ScanEdgeCases(t *testing.T) {
	var c CourseList
	require.NoError(t, c.Scan([]byte("BCA")))
	require.Equal(t, CourseList{"BCA"}, c)

	require.NoError(t, c.Scan(""))
	require.Nil(t, c)

	require.NoError(t, c.Scan(nil))
	require.Nil(t, c)

	require.Error(t, c.Scan(42))
}

func TestValidateEmployee_BadID(t *testing.T) {
	e := validEmployee()
	e.ID = "not-a-uuid"
	err := ValidateEmployee(e)
	require.ErrorIs(t, err, shared.ErrorValidation)

	var verr error = errors.Unwrap(err)
	require.NotNil(t, verr)
}
