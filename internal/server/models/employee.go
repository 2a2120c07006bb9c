package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/staffkeeper/internal/shared"
)

// Fixed enumerations for directory records. Values are stored as-is, so any
// change here requires a data migration.
const (
	DesignationHR      = "HR"
	DesignationManager = "Manager"
	DesignationSales   = "Sales"

	GenderMale   = "M"
	GenderFemale = "F"

	CourseMCA = "MCA"
	CourseBCA = "BCA"
	CourseBSC = "BSC"

	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// CourseList stores the set of completed courses. It round-trips through a
// single text column as a comma-separated list; course names never contain
// commas.
type CourseList []string

func (c CourseList) Value() (driver.Value, error) {
	return strings.Join(c, ","), nil
}

func (c *CourseList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CourseList", src)
	}

	if s == "" {
		*c = nil
		return nil
	}
	*c = strings.Split(s, ",")
	return nil
}

// Employee is one directory record. JSON field names match the public API
// contract of the original service.
type Employee struct {
	ID          string     `json:"_id" validate:"omitempty,uuid4"`
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	MobileNo    string     `json:"mobileNo" validate:"required,mobileno"`
	Designation string     `json:"designation" validate:"required,oneof=HR Manager Sales"`
	Gender      string     `json:"gender" validate:"required,oneof=M F"`
	Course      CourseList `json:"course" validate:"required,min=1,dive,oneof=MCA BCA BSC"`
	ImgUpload   string     `json:"imgUpload" validate:"required"`
	Status      string     `json:"status" validate:"required,oneof=Active Inactive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

var mobileNoPattern = regexp.MustCompile(`^\d{10,}$`)

func mobileNoValidator(fl validator.FieldLevel) bool {
	return mobileNoPattern.MatchString(fl.Field().String())
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("mobileno", mobileNoValidator); err != nil {
		panic(err)
	}
	return v
}

// ValidateEmployee is the single validation funnel for directory records.
// Every mutation path (create, update, status update) must build the full
// post-mutation record and pass it through here before persisting.
func ValidateEmployee(e *Employee) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrorValidation, err)
	}
	return nil
}
