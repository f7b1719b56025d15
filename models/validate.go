package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxTitleLength is the maximum number of characters in a trimmed title.
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum number of characters in a description.
	MaxDescriptionLength = 500
)

// ViolationCode identifies a single draft validation failure.
type ViolationCode string

const (
	ViolationEmptyTitle         ViolationCode = "empty_title"
	ViolationTitleTooLong       ViolationCode = "title_too_long"
	ViolationDescriptionTooLong ViolationCode = "description_too_long"
	ViolationInvalidDueDate     ViolationCode = "invalid_due_date"
	ViolationInvalidPriority    ViolationCode = "invalid_priority"
	ViolationInvalidStatus      ViolationCode = "invalid_status"
)

// Violation describes one failed constraint on a draft.
type Violation struct {
	Code    ViolationCode `json:"code"`
	Field   string        `json:"field"`
	Message string        `json:"message"`
}

func (v Violation) Error() string {
	return v.Message
}

// ValidationResult is the outcome of ValidateDraft. Violations are listed in
// field order: title, description, due date, priority, status.
type ValidationResult struct {
	Valid      bool        `json:"isValid"`
	Violations []Violation `json:"errors"`
}

// Has reports whether the result contains a violation with the given code.
func (r ValidationResult) Has(code ViolationCode) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the violation codes in order.
func (r ValidationResult) Codes() []ViolationCode {
	codes := make([]ViolationCode, 0, len(r.Violations))
	for _, v := range r.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

// Err returns nil for a valid result, otherwise all violations joined.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Violations))
	for _, v := range r.Violations {
		errs = append(errs, v)
	}
	return errors.Join(errs...)
}

// draftRules mirrors Draft with the constraints expressed as validator tags.
// Field order determines violation order.
type draftRules struct {
	Title       string       `validate:"required,max=100"`
	Description string       `validate:"max=500"`
	DueDate     string       `validate:"omitempty,datetime=2006-01-02"`
	Priority    TaskPriority `validate:"lte=2"`
	Status      TaskStatus   `validate:"lte=2"`
}

// global validator instance
var validate = validator.New()

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// ValidateDraft checks a draft against the field constraints and reports every
// violation found. It has no side effects.
func ValidateDraft(d Draft) ValidationResult {
	n := d.Normalized()
	rules := draftRules{
		Title:       n.Title,
		Description: d.Description,
		DueDate:     n.DueDate,
		Priority:    d.Priority,
		Status:      d.Status,
	}

	result := ValidationResult{Valid: true, Violations: []Violation{}}
	err := validate.Struct(rules)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable when rules is not a struct.
		panic(fmt.Sprintf("validate draft: %v", err))
	}
	for _, fe := range fieldErrs {
		result.Violations = append(result.Violations, violationFor(fe))
	}
	result.Valid = len(result.Violations) == 0
	return result
}

func violationFor(fe validator.FieldError) Violation {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Field() {
	case "Title":
		if fe.Tag() == "required" {
			return Violation{Code: ViolationEmptyTitle, Field: field, Message: "Title is required"}
		}
		return Violation{Code: ViolationTitleTooLong, Field: field,
			Message: fmt.Sprintf("Title must be at most %d characters", MaxTitleLength)}
	case "Description":
		return Violation{Code: ViolationDescriptionTooLong, Field: field,
			Message: fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength)}
	case "DueDate":
		return Violation{Code: ViolationInvalidDueDate, Field: field, Message: "Invalid due date format (want YYYY-MM-DD)"}
	case "Priority":
		return Violation{Code: ViolationInvalidPriority, Field: field, Message: "Priority must be low, medium or high"}
	default:
		return Violation{Code: ViolationInvalidStatus, Field: field, Message: "Status must be pending, in_progress or completed"}
	}
}
