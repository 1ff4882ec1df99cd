package quiz

import "github.com/wordflow/wordflow-backend/internal/domain"

// CreateTestsInput requests one test per word for a training round.
type CreateTestsInput struct {
	UserID  int64
	WordIDs []int64
	Mode    domain.TestMode
}

// Validate checks all fields and collects all errors.
func (i *CreateTestsInput) Validate() error {
	var errs []domain.FieldError

	if len(i.WordIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "word_ids", Message: "required"})
	}
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "invalid"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
