package user

import "github.com/wordflow/wordflow-backend/internal/domain"

// TelegramProfile is the signed login payload sent by the Telegram widget.
type TelegramProfile struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}

// Validate checks all fields and collects all errors.
func (p *TelegramProfile) Validate() error {
	var errs []domain.FieldError

	if p.ID == 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if p.FirstName == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "required"})
	}
	if p.AuthDate == 0 {
		errs = append(errs, domain.FieldError{Field: "auth_date", Message: "required"})
	}
	if p.Hash == "" {
		errs = append(errs, domain.FieldError{Field: "hash", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
