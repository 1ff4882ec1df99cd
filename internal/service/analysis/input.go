package analysis

import (
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// AnalyzeInput holds the parameters of one analysis run.
type AnalyzeInput struct {
	Text      string
	UserID    *int64
	SessionID string
	IPAddress *string
}

// Validate checks the structural fields; the size limits depend on engine
// configuration and are checked by the service.
func (i *AnalyzeInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if i.SessionID == "" {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
