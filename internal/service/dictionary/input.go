package dictionary

import (
	"strings"

	"github.com/wordflow/wordflow-backend/internal/domain"
)

// AddWordInput carries one highlight being saved into the dictionary.
type AddWordInput struct {
	UserID             int64
	Lemma              string
	Type               domain.WordType
	MainTranslation    string
	AdditionalMeanings []string
	OriginalForm       string
	Context            string
	SessionID          string
}

// Validate checks all fields and collects all errors.
func (i *AddWordInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Lemma) == "" {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "required"})
	}
	if strings.TrimSpace(i.MainTranslation) == "" {
		errs = append(errs, domain.FieldError{Field: "main_translation", Message: "required"})
	}
	if strings.TrimSpace(i.Context) == "" {
		errs = append(errs, domain.FieldError{Field: "context", Message: "required"})
	}
	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// resolveType falls back to classifying by whitespace when the caller did
// not set a type: multi-word lemmas are expressions.
func (i *AddWordInput) resolveType() domain.WordType {
	if i.Type.IsValid() {
		return i.Type
	}
	if strings.ContainsRune(strings.TrimSpace(i.Lemma), ' ') {
		return domain.WordTypeExpression
	}
	return domain.WordTypeWord
}
