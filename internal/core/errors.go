package core

import "lingobot/internal/lang"

// Error codes for domain errors.
const (
	ErrCodeInvalidLanguage = "invalid_language"
	ErrCodeMissingText     = "missing_text"
	ErrCodeGateway         = "gateway_error"
)

// UserError wraps a code and the exact reply shown to the user in chat.
type UserError struct {
	Code  string
	Reply string
}

func (e *UserError) Error() string {
	return e.Code
}

var (
	// ErrInvalidLanguage is returned when the payload's leading characters
	// do not name a supported target language.
	ErrInvalidLanguage = &UserError{
		Code:  ErrCodeInvalidLanguage,
		Reply: "Invalid target language.\nValid languages: " + lang.Codes(),
	}

	// ErrMissingText is returned when neither a reply-chain message nor
	// inline text yields something to translate.
	ErrMissingText = &UserError{
		Code: ErrCodeMissingText,
		Reply: "No text provided. Reply to a message " +
			"or write text after the command \ne.g. `/t en some text`",
	}
)
