// internal/form/validate.go
//
// PetManager – Forms subsystem: semantic field validators.
//
// Context
//   Every console field carries a semantic Kind (name, email, document, NIT,
//   phone, address, password, password confirmation, plus a few generic
//   kinds).  Each kind binds a pure validator function that returns a
//   Verdict: pass, or fail with the exact user-facing message the feedback
//   modal shows.  Validators are stateless and individually
//   order-independent; the submission controller invokes them in the form’s
//   declared field order and stops at the first failure.
//
// Workflow
//   •  ValidateField dispatches on Kind; confirmation kinds also receive the
//      peer value they must equal.
//   •  Empty input on a required field yields the kind’s “please enter …”
//      message; an empty optional field passes and is dropped from the clean
//      map.
//   •  On success the trimmed (password kinds: untrimmed) value is returned
//      so payload construction only ever sees values that satisfied their
//      validator.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind names the semantic rule a field is validated against.
type Kind string

// Field kinds.  The first block mirrors the console’s registration and
// provider forms; the second block covers generic inputs (payment notes,
// dates, quantities).
const (
	KindName            Kind = "name"
	KindEmail           Kind = "email"
	KindDocument        Kind = "document"
	KindPassword        Kind = "password"
	KindPasswordConfirm Kind = "password_confirm"
	KindNIT             Kind = "nit"
	KindPhone           Kind = "phone"
	KindAddress         Kind = "address"

	// KindSecret renders as a password input but only checks presence.
	// Sign-in uses it: strength rules apply when a password is chosen,
	// not when one is typed back.
	KindSecret Kind = "secret"

	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindDate     Kind = "date"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
)

// Known reports whether k is a recognised kind.
func (k Kind) Known() bool {
	switch k {
	case KindName, KindEmail, KindDocument, KindPassword, KindPasswordConfirm,
		KindNIT, KindPhone, KindAddress, KindSecret,
		KindText, KindTextarea, KindDate, KindNumber, KindSelect:
		return true
	}
	return false
}

// Verdict is the result of one validator call.  Message is empty when OK.
type Verdict struct {
	OK      bool
	Message string
}

func pass() Verdict           { return Verdict{OK: true} }
func fail(msg string) Verdict { return Verdict{Message: msg} }

// User-facing failure messages.  The feedback modal shows these verbatim, so
// wording changes here are product decisions, not refactors.
const (
	MsgNameRequired     = "Please enter the full name."
	MsgNameInvalid      = "The name field only allows letters, spaces, and diacritical marks."
	MsgEmailRequired    = "Please enter the email."
	MsgEmailInvalid     = "Please enter a valid email."
	MsgDocumentRequired = "Please enter the document."
	MsgDocumentInvalid  = "Please enter a valid document (7-10 digits)."
	MsgPasswordRequired = "Please enter a password."
	MsgPasswordWeak     = "The password must be at least 8 characters long and include an uppercase letter, a lowercase letter, a number, and a special character."
	MsgConfirmRequired  = "Please confirm the password."
	MsgConfirmMismatch  = "The passwords do not match.  Please verify that both passwords are identical."
	MsgNITRequired      = "Please enter the NIT."
	MsgNITInvalid       = "Please enter a valid NIT (9-10 digits, optional check digit)."
	MsgPhoneRequired    = "Please enter the phone number."
	MsgPhoneInvalid     = "Please enter a valid phone number (7-10 digits)."
	MsgAddressRequired  = "Please enter the address."
	MsgAddressInvalid   = "Please enter a valid address (5-255 characters)."
)

// Compiled once; validators are hot on every submit.
var (
	nameRe     = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ ]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	documentRe = regexp.MustCompile(`^\d{7,10}$`)
	nitRe      = regexp.MustCompile(`^\d{9,10}(-\d)?$`)
	phoneRe    = regexp.MustCompile(`^\+?\d{7,10}$`)

	passUpperRe   = regexp.MustCompile(`[A-Z]`)
	passLowerRe   = regexp.MustCompile(`[a-z]`)
	passDigitRe   = regexp.MustCompile(`[0-9]`)
	passSpecialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// -----------------------------------------------------------------------------
// Named validators
// -----------------------------------------------------------------------------

// ValidateName accepts Latin letters (including diacritics) and spaces.
func ValidateName(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgNameRequired)
	}
	if !nameRe.MatchString(raw) {
		return fail(MsgNameInvalid)
	}
	return pass()
}

// ValidateEmail checks the local@domain.tld shape: no whitespace, and at
// least one dot in the domain.
func ValidateEmail(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgEmailRequired)
	}
	if !emailRe.MatchString(raw) {
		return fail(MsgEmailInvalid)
	}
	return pass()
}

// ValidateDocument requires an all-digit string of length 7–10.
func ValidateDocument(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgDocumentRequired)
	}
	if !documentRe.MatchString(raw) {
		return fail(MsgDocumentInvalid)
	}
	return pass()
}

// ValidatePassword enforces the composite strength rule: length ≥ 8 with at
// least one uppercase letter, one lowercase letter, one digit, and one
// special character.  Any unmet part yields the single combined message.
func ValidatePassword(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgPasswordRequired)
	}
	if len(raw) < 8 ||
		!passUpperRe.MatchString(raw) ||
		!passLowerRe.MatchString(raw) ||
		!passDigitRe.MatchString(raw) ||
		!passSpecialRe.MatchString(raw) {
		return fail(MsgPasswordWeak)
	}
	return pass()
}

// ValidatePasswordConfirm requires a byte-for-byte match with the password.
func ValidatePasswordConfirm(raw, password string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgConfirmRequired)
	}
	if raw != password {
		return fail(MsgConfirmMismatch)
	}
	return pass()
}

// ValidateNIT accepts 9–10 digits with an optional “-d” check-digit suffix.
func ValidateNIT(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgNITRequired)
	}
	if !nitRe.MatchString(strings.TrimSpace(raw)) {
		return fail(MsgNITInvalid)
	}
	return pass()
}

// ValidatePhone accepts 7–10 digits with an optional leading “+”.
func ValidatePhone(raw string) Verdict {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgPhoneRequired)
	}
	if !phoneRe.MatchString(strings.TrimSpace(raw)) {
		return fail(MsgPhoneInvalid)
	}
	return pass()
}

// ValidateAddress requires 5–255 characters after trimming.
func ValidateAddress(raw string) Verdict {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fail(MsgAddressRequired)
	}
	if len(trimmed) < 5 || len(trimmed) > 255 {
		return fail(MsgAddressInvalid)
	}
	return pass()
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// ValidateField runs the validator bound to f.Kind against raw.  peer is the
// value of f’s match field and is only consulted by confirmation kinds.  The
// returned clean value is what payload construction should use: trimmed for
// most kinds, untrimmed for password kinds where whitespace is significant.
func ValidateField(f *FieldDef, raw, peer string) (clean string, v Verdict) {
	trimmed := strings.TrimSpace(raw)

	// Empty optional fields pass and stay empty.
	if trimmed == "" && !f.Required {
		return "", pass()
	}

	switch f.Kind {
	case KindName:
		return trimmed, ValidateName(raw)
	case KindEmail:
		return trimmed, ValidateEmail(raw)
	case KindDocument:
		return trimmed, ValidateDocument(raw)
	case KindPassword:
		return raw, ValidatePassword(raw)
	case KindPasswordConfirm:
		return raw, ValidatePasswordConfirm(raw, peer)
	case KindNIT:
		return trimmed, ValidateNIT(raw)
	case KindPhone:
		return trimmed, ValidatePhone(raw)
	case KindAddress:
		return trimmed, ValidateAddress(raw)
	case KindSecret:
		if trimmed == "" {
			return "", fail(MsgPasswordRequired)
		}
		return raw, pass()
	case KindText, KindTextarea:
		return trimmed, validateGenericText(f, trimmed)
	case KindDate:
		return trimmed, validateDate(f, trimmed)
	case KindNumber:
		return trimmed, validateNumber(f, trimmed)
	case KindSelect:
		return trimmed, validateSelect(f, trimmed)
	default:
		return "", fail(fmt.Sprintf("Unsupported field kind %q.", f.Kind))
	}
}

// -----------------------------------------------------------------------------
// Generic kinds
// -----------------------------------------------------------------------------

func validateGenericText(f *FieldDef, s string) Verdict {
	if s == "" {
		return fail(requiredMsg(f))
	}
	if f.MinLength > 0 && len(s) < f.MinLength {
		return fail(fmt.Sprintf("%s must be at least %d characters.", f.Label, f.MinLength))
	}
	if f.MaxLength > 0 && len(s) > f.MaxLength {
		return fail(fmt.Sprintf("%s must be at most %d characters.", f.Label, f.MaxLength))
	}
	return pass()
}

func validateDate(f *FieldDef, s string) Verdict {
	if s == "" {
		return fail(requiredMsg(f))
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fail(fmt.Sprintf("Please enter a valid %s (YYYY-MM-DD).", strings.ToLower(f.Label)))
	}
	return pass()
}

func validateNumber(f *FieldDef, s string) Verdict {
	if s == "" {
		return fail(requiredMsg(f))
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return fail(fmt.Sprintf("Please enter a valid %s.", strings.ToLower(f.Label)))
	}
	return pass()
}

func validateSelect(f *FieldDef, s string) Verdict {
	if s == "" {
		return fail(requiredMsg(f))
	}
	for _, o := range f.Options {
		if o == s {
			return pass()
		}
	}
	return fail(fmt.Sprintf("Please choose a valid %s.", strings.ToLower(f.Label)))
}

func requiredMsg(f *FieldDef) string {
	return fmt.Sprintf("Please enter the %s.", strings.ToLower(f.Label))
}
