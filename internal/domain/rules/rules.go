// Package rules contiene las validaciones puras del centro de adopción.
//
// Ninguna función accede a storage: el caller entrega los valores actuales
// (ocupación, status, etc.). Cada validación devuelve nil si pasa, o un
// *Violation con el Reason que explica la falla.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// MaxAdoptionFee es el tope de la tarifa de adopción (inclusive).
const MaxAdoptionFee = 50000.0

// MinPhoneDigits es la cantidad mínima de dígitos de un teléfono de adoptante.
const MinPhoneDigits = 10

type Reason string

const (
	FeeNegative        Reason = "FeeNegative"
	FeeTooHigh         Reason = "FeeTooHigh"
	InvalidEmailFormat Reason = "InvalidEmailFormat"
	PhoneTooShort      Reason = "PhoneTooShort"
	InvalidStatus      Reason = "InvalidStatus"
	ShelterAtCapacity  Reason = "ShelterAtCapacity"
)

// Violation es el resultado fallido de una regla.
type Violation struct {
	Reason Reason
	Detail string
}

func (v *Violation) Error() string {
	if v.Detail == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Reason, v.Detail)
}

// ReasonOf devuelve el Reason si err es (o envuelve) un *Violation.
func ReasonOf(err error) (Reason, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v.Reason, true
	}
	return "", false
}

func violation(r Reason, format string, args ...any) *Violation {
	return &Violation{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// ValidateFee: 0 <= fee <= MaxAdoptionFee.
func ValidateFee(fee float64) error {
	if fee < 0 {
		return violation(FeeNegative, "adoption fee cannot be negative (got %.2f)", fee)
	}
	if fee > MaxAdoptionFee {
		return violation(FeeTooHigh, "adoption fee exceeds maximum limit of %.0f (got %.2f)", MaxAdoptionFee, fee)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidateEmail valida el formato local@domain.tld.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return violation(InvalidEmailFormat, "invalid email format %q", email)
	}
	return nil
}

// ValidatePhone exige al menos MinPhoneDigits dígitos (se ignoran espacios, guiones, +, etc.).
func ValidatePhone(phone string) error {
	if n := countDigits(phone); n < MinPhoneDigits {
		return violation(PhoneTooShort, "phone must contain at least %d digits (got %d)", MinPhoneDigits, n)
	}
	return nil
}

// ValidateContact valida email y luego teléfono; la primera falla gana.
func ValidateContact(email, phone string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePhone(phone)
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// EntityKind identifica la entidad cuyo status se valida.
type EntityKind string

const (
	KindPet         EntityKind = "pet"
	KindApplication EntityKind = "application"
	KindAdoption    EntityKind = "adoption"
)

var permittedStatuses = map[EntityKind][]string{
	KindPet:         {"Available", "Pending", "Adopted"},
	KindApplication: {"Pending", "Approved", "Rejected", "Under Review"},
	KindAdoption:    {"Completed", "Trial Period", "Returned", "Cancelled"},
}

// PermittedStatuses devuelve una copia del set permitido para kind.
func PermittedStatuses(kind EntityKind) []string {
	return append([]string(nil), permittedStatuses[kind]...)
}

// ValidateStatusTransition valida que `to` pertenezca al set de kind.
// `from` no restringe la transición: el sistema no bloquea estados terminales.
func ValidateStatusTransition(kind EntityKind, from, to string) error {
	for _, s := range permittedStatuses[kind] {
		if s == to {
			return nil
		}
	}
	return violation(InvalidStatus, "invalid %s status %q (from %q); must be one of: %s",
		kind, to, from, strings.Join(permittedStatuses[kind], ", "))
}

// ValidateCapacity falla si el refugio ya está lleno.
func ValidateCapacity(currentOccupancy, capacity int) error {
	if currentOccupancy >= capacity {
		return violation(ShelterAtCapacity, "shelter is at capacity (%d/%d)", currentOccupancy, capacity)
	}
	return nil
}
