// Package apperr define la taxonomía de errores del dominio de adopciones.
//
// Cada error lleva un Kind (qué tipo de falla es) y un Code (cuál regla falló).
// El adapter HTTP decide el status code a partir del Kind; el resto del sistema
// compara por Code con errors.Is o apperr.Is.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindPreconditionFailed  Kind = "precondition_failed"
	KindValidationFailed    Kind = "validation_failed"
	KindReferentialConflict Kind = "referential_conflict"
)

type Code string

const (
	// NotFound
	CodePetNotFound         Code = "PetNotFound"
	CodeAdopterNotFound     Code = "AdopterNotFound"
	CodeApplicationNotFound Code = "ApplicationNotFound"
	CodeAdoptionNotFound    Code = "AdoptionNotFound"
	CodeShelterNotFound     Code = "ShelterNotFound"
	CodeStaffNotFound       Code = "StaffNotFound"

	// PreconditionFailed
	CodePetNotAvailable         Code = "PetNotAvailable"
	CodeNoApprovedApplication   Code = "NoApprovedApplication"
	CodeDuplicateActiveAdoption Code = "DuplicateActiveAdoption"
	CodePetIsAdopted            Code = "PetIsAdopted"
	CodeTargetShelterAtCapacity Code = "TargetShelterAtCapacity"
	CodeShelterAtCapacity       Code = "ShelterAtCapacity"
	CodeDuplicateEmail          Code = "DuplicateEmail"
	CodeDuplicatePhone          Code = "DuplicatePhone"

	// ValidationFailed
	CodeFeeOutOfRange      Code = "FeeOutOfRange"
	CodeInvalidEmailFormat Code = "InvalidEmailFormat"
	CodePhoneTooShort      Code = "PhoneTooShort"
	CodeInvalidStatus      Code = "InvalidStatus"
	CodeInvalidInput       Code = "InvalidInput"

	// ReferentialConflict
	CodePetHasActiveAdoption         Code = "PetHasActiveAdoption"
	CodePetHasAdoptionHistory        Code = "PetHasAdoptionHistory"
	CodeAdopterHasCompletedAdoptions Code = "AdopterHasCompletedAdoptions"
	CodeAdopterHasReferences         Code = "AdopterHasReferences"
	CodeAdoptionIsActive             Code = "AdoptionIsActive"
	CodeShelterInUse                 Code = "ShelterInUse"
)

// Error es el error tipado que devuelven services y el workflow engine.
type Error struct {
	Kind    Kind
	Code    Code
	Message string

	// Reason distingue variantes de un mismo Code (p.ej. FeeOutOfRange: FeeNegative / FeeTooHigh).
	Reason string

	// Count se usa en AdopterHasCompletedAdoptions.
	Count int
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, msg, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Is permite errors.Is(err, &apperr.Error{Code: ...}) y errors.Is(err, &apperr.Error{Kind: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Reason != "" && t.Reason != e.Reason {
		return false
	}
	return t.Code != "" || t.Kind != "" || t.Reason != ""
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func NotFound(code Code, msg string) *Error {
	return New(KindNotFound, code, msg)
}

func Precondition(code Code, msg string) *Error {
	return New(KindPreconditionFailed, code, msg)
}

func Validation(code Code, reason, msg string) *Error {
	e := New(KindValidationFailed, code, msg)
	e.Reason = reason
	return e
}

func Conflict(code Code, msg string) *Error {
	return New(KindReferentialConflict, code, msg)
}

func InvalidInput(msg string) *Error {
	return Validation(CodeInvalidInput, "", msg)
}

// As extrae el *Error de una cadena de errores.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reporta si err (o algo que envuelve) tiene el code indicado.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}
