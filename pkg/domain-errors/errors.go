// Package errors provides coded domain errors shared by every service.
//
// Services return *Error values (optionally wrapping an infrastructure cause)
// so that callers can discriminate the exact rejection reason with Is/HasCode
// and the transport layer can map it with ToHTTPStatus.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error identifier.
type Code string

// Generic codes.
const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInvalidState       Code = "invalid_state"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Validation codes raised by registries, role sets and the compliance chain.
const (
	CodeZeroAddress            Code = "zero_address"
	CodeDuplicateTopic         Code = "duplicate_topic"
	CodeDuplicateIssuer        Code = "duplicate_issuer"
	CodeDuplicateModule        Code = "duplicate_module"
	CodeCapacityExceeded       Code = "capacity_exceeded"
	CodeAlreadyRegistered      Code = "already_registered"
	CodeNotRegistered          Code = "not_registered"
	CodeAlreadyBound           Code = "already_bound"
	CodeModuleNotBound         Code = "module_not_bound"
	CodeRegistryNotBound       Code = "registry_not_bound"
	CodeAccountAlreadyHasRole  Code = "account_already_has_role"
	CodeAccountDoesNotHaveRole Code = "account_does_not_have_role"
)

// Authorization codes.
const (
	CodeNotOwner        Code = "not_owner"
	CodeNotAgent        Code = "not_agent"
	CodeNotPendingOwner Code = "not_pending_owner"
)

// Gate rejection codes: expected outcomes of a transfer attempt.
const (
	CodePaused                Code = "paused"
	CodeAccountFrozen         Code = "account_frozen"
	CodeInsufficientBalance   Code = "insufficient_balance"
	CodeInsufficientAllowance Code = "insufficient_allowance"
	CodeUnverifiedIdentity    Code = "unverified_identity"
	CodeComplianceRejected    Code = "compliance_rejected"
)

// Kind groups codes by how a caller is expected to react.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindGateRejection Kind = "gate_rejection"
	KindInternal      Kind = "internal"
)

// Kind classifies the code. Unknown codes are internal.
func (c Code) Kind() Kind {
	switch c {
	case CodeNotOwner, CodeNotAgent, CodeNotPendingOwner, CodeUnauthorized, CodeForbidden:
		return KindAuthorization
	case CodePaused, CodeAccountFrozen, CodeInsufficientBalance, CodeInsufficientAllowance,
		CodeUnverifiedIdentity, CodeComplianceRejected:
		return KindGateRejection
	case CodeInternal, CodeTimeout:
		return KindInternal
	case "":
		return KindInternal
	default:
		return KindValidation
	}
}

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal when the chain carries none.
func CodeOf(err error) Code {
	var de *Error
	if stderrors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Is reports whether the outermost coded error in err carries code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var de *Error
	if !stderrors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// HasCode reports whether any coded error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		if de, ok := err.(*Error); ok && de.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// ToHTTPStatus maps a code to the status the admin surface answers with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound, CodeNotRegistered, CodeModuleNotBound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateTopic, CodeDuplicateIssuer, CodeDuplicateModule,
		CodeAlreadyRegistered, CodeAlreadyBound, CodeAccountAlreadyHasRole, CodeInvalidState:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTimeout:
		return http.StatusGatewayTimeout
	}
	switch code.Kind() {
	case KindAuthorization:
		return http.StatusForbidden
	case KindGateRejection:
		return http.StatusUnprocessableEntity
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
