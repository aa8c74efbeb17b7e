// Package errors provides coded domain errors for the board.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified failure.
	CodeUnknown Code = "UNKNOWN"
	// CodeInvalidArgument marks malformed transport input.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Request form errors
	CodeRequestEmployeeNameEmpty Code = "REQUEST_EMPLOYEE_NAME_EMPTY"
	CodeRequestRoleEmpty         Code = "REQUEST_ROLE_EMPTY"
	CodeRequestDepartmentEmpty   Code = "REQUEST_DEPARTMENT_EMPTY"
	CodeRequestInvalidStartDate  Code = "REQUEST_INVALID_START_DATE"
	CodeRequestInvalidType       Code = "REQUEST_INVALID_TYPE"

	// Viewer errors
	CodeRoleInvalid       Code = "ROLE_INVALID"
	CodeTypeFilterInvalid Code = "TYPE_FILTER_INVALID"
	CodeCreateRequiresHR  Code = "CREATE_REQUIRES_HR"

	// Mutation outcomes surfaced by transports
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument,
		CodeRequestEmployeeNameEmpty,
		CodeRequestRoleEmpty,
		CodeRequestDepartmentEmpty,
		CodeRequestInvalidStartDate,
		CodeRequestInvalidType,
		CodeRoleInvalid,
		CodeTypeFilterInvalid:
		return http.StatusBadRequest
	case CodeCreateRequiresHR, CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
