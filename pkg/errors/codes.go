package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeConfigInvalid      ErrorCode = "COMMON_017"
	ErrCodeIOFailed           ErrorCode = "COMMON_018"
	ErrCodeInvariantViolation ErrorCode = "COMMON_019"
	ErrCodeCanceled           ErrorCode = "COMMON_020"
)

// Sentinel pseudo-codes used by GetCode.
const (
	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// Library Module Error Codes
const (
	ErrCodeLibraryReadFailed  ErrorCode = "LIB_001"
	ErrCodeLibraryEmpty       ErrorCode = "LIB_002"
	ErrCodeTableMalformed     ErrorCode = "LIB_003"
	ErrCodeTableColumnMissing ErrorCode = "LIB_004"
	ErrCodeTableWriteFailed   ErrorCode = "LIB_005"
)

// Molecule Module Error Codes
const (
	ErrCodeMoleculeInvalidSMILES       ErrorCode = "MOL_001"
	ErrCodeFingerprintGenerationFailed ErrorCode = "MOL_007"
	ErrCodeFingerprintMismatch         ErrorCode = "MOL_008"
	ErrCodeReferenceSetInvalid         ErrorCode = "MOL_016"
)

// Resolver Module Error Codes
const (
	ErrCodeResolverHTTP         ErrorCode = "RES_001"
	ErrCodeResolverNotFound     ErrorCode = "RES_002"
	ErrCodeResolverEmptyBody    ErrorCode = "RES_003"
	ErrCodeResolverInvalidInput ErrorCode = "RES_004"
)

// Archive Module Error Codes
const (
	ErrCodeArchiveUnavailable  ErrorCode = "ARC_001"
	ErrCodeArchiveUploadFailed ErrorCode = "ARC_002"
)

// ErrorCodeMessage maps error codes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache operation failed",
	ErrCodeExternalService:    "external service error",
	ErrCodeConfigInvalid:      "invalid configuration",
	ErrCodeIOFailed:           "i/o failed",
	ErrCodeInvariantViolation: "internal invariant violated",
	ErrCodeCanceled:           "operation canceled",

	ErrCodeLibraryReadFailed:  "failed to read library file",
	ErrCodeLibraryEmpty:       "library contains no records",
	ErrCodeTableMalformed:     "malformed table",
	ErrCodeTableColumnMissing: "required table column missing",
	ErrCodeTableWriteFailed:   "failed to write table",

	ErrCodeMoleculeInvalidSMILES:       "invalid SMILES format",
	ErrCodeFingerprintGenerationFailed: "fingerprint generation failed",
	ErrCodeFingerprintMismatch:         "fingerprints are not comparable",
	ErrCodeReferenceSetInvalid:         "invalid reference molecule set",

	ErrCodeResolverHTTP:         "structure resolver request failed",
	ErrCodeResolverNotFound:     "structure not resolvable",
	ErrCodeResolverEmptyBody:    "structure resolver returned empty body",
	ErrCodeResolverInvalidInput: "invalid registry number",

	ErrCodeArchiveUnavailable:  "artifact archive unavailable",
	ErrCodeArchiveUploadFailed: "artifact upload failed",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
