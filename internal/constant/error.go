package constant

const (
	ERR_VALIDATION_CODE                 = "VALIDATION_ERROR"
	ERR_INVALID_REQUEST_BODY_ERROR_CODE = "INVALID_REQUEST_BODY_ERROR"
	ERR_INTERNAL_SERVER_ERROR_CODE      = "INTERNAL_SERVER_ERROR"
	ERR_INTENRAL_SERVER_ERROR_MESSAGE   = "Something went wrong. If the problem persists, please contact support"
	ERR_INVALID_REQUEST_BODY_MESSAGE    = "The request is invalid or malformed"
	ERR_NOT_FOUND_ERROR                 = "NOT_FOUND_ERROR"
	ERR_UNATHORIZED_ERROR               = "UNAUTHORIEZED_ERROR"
	ERR_FORBIDDEN_CODE                  = "FORBIDDEN_ERROR"
	ERR_CONFIG_CODE                     = "CONFIG_ERROR"

	ERR_GENERIC_RETRY_MESSAGE     = "Something went wrong. Please check your connection and try again"
	ERR_BUSINESS_FALLBACK_MESSAGE = "The request could not be completed"
	ERR_SIGN_IN_REQUIRED_MESSAGE  = "Please sign in to continue"
)
