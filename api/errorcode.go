package api

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1100: "user not found",
		1101: "operation not allowed for this role",

		1200: "request not found",
		1201: "response not found",

		1300: "invalid decision",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorUserNotFound = errorJSON(1100)
	errorForbidden    = errorJSON(1101)

	errorRequestNotFound  = errorJSON(1200)
	errorResponseNotFound = errorJSON(1201)

	errorInvalidDecision = errorJSON(1300)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// withDetail keeps the code of e and explains what was wrong.
func (e ErrorResponse) withDetail(detail string) ErrorResponse {
	e.Message = e.Message + ": " + detail
	return e
}
