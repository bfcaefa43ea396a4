package errors

import "net/http"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	Status   int
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Validation Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryValidation,
		Message:  "Request incomplete",
		Detail:   "The request does not carry the required set of parameters.",
		Status:   http.StatusForbidden,
	},
	"E101": {
		Category: CategoryValidation,
		Message:  "wrong number of parameters",
		Detail:   "The legacy parameter check found the required and present parameter counts equal.",
		Status:   http.StatusInternalServerError,
	},
	"E102": {
		Category: CategoryValidation,
		Message:  "Malformed request body",
		Detail:   "The request body could not be parsed as a form.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Config Errors (E120-E159)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "webkit.json could not be parsed.",
		Status:   http.StatusInternalServerError,
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
		Status:   http.StatusInternalServerError,
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No webkit.json was found.",
		Status:   http.StatusInternalServerError,
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was invoked with missing or malformed arguments.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Decode Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryDecode,
		Message:  "Malformed base64url input",
		Detail:   "The input is not valid unpadded URL-safe base64.",
		Status:   http.StatusBadRequest,
	},

	// ============================================
	// Session Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategorySession,
		Message:  "Session already active",
		Detail:   "A session is already attached to this request.",
		Status:   http.StatusConflict,
	},
	"E301": {
		Category: CategorySession,
		Message:  "Session store failure",
		Detail:   "The session store could not load or save the session.",
		Status:   http.StatusInternalServerError,
	},
	"E302": {
		Category: CategorySession,
		Message:  "Session id generation failed",
		Detail:   "Not enough randomness was available to mint a session id.",
		Status:   http.StatusInternalServerError,
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
