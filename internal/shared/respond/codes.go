package respond

import (
	"fmt"

	"github.com/quytt2702/authapi/internal/shared/apperr"
)

type codeEntry struct {
	status  int
	message string
}

// codeTable is the static error code mapping loaded at startup. Message
// rendering is pluggable through Localizer; this table is the English default.
var codeTable = map[string]codeEntry{
	apperr.CodeBadRequest:       {400, "Bad request. The page requested could not be found."},
	apperr.CodeUnauthenticated:  {401, "Authenticate Error."},
	apperr.CodeForbidden:        {403, "Permission denied."},
	apperr.CodeNotFound:         {404, "Not found error."},
	apperr.CodeMethodNotAllowed: {405, "Method not allowed."},
	apperr.CodePayloadTooLarge:  {413, "File upload is too big so can't upload."},
	apperr.CodeValidation:       {422, "The given data was invalid."},
	apperr.CodeRateLimited:      {429, "Too many requests, too much requests occur."},
	apperr.CodeInternal:         {500, "A system error has occurred."},
	apperr.CodeMaintenance:      {503, "The system is currently under maintenance, you cannot use the service."},

	apperr.CodePasswordMismatch: {400, "Old password is incorrect. please check again."},
}

// Localizer renders the user-facing message for an error code. Swapping the
// implementation is how translations plug in; the core never formats beyond it.
type Localizer interface {
	Message(code string) string
}

type englishLocalizer struct{}

func (englishLocalizer) Message(code string) string {
	if entry, ok := codeTable[code]; ok {
		return entry.message
	}
	return codeTable[apperr.CodeInternal].message
}

// DefaultLocalizer serves the built-in English messages.
var DefaultLocalizer Localizer = englishLocalizer{}

// statusCode derives the generic code for an HTTP-kind failure, e.g. 418
// becomes ERROR-0418.
func statusCode(status int) string {
	return fmt.Sprintf("ERROR-0%d", status)
}
