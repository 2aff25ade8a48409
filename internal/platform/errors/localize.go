package errors

import (
	"errors"
	"strings"

	"github.com/louisbranch/catapult/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// Localized is the user-facing rendering of an error.
type Localized struct {
	Code    Code
	Kind    Kind
	Status  int
	Locale  string
	Message string
	Details []string
}

// Localize renders err for a client in the given locale, defaulting to en-US.
// Foreign errors collapse to a generic message so internals never leak.
func Localize(err error, locale string) Localized {
	if locale == "" {
		locale = DefaultLocale
	}
	catalog := i18n.GetCatalog(locale)

	var appErr *Error
	if !errors.As(err, &appErr) {
		return Localized{
			Code:    CodeUnknown,
			Kind:    KindUnknown,
			Status:  HTTPStatus(err),
			Locale:  catalog.Locale(),
			Message: catalog.Format(string(CodeUnknown), nil),
		}
	}

	metadata := appErr.Metadata
	if len(appErr.Details) > 0 {
		metadata = make(map[string]string, len(appErr.Metadata)+1)
		for key, value := range appErr.Metadata {
			metadata[key] = value
		}
		if _, ok := metadata["Missing"]; !ok {
			metadata["Missing"] = strings.Join(appErr.Details, ", ")
		}
	}

	return Localized{
		Code:    appErr.Code,
		Kind:    appErr.Code.Kind(),
		Status:  HTTPStatus(appErr),
		Locale:  catalog.Locale(),
		Message: catalog.Format(string(appErr.Code), metadata),
		Details: appErr.Details,
	}
}
