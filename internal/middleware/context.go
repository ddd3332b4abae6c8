package middleware

// Context keys shared between middleware and handlers.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyLocale    = "locale"
)

// HeaderLocale carries the resolved locale to the rendering layer.
const HeaderLocale = "X-Locale"
