package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/ignite-agency/website/api/internal/entity"
)

// Framework assets, API routes, the favicon and service endpoints are served
// as-is.
var localeExcluded = regexp.MustCompile(`^/(?:_next|api|favicon\.ico|healthz|metrics)`)

var arabicBase, _ = language.Arabic.Base()

// LocaleDecision is the outcome of routing one path.
type LocaleDecision struct {
	// Locale is the locale carried by the path, or the preferred one when
	// Redirect is set.
	Locale entity.Locale
	// Redirect is the locale-prefixed target; empty means pass through.
	Redirect string
	// Excluded paths are neither redirected nor marked.
	Excluded bool
}

// ResolveLocale decides whether path needs a locale prefix. path is the
// escaped request path and the redirect keeps its encoding. It has no side
// effects and is idempotent on already-prefixed paths.
func ResolveLocale(path, acceptLanguage string) LocaleDecision {
	if path == "" {
		path = "/"
	}
	if localeExcluded.MatchString(path) {
		return LocaleDecision{Excluded: true}
	}

	if locale, ok := pathLocale(path); ok {
		return LocaleDecision{Locale: locale}
	}

	preferred := PreferredLocale(acceptLanguage)
	return LocaleDecision{
		Locale:   preferred,
		Redirect: "/" + string(preferred) + path,
	}
}

// pathLocale reports the locale of the first path segment: "/ar" and "/ar/..."
// qualify, "/arabic" does not.
func pathLocale(path string) (entity.Locale, bool) {
	for _, locale := range entity.Locales {
		prefix := "/" + string(locale)
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return locale, true
		}
	}
	return "", false
}

// PreferredLocale picks Arabic when the Accept-Language header asks for any
// Arabic variant, and the default locale otherwise.
func PreferredLocale(acceptLanguage string) entity.Locale {
	tags, weights, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return entity.DefaultLocale
	}
	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		if base, _ := tag.Base(); base == arabicBase {
			return entity.LocaleArabic
		}
	}
	return entity.DefaultLocale
}

// Locale redirects page requests that lack a locale prefix and marks the
// others with the resolved locale.
func Locale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			decision := ResolveLocale(req.URL.EscapedPath(), req.Header.Get("Accept-Language"))

			if decision.Excluded {
				return next(c)
			}
			if decision.Redirect != "" {
				target := decision.Redirect
				if req.URL.RawQuery != "" {
					target += "?" + req.URL.RawQuery
				}
				return c.Redirect(http.StatusTemporaryRedirect, target)
			}

			c.Set(ContextKeyLocale, decision.Locale)
			c.Response().Header().Set(HeaderLocale, string(decision.Locale))
			return next(c)
		}
	}
}

// LocaleFromContext returns the locale set by Locale, or the default.
func LocaleFromContext(c echo.Context) entity.Locale {
	if val, ok := c.Get(ContextKeyLocale).(entity.Locale); ok && val.Valid() {
		return val
	}
	return entity.DefaultLocale
}
