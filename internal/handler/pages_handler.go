package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/entity"
	middlewarepkg "github.com/ignite-agency/website/api/internal/middleware"
)

var pageShell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<div id="root" data-path="{{.Path}}"></div>
</body>
</html>
`))

var pageTitles = map[entity.Locale]string{
	entity.LocaleEnglish: "Ignite Digital Marketing",
	entity.LocaleArabic:  "إجنايت للتسويق الرقمي",
}

// PagesHandler renders the document shell for locale-prefixed pages.
type PagesHandler struct{}

// NewPagesHandler creates a new handler instance.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Render handles GET /:locale and GET /:locale/* requests.
func (h *PagesHandler) Render(c echo.Context) error {
	locale := middlewarepkg.LocaleFromContext(c)

	var buf bytes.Buffer
	err := pageShell.Execute(&buf, struct {
		Lang  string
		Dir   string
		Title string
		Path  string
	}{
		Lang:  string(locale),
		Dir:   locale.Dir(),
		Title: pageTitles[locale],
		Path:  c.Request().URL.Path,
	})
	if err != nil {
		return Error(c, http.StatusInternalServerError, msgInternalError)
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
