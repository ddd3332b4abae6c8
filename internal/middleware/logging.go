package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/entity"
)

// Logging writes a concise structured line for each HTTP request, including
// the locale for page requests.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			if locale, ok := c.Get(ContextKeyLocale).(entity.Locale); ok {
				log.Printf("request_id=%s method=%s path=%s locale=%s status=%d latency=%s", rid, c.Request().Method, c.Request().URL.Path, locale, c.Response().Status, latency)
				return err
			}
			log.Printf("request_id=%s method=%s path=%s status=%d latency=%s", rid, c.Request().Method, c.Request().URL.Path, c.Response().Status, latency)

			return err
		}
	}
}
