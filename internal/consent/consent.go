// Package consent tracks whether a client has opted in to raw-address
// storage. The flag lives in a client-side cookie, so it is advisory and
// spoofable: it gates a privacy policy, not access to anything. Absence or
// garbage always reads as "no consent".
package consent

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	CookieName = "pagetrail_consent"
	cookieTTL  = 365 * 24 * time.Hour
)

// Grant sets the consent cookie on the response. Deliberately not HTTPOnly:
// the frontend snippet reads it to decide whether to show the consent prompt.
func Grant(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		Expires:  time.Now().Add(cookieTTL),
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// HasConsented reports whether the inbound request carries a valid consent
// cookie. Never errors: anything but the exact expected value is false.
func HasConsented(c *fiber.Ctx) bool {
	return c.Cookies(CookieName) == "1"
}
