package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders sets the response headers applied to every request.
func SecurityHeaders() gin.HandlerFunc {
	const csp = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"img-src 'self' data: https:; " +
		"connect-src 'self' https://cdn.jsdelivr.net; " +
		"font-src 'self' https://cdn.jsdelivr.net; " +
		"object-src 'none'; " +
		"frame-src 'self' https://www.google.com"

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Content-Security-Policy", csp)
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "SAMEORIGIN")
		header.Set("Referrer-Policy", "no-referrer")
		header.Set("Cross-Origin-Resource-Policy", "same-origin")

		c.Next()
	}
}
