package middleware

import (
	"bytes"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body
const SignatureHeader = "X-Signature"

// RequireSignature rejects requests whose body is not signed with secret.
// An empty secret disables the check. The body is restored for the handler.
func RequireSignature(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			var body []byte
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					return reject(c, errors.ErrInvalidPayload())
				}
				body = b
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			if !ai.VerifyHMAC(secret, body, req.Header.Get(SignatureHeader)) {
				return reject(c, errors.ErrUnauthenticated())
			}
			return next(c)
		}
	}
}

func reject(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{Error: appErr.Message})
}
