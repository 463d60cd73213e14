package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "commune/internal/errors"
)

// identityKey is the echo context key under which the guard stores claims.
const identityKey = "identity"

// Guard returns middleware that authenticates requests. The token is the
// raw value of the Authorization header, no scheme prefix. A missing
// header is rejected with 401 "Access denied"; a header that is present
// but does not verify is rejected with 400 "Invalid token". Handlers
// behind the guard always see a verified identity.
func Guard(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.Verify(raw)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrInvalidToken) {
				return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidToken.Error())
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
		},
	})
}

// Identity returns the verified claims the guard attached to the request
// context, or false when the route is not behind the guard.
func Identity(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(identityKey).(*Claims)
	return claims, ok
}
