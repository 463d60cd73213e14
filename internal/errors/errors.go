package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var (
	// ErrInvalidToken is returned when a presented token cannot be verified.
	// Expired, malformed and badly signed tokens all map here so callers
	// cannot probe which check failed.
	ErrInvalidToken = errors.New("Invalid token")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailNotFound is returned on login with an unregistered email.
	ErrEmailNotFound = errors.New("email not found")
	// ErrGroupNotFound is returned when a referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotGroupMember is returned when a non-member posts into a group.
	ErrNotGroupMember = errors.New("not a member of this group")
	// ErrDuplicateUser is returned when username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already taken")
	// ErrInvalidCredential is returned when the password does not match.
	ErrInvalidCredential = errors.New("wrong password")
	// ErrInternal is returned for unexpected failures (hashing, entropy).
	ErrInternal = errors.New("internal server error")
)

// ToHTTP maps a domain error to an echo HTTPError. Echo renders these as
// {"message": <string>} bodies, which is the error contract of the API.
// Unclassified errors surface as 400 with the underlying message.
func ToHTTP(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotGroupMember):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDuplicateUser), errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusBadRequest, ErrDuplicateUser.Error())
	case errors.Is(err, ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidToken):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInternal):
		return echo.NewHTTPError(http.StatusInternalServerError, ErrInternal.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
