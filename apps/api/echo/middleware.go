package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sessionIDMiddleware answers 404 for session ids that are not uuids.
func sessionIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := uuid.Parse(ctx.Param("id")); err != nil {
			return errHttpNotFound
		}
		return next(ctx)
	}
}
