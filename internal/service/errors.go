package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// mapLookupErr translates a repository read failure: a row miss becomes
// NotFound carrying the given user-facing message, anything else is an
// internal error with the cause hidden from the caller.
func mapLookupErr(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(message, nil)
	}
	return apperrors.NewInternalError(err)
}
