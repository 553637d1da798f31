package repository

import (
	"errors"

	"proctor_backend/internal/util"
	"proctor_backend/pkg/database"

	"gorm.io/gorm"
)

// constraintErrors maps unique constraints to the error a client should see
// when a concurrent writer got there first.
var constraintErrors = map[string]error{
	"users_username_key": util.ErrUsernameTaken,
	"users_email_key":    util.ErrEmailRegistered,
	"test_setters_pkey":  util.ErrAlreadyTestSetter,
	"test_takers_pkey":   util.ErrAlreadyTestTaker,
	"invigilators_pkey":  util.ErrAlreadyInvigilator,
	"test_attempts_pkey": util.ErrAttemptExists,
}

// TranslateError replaces known unique violations with domain errors. It also
// applies to errors returned by a commit, where deferred constraints are checked.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if name, ok := database.UniqueViolation(err); ok {
		if domainErr, known := constraintErrors[name]; known {
			return domainErr
		}
	}
	return err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
