package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the survey engine. Token state violations are
// distinct so a survey-taking client can render "link already used"
// differently from "link invalid".
var (
	ErrSurveyNotFound    = errors.New("survey not found")
	ErrTokenNotFound     = errors.New("survey link is invalid")
	ErrTokenAlreadyUsed  = errors.New("survey link has already been used")
	ErrTokenExpired      = errors.New("survey link has expired")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid survey status transition")
	ErrStorage           = errors.New("storage failure")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
