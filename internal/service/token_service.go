package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"engagepulse/internal/model"
	"engagepulse/internal/repository"
)

// tokenTTL is how long an issued survey link stays redeemable.
const tokenTTL = 14 * 24 * time.Hour

// TokenService issues and redeems single-use anonymous access tokens. The
// (survey, employee) link lives only inside the token row; everything this
// service returns to other components is the survey id alone.
type TokenService struct {
	tokenRepo repository.TokenRepo
}

// NewTokenService creates a new token service
func NewTokenService(tokenRepo repository.TokenRepo) *TokenService {
	return &TokenService{tokenRepo: tokenRepo}
}

// IssueForRoster creates one token per employee who does not already hold one
// for the survey. Safe to call repeatedly as the roster grows: duplicates are
// absorbed by the storage unique index, and a mid-roster failure leaves the
// tokens issued so far valid. Returns the number of fresh tokens.
func (s *TokenService) IssueForRoster(ctx context.Context, surveyID string, employees []*model.Employee) (int, error) {
	expiresAt := time.Now().Add(tokenTTL)
	issued := 0

	for _, employee := range employees {
		token := &model.AccessToken{
			Token:      uuid.NewString(),
			SurveyID:   surveyID,
			EmployeeID: employee.ID,
			Used:       false,
			ExpiresAt:  expiresAt,
		}

		inserted, err := s.tokenRepo.Insert(ctx, token)
		if err != nil {
			return issued, storageErr(err)
		}
		if inserted {
			issued++
			// Mock email delivery
			log.Printf("Sending email to %s with link: /s/%s", employee.Email, token.Token)
		}
	}

	return issued, nil
}

// Resolve validates a token and returns the survey it grants access to.
// The employee reference never leaves this component.
func (s *TokenService) Resolve(ctx context.Context, tokenString string) (string, error) {
	token, err := s.tokenRepo.GetByToken(ctx, tokenString)
	if err != nil {
		return "", storageErr(err)
	}
	if token == nil {
		return "", ErrTokenNotFound
	}
	if token.Used {
		return "", ErrTokenAlreadyUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return "", ErrTokenExpired
	}
	return token.SurveyID, nil
}

// Redeem atomically consumes a token. Under concurrent calls with the same
// token exactly one caller succeeds; the rest see ErrTokenAlreadyUsed.
func (s *TokenService) Redeem(ctx context.Context, tokenString string) (string, error) {
	claimed, err := s.tokenRepo.ClaimUnused(ctx, tokenString, time.Now())
	if err != nil {
		return "", storageErr(err)
	}
	if claimed != nil {
		return claimed.SurveyID, nil
	}

	// The claim missed; look the token up to report why.
	token, err := s.tokenRepo.GetByToken(ctx, tokenString)
	if err != nil {
		return "", storageErr(err)
	}
	if token == nil {
		return "", ErrTokenNotFound
	}
	if token.Used {
		return "", ErrTokenAlreadyUsed
	}
	return "", ErrTokenExpired
}

// Unredeem rolls back a claim when the caller failed to record the response
// that justified it.
func (s *TokenService) Unredeem(ctx context.Context, tokenString string) error {
	if err := s.tokenRepo.Release(ctx, tokenString); err != nil {
		return storageErr(err)
	}
	return nil
}

// UnusedForSurvey lists the tokens still open for a survey
func (s *TokenService) UnusedForSurvey(ctx context.Context, surveyID string) ([]*model.AccessToken, error) {
	tokens, err := s.tokenRepo.GetUnusedBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}
	return tokens, nil
}

// DeleteForSurvey removes all tokens for a survey, used when the survey
// itself is deleted
func (s *TokenService) DeleteForSurvey(ctx context.Context, surveyID string) error {
	if err := s.tokenRepo.DeleteBySurveyID(ctx, surveyID); err != nil {
		return storageErr(err)
	}
	return nil
}
