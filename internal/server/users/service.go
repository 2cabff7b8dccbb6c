// Package users holds the account model, the credential store
// implementations and Service, which registers users, logs them in and
// serves the profile operations guarded by the caller's identity.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/dmitrijs2005/gophcourses/internal/logging"
	"github.com/dmitrijs2005/gophcourses/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs claim sets into bearer tokens.
type TokenIssuer interface {
	Issue(claims auth.ClaimSet) (string, error)
}

// Metrics receives the outcome of each credential operation.
type Metrics interface {
	RecordRegistration(outcome string)
	RecordLogin(outcome string)
}

// Operation outcomes reported to Metrics.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// timingPassword is hashed once and compared against when the email is
// unknown, so both login failures cost one bcrypt comparison.
const timingPassword = "timing-equaliser"

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logging.Logger
	metrics  Metrics
	validate *validator.Validate

	dummyMu     sync.Mutex
	dummyDigest string
}

func NewService(repo Repository, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger, metrics Metrics) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With("module", "users"),
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register creates an account. It never returns the stored hash and never
// logs the new user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if err := s.check(in); err != nil {
		s.metrics.RecordRegistration(OutcomeInvalidInput)
		return nil, err
	}
	if len(in.Password) > auth.MaxPasswordLength {
		s.metrics.RecordRegistration(OutcomeInvalidInput)
		return nil, fmt.Errorf("%w: password longer than %d bytes", common.ErrValidation, auth.MaxPasswordLength)
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.metrics.RecordRegistration(OutcomeDuplicate)
		return nil, common.ErrDuplicateAccount
	case !errors.Is(err, common.ErrNotFound):
		s.metrics.RecordRegistration(OutcomeError)
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.metrics.RecordRegistration(OutcomeError)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Insert(ctx, &User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Date:         in.Date,
	})
	if err != nil {
		// The store's unique constraint decides concurrent registrations.
		if errors.Is(err, common.ErrDuplicateAccount) {
			s.metrics.RecordRegistration(OutcomeDuplicate)
			return nil, common.ErrDuplicateAccount
		}
		s.metrics.RecordRegistration(OutcomeError)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.metrics.RecordRegistration(OutcomeSuccess)
	s.logger.Info(ctx, "user registered", "subject", user.ID)
	return &Result{Message: MessageUserCreated}, nil
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password both fail with common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	if err := s.check(in); err != nil {
		s.metrics.RecordLogin(OutcomeInvalidInput)
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(in.Password, s.timingDigest(ctx))
			s.metrics.RecordLogin(OutcomeInvalidCredentials)
			return nil, common.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(OutcomeError)
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.metrics.RecordLogin(OutcomeInvalidCredentials)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.ClaimSet{
		SubjectID:   user.ID,
		DisplayName: user.Name,
		CreatedDate: user.Date,
	})
	if err != nil {
		s.metrics.RecordLogin(OutcomeError)
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.metrics.RecordLogin(OutcomeSuccess)
	s.logger.Info(ctx, "user logged in", "subject", user.ID)
	return &Result{Message: MessageLoginOK, Token: token}, nil
}

// UpdateProfile changes the name and date of targetID. Only the owner may
// do it.
func (s *Service) UpdateProfile(ctx context.Context, id auth.Identity, targetID string, upd ProfileUpdate) (*Result, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}
	if err := auth.RequireSelf(id, targetID); err != nil {
		s.logger.Warn(ctx, "profile update denied", "subject", id.SubjectID, "target", targetID)
		return nil, err
	}
	if err := s.check(upd); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, targetID, upd); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return &Result{Message: MessageUserUpdated}, nil
}

// Profile returns the caller's own profile.
func (s *Service) Profile(ctx context.Context, id auth.Identity) (*Profile, error) {
	if err := auth.RequireAuthenticated(id); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, id.SubjectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user.Profile(), nil
}

func (s *Service) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

// timingDigest returns the digest compared against for unknown emails. A
// failed hash is not cached, so the next call tries again.
func (s *Service) timingDigest(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest != "" {
		return s.dummyDigest
	}
	d, err := s.hasher.Hash(timingPassword)
	if err != nil {
		s.logger.Error(ctx, "timing digest error", "error", err.Error())
		return ""
	}
	s.dummyDigest = d
	return d
}
