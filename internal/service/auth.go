package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/marketplace-reputation/internal/mailer"
	"github.com/iliyamo/marketplace-reputation/internal/model"
	"github.com/iliyamo/marketplace-reputation/internal/repository"
	"github.com/iliyamo/marketplace-reputation/internal/store"
	"github.com/iliyamo/marketplace-reputation/internal/utils"
)

// Workflow status strings returned in DTOs.
const (
	StatusRegistrationPending = "PENDING"
	StatusAuthenticated       = "AUTHENTICATED"
	StatusResetSent           = "SENT"
	StatusUserActivated       = "ACTIVATED"
	StatusUserDeleted         = "DELETED"
)

// RegistrationResult is returned by Register.
type RegistrationResult struct {
	Email  string `json:"email"`
	Token  string `json:"token"`
	Status string `json:"status"`
}

// AuthResult is returned by Authenticate.
type AuthResult struct {
	Email  string `json:"email"`
	Token  string `json:"token"`
	Status string `json:"status"`
}

// ResetResult is returned by InitiatePasswordReset.
type ResetResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ConfirmResult is returned by ConfirmUser.
type ConfirmResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// AuthService drives the account lifecycle:
//
//	UNREGISTERED -> REGISTERED (email unconfirmed)
//	             -> EMAIL_CONFIRMED (pending admin review)
//	             -> ACTIVATED | REJECTED (row deleted)
//
// plus authentication and the password-reset round trip. Relational writes
// go through the repository store; tokens, reset codes and pending
// comments live in the ephemeral TTL store and are not covered by the
// relational transaction.
type AuthService struct {
	store      repository.Store
	cache      store.Store
	codec      *utils.TokenCodec
	mail       mailer.Mailer
	relay      *RelayService
	baseURL    string
	bcryptCost int
	confirmTTL time.Duration
	resetTTL   time.Duration
}

// NewAuthService wires the state machine.
func NewAuthService(st repository.Store, cache store.Store, codec *utils.TokenCodec, mail mailer.Mailer, relay *RelayService, baseURL string, bcryptCost int, confirmTTL, resetTTL time.Duration) *AuthService {
	return &AuthService{
		store:      st,
		cache:      cache,
		codec:      codec,
		mail:       mail,
		relay:      relay,
		baseURL:    strings.TrimRight(baseURL, "/"),
		bcryptCost: bcryptCost,
		confirmTTL: confirmTTL,
		resetTTL:   resetTTL,
	}
}

// Register creates a SELLER account with both gates closed, stores a fresh
// confirmation token and dispatches the registration email. The email
// dispatch is fire-and-forget; a failed delivery never fails registration.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (RegistrationResult, error) {
	email = strings.TrimSpace(email)
	if !utils.ValidEmail(email) {
		return RegistrationResult{}, fmt.Errorf("%w: malformed email address", ErrInvalidOperation)
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return RegistrationResult{}, err
	}
	u := model.User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSeller,
	}
	if err := s.store.Users().Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return RegistrationResult{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return RegistrationResult{}, err
	}
	token, err := s.codec.Issue(email)
	if err != nil {
		return RegistrationResult{}, err
	}
	if err := s.cache.Save(ctx, store.NSConfirm, email, token, s.confirmTTL); err != nil {
		return RegistrationResult{}, err
	}
	s.mail.SendRegistrationEmail(ctx, email, u.FullName(), s.confirmLink(token))
	return RegistrationResult{Email: email, Token: token, Status: StatusRegistrationPending}, nil
}

// ConfirmEmail consumes the emailed token: decode, compare against the
// stored slot, then open the email gate. The account still waits for
// admin review afterwards.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := s.codec.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: unusable confirmation token", ErrInvalidOperation)
	}
	stored, err := s.cache.Get(ctx, store.NSConfirm, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: confirmation token expired or already used", ErrNotFound)
		}
		return "", err
	}
	if stored != token {
		return "", fmt.Errorf("%w: confirmation token mismatch", ErrInvalidOperation)
	}
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return "", err
	}
	if err := s.store.Users().SetEmailConfirmed(ctx, u.ID, true); err != nil {
		return "", err
	}
	return "email confirmed, account awaiting administrator review", nil
}

// ConfirmUser is the admin decision. Approval opens the activation gate
// and replays any comment the user left before registering; rejection
// deletes the account (comments they authored survive with a cleared
// author). Either way the confirmation-token slot is consumed.
func (s *AuthService) ConfirmUser(ctx context.Context, email string, approve bool) (ConfirmResult, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ConfirmResult{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return ConfirmResult{}, err
	}
	if !u.EmailConfirmed {
		return ConfirmResult{}, fmt.Errorf("%w: email not confirmed yet", ErrInvalidOperation)
	}
	if !approve {
		err := s.store.InTx(ctx, func(st repository.Store) error {
			if err := st.Comments().ClearAuthor(ctx, u.ID); err != nil {
				return err
			}
			return st.Users().Delete(ctx, u.ID)
		})
		if err != nil {
			return ConfirmResult{}, err
		}
		_ = s.cache.Remove(ctx, store.NSConfirm, email)
		return ConfirmResult{Email: email, Status: StatusUserDeleted}, nil
	}
	if err := s.store.Users().SetActivated(ctx, u.ID, true); err != nil {
		return ConfirmResult{}, err
	}
	_ = s.cache.Remove(ctx, store.NSConfirm, email)
	u.Activated = true
	// Best-effort: activation stands even if the captured comment cannot
	// be replayed (its slot simply expires).
	if err := s.relay.Replay(ctx, u); err != nil {
		log.Printf("auth: replaying pending comment for %s failed: %v", email, err)
	}
	return ConfirmResult{Email: email, Status: StatusUserActivated}, nil
}

// Authenticate verifies credentials, then the activation gate, in that
// order: a wrong password is Unauthorized, valid credentials on a
// non-activated account are NotActivated. The message branches only on
// user-row existence, so "awaiting email confirmation" and "awaiting
// admin" read the same.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.store.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return AuthResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return AuthResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !u.Activated {
		return AuthResult{}, fmt.Errorf("%w: account is awaiting activation", ErrNotActivated)
	}
	token, err := s.codec.Issue(u.Email)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Email: u.Email, Token: token, Status: StatusAuthenticated}, nil
}

// InitiatePasswordReset stores a fresh 6-digit code under the reset slot
// and dispatches it by email. A second call overwrites the first code.
func (s *AuthService) InitiatePasswordReset(ctx context.Context, email string) (ResetResult, error) {
	email = strings.TrimSpace(email)
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ResetResult{}, fmt.Errorf("%w: unknown email", ErrInvalidOperation)
		}
		return ResetResult{}, err
	}
	code, err := utils.RandomDigits(6)
	if err != nil {
		return ResetResult{}, err
	}
	if err := s.cache.Save(ctx, store.NSReset, email, code, s.resetTTL); err != nil {
		return ResetResult{}, err
	}
	s.mail.SendPasswordResetEmail(ctx, email, u.FullName(), code)
	return ResetResult{Email: email, Status: StatusResetSent}, nil
}

// VerifyResetCode is a pure read: it reports whether the presented code
// matches the stored one without consuming it.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) bool {
	stored, err := s.cache.Get(ctx, store.NSReset, strings.TrimSpace(email))
	return err == nil && stored == code
}

// ResetPassword re-hashes the password once the stored code matches, then
// consumes the code slot.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)
	stored, err := s.cache.Get(ctx, store.NSReset, email)
	if err != nil || stored != code {
		return fmt.Errorf("%w: reset code invalid or expired", ErrInvalidOperation)
	}
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return err
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.store.Users().UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	return s.cache.Remove(ctx, store.NSReset, email)
}

// CurrentActor resolves the actor for an authenticated request from the
// token subject. An unknown subject (account deleted after the token was
// issued) reads as anonymous.
func (s *AuthService) CurrentActor(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, nil
	}
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) confirmLink(token string) string {
	return s.baseURL + "/v1/auth/confirm-email?token=" + url.QueryEscape(token)
}
