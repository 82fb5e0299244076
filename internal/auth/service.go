package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/otp"
	"github.com/redmonkez12/library-api/internal/sms"
	"github.com/redmonkez12/library-api/internal/user"
	"github.com/redmonkez12/library-api/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrOTPNotVerified     = errors.New("OTP not verified")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrPhoneMismatch      = errors.New("phone number does not match the verified number")
	ErrPhoneRequired      = errors.New("phone number not provided")
	ErrSMSDelivery        = errors.New("failed to deliver OTP")
)

const (
	passwordTag = "required,min=8,max=128"
	phoneTag    = "required,e164"
)

// SignupRequest is the registration payload. It is cached with the signup
// code and replayed on successful verification.
type SignupRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Username    string `json:"username" validate:"required,alphanum,max=150"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	UserType    string `json:"user_type" validate:"required,max=32"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
}

// pendingSignup is what the signup entry caches between generate and
// verify. The password is held as its argon2id hash.
type pendingSignup struct {
	PhoneNumber  string `json:"phone_number" validate:"required,e164"`
	Username     string `json:"username" validate:"required,alphanum,max=150"`
	Email        string `json:"email" validate:"required,email,max=254"`
	PasswordHash string `json:"password_hash" validate:"required"`
	UserType     string `json:"user_type" validate:"required,max=32"`
	FirstName    string `json:"first_name" validate:"max=150"`
	LastName     string `json:"last_name" validate:"max=150"`
}

// ChangePasswordRequest represents the change-password request body
type ChangePasswordRequest struct {
	Username           string `json:"username"`
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// Service handles account business logic
type Service struct {
	userRepo  *user.Repository
	otps      *otp.Manager
	sms       sms.Sender
	validator *validation.Validator
	logger    *logging.Logger
	params    argon2Params
}

func NewService(
	userRepo *user.Repository,
	otps *otp.Manager,
	sender sms.Sender,
	validator *validation.Validator,
	logger *logging.Logger,
) *Service {
	return &Service{
		userRepo:  userRepo,
		otps:      otps,
		sms:       sender,
		validator: validator,
		logger:    logger,
		params:    defaultArgon2Params,
	}
}

// GenerateSignupOTP caches the signup payload with a fresh code and texts
// the code to the payload's phone number. Reissuing replaces the previous
// code and payload.
func (s *Service) GenerateSignupOTP(ctx context.Context, req SignupRequest) error {
	if err := s.validator.Var("phone_number", req.PhoneNumber, phoneTag); err != nil {
		return err
	}

	pending, err := s.toPending(req)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to encode signup payload: %w", err)
	}

	code, err := s.otps.Issue(ctx, otp.PurposeSignup, req.PhoneNumber, req.PhoneNumber, payload)
	if err != nil {
		return fmt.Errorf("failed to issue otp: %w", err)
	}

	if err := s.sendCode(ctx, req.PhoneNumber, code); err != nil {
		if cerr := s.otps.Consume(ctx, otp.PurposeSignup, req.PhoneNumber); cerr != nil {
			s.logger.Warn("failed to drop undelivered otp", "error", cerr.Error())
		}
		return err
	}

	return nil
}

// VerifySignupOTP checks code for phone and creates the user from the cached
// payload. When creation fails the entry stays verified so the client can
// correct the payload through CreateUser before it expires.
func (s *Service) VerifySignupOTP(ctx context.Context, phone, code string) (*user.User, error) {
	entry, err := s.otps.Verify(ctx, otp.PurposeSignup, phone, code)
	if err != nil {
		return nil, err
	}

	var pending pendingSignup
	if err := json.Unmarshal(entry.Payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to decode cached signup payload: %w", err)
	}

	newUser, err := s.createVerifiedUser(ctx, pending)
	if err != nil {
		return nil, err
	}

	s.consume(ctx, otp.PurposeSignup, phone)
	return newUser, nil
}

// CreateUser persists req only when the caller claims verification and a
// verified signup entry exists server-side for req's phone number.
func (s *Service) CreateUser(ctx context.Context, req SignupRequest, otpVerified bool) (*user.User, error) {
	if !otpVerified {
		return nil, ErrOTPNotVerified
	}

	if _, err := s.otps.Verified(ctx, otp.PurposeSignup, req.PhoneNumber); err != nil {
		if errors.Is(err, otp.ErrNotVerified) {
			return nil, ErrOTPNotVerified
		}
		return nil, fmt.Errorf("failed to check otp state: %w", err)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	pending, err := s.toPending(req)
	if err != nil {
		return nil, err
	}

	newUser, err := s.createVerifiedUser(ctx, pending)
	if err != nil {
		return nil, err
	}

	s.consume(ctx, otp.PurposeSignup, req.PhoneNumber)
	return newUser, nil
}

// toPending checks the password rules and replaces the password with its hash
func (s *Service) toPending(req SignupRequest) (pendingSignup, error) {
	if err := s.validator.Var("password", req.Password, passwordTag); err != nil {
		return pendingSignup{}, err
	}

	passwordHash, err := s.params.hashPassword(req.Password)
	if err != nil {
		return pendingSignup{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return pendingSignup{
		PhoneNumber:  req.PhoneNumber,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		UserType:     req.UserType,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}, nil
}

func (s *Service) createVerifiedUser(ctx context.Context, p pendingSignup) (*user.User, error) {
	if err := s.validator.Struct(p); err != nil {
		return nil, err
	}

	newUser, err := s.userRepo.Create(ctx, user.CreateParams{
		Username:      p.Username,
		Email:         p.Email,
		PasswordHash:  p.PasswordHash,
		PhoneNumber:   p.PhoneNumber,
		UserType:      strings.ToUpper(p.UserType),
		IsOTPVerified: true,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) || errors.Is(err, user.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", newUser.ID)
	return newUser, nil
}

// SignIn checks credentials by username, then by email, and requires the
// stored user type to match userType case-insensitively. The user type is
// compared only after the password has been verified, so ErrInvalidUserType
// is never returned for a wrong password.
func (s *Service) SignIn(ctx context.Context, identifier, password, userType string) (*user.User, error) {
	u, err := s.authenticate(ctx, identifier, password)
	if errors.Is(err, ErrInvalidCredentials) {
		byEmail, lookupErr := s.userRepo.GetByEmail(ctx, identifier)
		switch {
		case lookupErr == nil:
			u, err = s.authenticate(ctx, byEmail.Username, password)
		case !errors.Is(lookupErr, user.ErrNotFound):
			return nil, fmt.Errorf("failed to get user: %w", lookupErr)
		}
	}
	if err != nil {
		return nil, err
	}

	if u.UserType != strings.ToUpper(userType) {
		return nil, ErrInvalidUserType
	}

	return u, nil
}

// ChangePassword replaces the password of username after checking the
// current one.
func (s *Service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	u, err := s.authenticate(ctx, req.Username, req.CurrentPassword)
	if err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return ErrPasswordMismatch
	}

	if err := s.validator.Var("new_password", req.NewPassword, passwordTag); err != nil {
		return err
	}

	passwordHash, err := s.params.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", "user_id", u.ID)
	return nil
}

// SetPhoneNumber runs the two-step phone change. Without code it texts a
// fresh code to phone and reports codeSent. With code it verifies it and
// stores phone, which must be the number the code was sent to.
func (s *Service) SetPhoneNumber(ctx context.Context, userID uuid.UUID, phone, code string) (codeSent bool, err error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, err
	}

	if phone == "" {
		return false, ErrPhoneRequired
	}
	if err := s.validator.Var("phone_number", phone, phoneTag); err != nil {
		return false, err
	}

	subject := userID.String()

	if code == "" {
		issued, err := s.otps.Issue(ctx, otp.PurposePhoneChange, subject, phone, nil)
		if err != nil {
			return false, fmt.Errorf("failed to issue otp: %w", err)
		}
		if err := s.sendCode(ctx, phone, issued); err != nil {
			s.consume(ctx, otp.PurposePhoneChange, subject)
			return false, err
		}
		return true, nil
	}

	entry, err := s.otps.Verify(ctx, otp.PurposePhoneChange, subject, code)
	if err != nil {
		return false, err
	}
	if entry.PhoneNumber != phone {
		return false, ErrPhoneMismatch
	}

	if err := s.userRepo.UpdatePhoneNumber(ctx, userID, phone); err != nil {
		return false, fmt.Errorf("failed to update phone number: %w", err)
	}

	s.consume(ctx, otp.PurposePhoneChange, subject)
	s.logger.Info("phone number changed", "user_id", userID)
	return false, nil
}

// authenticate returns ErrInvalidCredentials for an unknown username or a
// wrong password.
func (s *Service) authenticate(ctx context.Context, username, password string) (*user.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !verifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) sendCode(ctx context.Context, phone, code string) error {
	message, err := sms.OTPMessage(code)
	if err != nil {
		return err
	}

	if err := s.sms.Send(ctx, phone, message); err != nil {
		logging.GetLoggerFromContext(ctx).Warn("failed to send otp sms", "error", err.Error())
		return fmt.Errorf("%w: %w", ErrSMSDelivery, err)
	}

	return nil
}

func (s *Service) consume(ctx context.Context, purpose otp.Purpose, subject string) {
	if err := s.otps.Consume(ctx, purpose, subject); err != nil {
		s.logger.Warn("failed to consume otp entry", "purpose", string(purpose), "error", err.Error())
	}
}
