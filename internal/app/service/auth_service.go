package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"evalux/internal/common"
	"evalux/internal/common/security"
	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"
	"evalux/internal/platform/config"
	"evalux/internal/platform/mail"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AuthService handles the two-phase registration flow (signup, then OTP
// verification) plus login. Unverified registrations live only in Redis and
// expire with their OTP.
type AuthService struct {
	userRepo repository.UserRepository
	mailer   *mail.Mailer
	rdb      *redis.Client
}

func NewAuthService(userRepo repository.UserRepository, mailer *mail.Mailer, rdb *redis.Client) *AuthService {
	return &AuthService{userRepo: userRepo, mailer: mailer, rdb: rdb}
}

type RegisterRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	LoginField string `json:"login_field"` // Can be username or email
	Password   string `json:"password"`
}

type AuthResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
}

// pendingRegistration is the Redis-resident blob created at signup: the
// would-be user plus the OTP they must echo back.
type pendingRegistration struct {
	User model.PendingUser `json:"user"`
	OTP  string            `json:"otp"`
}

func otpKey(email string) string {
	return "otp:" + email
}

// Register validates the signup, parks it in Redis under a TTL and sends the
// OTP. No database row exists until the OTP is verified.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return common.ErrBadRequest
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return fmt.Errorf("username already taken: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	pending := pendingRegistration{
		User: model.PendingUser{
			Username:       req.Username,
			Email:          req.Email,
			HashedPassword: hashedPassword,
			Interests:      req.Interests,
		},
		OTP: otp,
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}

	if err := s.rdb.Set(ctx, otpKey(req.Email), payload, config.AppConfig.OTPTTL).Err(); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	return s.mailer.SendOTP(req.Email, otp)
}

// VerifyOTP promotes a pending registration into a real user and returns an
// authenticated session.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	if req.Email == "" || req.OTP == "" {
		return nil, common.ErrBadRequest
	}

	payload, err := s.rdb.Get(ctx, otpKey(req.Email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("no pending registration or OTP expired: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load pending registration: %w", err)
	}

	var pending pendingRegistration
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}
	if pending.OTP != req.OTP {
		return nil, fmt.Errorf("invalid OTP: %w", common.ErrUnauthorized)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       pending.User.Username,
		Email:          pending.User.Email,
		HashedPassword: pending.User.HashedPassword,
		Interests:      pending.User.Interests,
		Role:           model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.rdb.Del(ctx, otpKey(req.Email))

	return s.tokenResponse(user)
}

// ResendOTP issues a fresh code for an existing pending registration and
// resets its TTL.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	if email == "" {
		return common.ErrBadRequest
	}

	payload, err := s.rdb.Get(ctx, otpKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("no pending registration for this email: %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to load pending registration: %w", err)
	}

	var pending pendingRegistration
	if err := json.Unmarshal(payload, &pending); err != nil {
		return fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	pending.OTP = otp

	payload, err = json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}
	if err := s.rdb.Set(ctx, otpKey(email), payload, config.AppConfig.OTPTTL).Err(); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}

	return s.mailer.SendOTP(email, otp)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.LoginField == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	// Try finding by email first, then by username
	user, err := s.userRepo.FindByEmail(ctx, req.LoginField)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			user, err = s.userRepo.FindByUsername(ctx, req.LoginField)
		}
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	return s.tokenResponse(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *AuthService) tokenResponse(user *model.User) (*AuthResponse, error) {
	token, err := security.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, AccessToken: token, TokenType: "bearer"}, nil
}

// generateOTP returns a 6-digit code with leading zeros preserved.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
