package service

import (
	"crypto/subtle"
	"fmt"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/util"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService 管理员口令校验，口令来自配置并随配置热更新
type AuthService struct {
	mu           sync.RWMutex
	password     string
	passwordHash string
	secret       string
	expire       time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	s := &AuthService{}
	s.UpdateCredentials(cfg)
	return s
}

func (s *AuthService) UpdateCredentials(cfg *config.Config) {
	expire := cfg.JWT.ExpireTime
	if expire <= 0 {
		expire = 12 * time.Hour
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = cfg.Admin.Password
	s.passwordHash = cfg.Admin.PasswordHash
	s.secret = cfg.JWT.Secret
	s.expire = expire
}

// CheckPassword 优先使用 bcrypt 哈希；未配置任何口令时一律拒绝
func (s *AuthService) CheckPassword(password string) bool {
	s.mu.RLock()
	plain, hash := s.password, s.passwordHash
	s.mu.RUnlock()

	if password == "" {
		return false
	}
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(password)) == 1
}

func (s *AuthService) Login(password string) (*LoginResponse, error) {
	if !s.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid admin password", util.ErrUnauthorized)
	}

	s.mu.RLock()
	secret, expire := s.secret, s.expire
	s.mu.RUnlock()
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing is not configured", util.ErrUnauthorized)
	}

	token, expiresAt, err := util.GenerateJWT(secret, expire)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) ValidateToken(token string) (*util.Claims, error) {
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()
	if secret == "" {
		return nil, util.ErrUnauthorized
	}

	claims, err := util.ParseJWT(token, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUnauthorized, err)
	}
	if claims.Role != util.RoleAdmin {
		return nil, util.ErrUnauthorized
	}
	return claims, nil
}
