package security

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/config"
)

func newTestManager(expiry time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: expiry,
		BcryptCost:  4, // 测试用最低成本
	})
}

func TestManager_PasswordRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour)

	hash, err := m.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("哈希不应等于明文")
	}

	if !m.CheckPassword("s3cret-pass", hash) {
		t.Error("正确密码应通过校验")
	}
	if m.CheckPassword("wrong-pass", hash) {
		t.Error("错误密码不应通过校验")
	}
}

func TestManager_TokenRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour)

	staffID := uuid.New()
	storeID := uuid.New()
	claims := &Claims{
		AccountID: uuid.New(),
		Username:  "tencho",
		StaffID:   &staffID,
		StoreID:   &storeID,
		IsManager: true,
	}

	token, err := m.IssueToken(claims)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	parsed, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.Username != "tencho" {
		t.Errorf("Username = %s, expected tencho", parsed.Username)
	}
	if parsed.StaffID == nil || *parsed.StaffID != staffID {
		t.Error("StaffID 应在令牌中保留")
	}
	if !parsed.IsManager {
		t.Error("IsManager 应在令牌中保留")
	}
}

func TestManager_TokenWithoutStaff(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.IssueToken(&Claims{
		AccountID: uuid.New(),
		Username:  "unlinked",
	})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	parsed, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed.StaffID != nil {
		t.Error("未绑定员工的令牌 StaffID 应为空")
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.IssueToken(&Claims{AccountID: uuid.New(), Username: "old"})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrExpiredToken {
		t.Errorf("过期令牌应返回 ErrExpiredToken, 实际 %v", err)
	}
}

func TestManager_InvalidToken(t *testing.T) {
	m := newTestManager(time.Hour)

	if _, err := m.ParseToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("非法令牌应返回 ErrInvalidToken, 实际 %v", err)
	}

	// 不同密钥签发的令牌
	other := NewManager(&config.AuthConfig{JWTSecret: "other-secret", TokenExpiry: time.Hour, BcryptCost: 4})
	token, err := other.IssueToken(&Claims{AccountID: uuid.New(), Username: "intruder"})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := m.ParseToken(token); err != ErrInvalidToken {
		t.Errorf("密钥不匹配的令牌应返回 ErrInvalidToken, 实际 %v", err)
	}
}
