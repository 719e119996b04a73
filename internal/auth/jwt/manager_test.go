package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Generate(t *testing.T) {
	manager := NewManager("test-secret", "ewebb", 24*time.Hour)

	token, err := manager.Generate("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestManager_Validate(t *testing.T) {
	manager := NewManager("test-secret", "ewebb", 24*time.Hour)

	token, err := manager.Generate("admin")
	require.NoError(t, err)

	username, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestManager_Validate_Invalid(t *testing.T) {
	manager := NewManager("test-secret", "ewebb", 24*time.Hour)

	_, err := manager.Validate("invalid-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Validate_Expired(t *testing.T) {
	manager := NewManager("test-secret", "ewebb", 1*time.Millisecond)

	token, err := manager.Generate("admin")
	require.NoError(t, err)

	// 等待令牌过期
	time.Sleep(10 * time.Millisecond)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_Validate_MissingSubject(t *testing.T) {
	manager := NewManager("test-secret", "ewebb", 24*time.Hour)

	token, err := manager.Generate("")
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_DifferentSecrets(t *testing.T) {
	manager1 := NewManager("secret-1", "ewebb", 24*time.Hour)
	manager2 := NewManager("secret-2", "ewebb", 24*time.Hour)

	token, err := manager1.Generate("admin")
	require.NoError(t, err)

	// 使用不同密钥验证应失败
	_, err = manager2.Validate(token)
	assert.Error(t, err)
}
