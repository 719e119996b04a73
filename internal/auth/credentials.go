package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialKind 凭证的存储形态
type CredentialKind int

const (
	// CredentialPlain 明文凭证（本地开发的兼容形态）
	CredentialPlain CredentialKind = iota
	// CredentialHashed bcrypt 哈希凭证
	CredentialHashed
)

// Credential 管理员密码凭证
//
// 配置值既可能是 bcrypt 哈希也可能是明文，解析一次后以带标签的变体表示，
// 避免在校验路径上反复猜测。明文形态是刻意保留的运维兼容行为，不是安全实践。
type Credential struct {
	kind  CredentialKind
	value string
}

// ParseCredential 按结构特征识别配置的密码形态
//
// bcrypt 哈希以 $2a$ / $2b$ / $2y$ 开头；其余一律按明文处理。
func ParseCredential(configured string) Credential {
	if strings.HasPrefix(configured, "$2a$") ||
		strings.HasPrefix(configured, "$2b$") ||
		strings.HasPrefix(configured, "$2y$") {
		return Credential{kind: CredentialHashed, value: configured}
	}
	return Credential{kind: CredentialPlain, value: configured}
}

// Kind 返回凭证形态
func (c Credential) Kind() CredentialKind {
	return c.kind
}

// Verify 校验密码是否与凭证匹配
//
// 校验过程中的任何错误（如损坏的哈希）都按不匹配处理，绝不向外传播。
func (c Credential) Verify(password string) bool {
	switch c.kind {
	case CredentialHashed:
		return bcrypt.CompareHashAndPassword([]byte(c.value), []byte(password)) == nil
	default:
		return subtle.ConstantTimeCompare([]byte(c.value), []byte(password)) == 1
	}
}

// Authenticator 唯一管理员账号的认证器
type Authenticator struct {
	username   string
	credential Credential
}

// NewAuthenticator 创建管理员认证器
func NewAuthenticator(username, configuredPassword string) *Authenticator {
	return &Authenticator{
		username:   username,
		credential: ParseCredential(configuredPassword),
	}
}

// Authenticate 校验用户名密码组合
func (a *Authenticator) Authenticate(username, password string) bool {
	if username != a.username {
		return false
	}
	return a.credential.Verify(password)
}

// CredentialKind 返回配置凭证的形态（用于启动时提示明文配置）
func (a *Authenticator) CredentialKind() CredentialKind {
	return a.credential.Kind()
}

// HashPassword 生成密码的 bcrypt 哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
