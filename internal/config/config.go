package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig 定义 HTTP 服务器的监听配置参数
type ServerConfig struct {
	Host string // 监听地址，默认 "0.0.0.0"
	Port int    // 监听端口，默认 8001
}

// MongoConfig 定义 MongoDB 连接配置
type MongoConfig struct {
	URI      string // 连接字符串，留空时使用内存存储
	Database string // 数据库名，默认 "ewebb_db"
}

// JWTConfig 定义管理员令牌的签发配置
type JWTConfig struct {
	Secret string        // HMAC 签名密钥
	Issuer string        // 签发者标识，默认 "ewebb"
	Expiry time.Duration // 令牌有效期，默认 24h
}

// AdminConfig 定义唯一管理员账号
//
// Password 可以是 bcrypt 哈希（$2a$/$2b$/$2y$ 前缀）或明文，
// 兼容两种配置方式（详见 auth 包）。
type AdminConfig struct {
	Username string
	Password string
	Email    string // 接收联系表单通知的管理员邮箱
}

// SMTPConfig 定义外发邮件（联系表单通知）的投递配置
type SMTPConfig struct {
	Host     string // SMTP 服务器，默认 "smtp.gmail.com"
	Port     int    // 提交端口，默认 587（STARTTLS）
	Username string // 发信账号
	Password string // 应用密码，留空时禁用邮件发送
}

// UploadsConfig 定义上传文件的存储配置
type UploadsConfig struct {
	Dir         string // 上传根目录，默认 "./uploads"
	MaxSize     int64  // 单次上传大小上限（字节），默认 20MB
	ContactBody int64  // 普通 JSON 请求体上限（字节），默认 1MB
}

// CORSConfig 定义跨域资源共享 (CORS) 配置
type CORSConfig struct {
	AllowedOrigins []string // 允许的来源列表，"*" 表示允许所有来源
}

// RateLimitConfig 定义联系表单的按 IP 限流配置
type RateLimitConfig struct {
	ContactPerMinute int // 每 IP 每分钟允许的提交次数，默认 10
	ContactBurst     int // 突发额度，默认 5
}

// LogConfig 定义日志系统配置
type LogConfig struct {
	Level       string // 日志级别: debug, info, warn, error
	Development bool   // 开发模式: 彩色控制台输出
}

// Config 是系统核心配置的根结构体，包含所有子系统的配置
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	Admin     AdminConfig
	SMTP      SMTPConfig
	Uploads   UploadsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// 默认密钥，仅允许在开发模式下使用
const defaultSecret = "your-secret-key-change-this"

// Load 从环境变量和 .env 文件加载系统配置
//
// 配置加载优先级（从高到低）：
//  1. 系统环境变量（最高优先级）
//  2. .env 文件（如果存在）
//  3. 默认值
//
// 环境变量前缀: EWEBB_
// 例如: EWEBB_SERVER_PORT, EWEBB_JWT_SECRET, EWEBB_ADMIN_PASSWORD
func Load() (*Config, error) {
	// 尝试加载 .env 文件（静默失败，因为 .env 文件是可选的）
	loadEnvFile()

	viper.SetEnvPrefix("ewebb")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8001)
	viper.SetDefault("mongo.uri", "")
	viper.SetDefault("mongo.database", "ewebb_db")
	viper.SetDefault("jwt.secret", defaultSecret)
	viper.SetDefault("jwt.issuer", "ewebb")
	viper.SetDefault("jwt.expiry", "24h")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "Pass@2025")
	viper.SetDefault("admin.email", "ewebbcybercafe@gmail.com")
	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.username", "ewebbcybercafe@gmail.com")
	viper.SetDefault("smtp.password", "")
	viper.SetDefault("uploads.dir", "./uploads")
	viper.SetDefault("uploads.max_size", 20*1024*1024)
	viper.SetDefault("uploads.contact_body", 1024*1024)
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("ratelimit.contact_per_minute", 10)
	viper.SetDefault("ratelimit.contact_burst", 5)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)

	expiry, err := time.ParseDuration(viper.GetString("jwt.expiry"))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.expiry: %w", err)
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	development := viper.GetBool("log.development")

	jwtSecret := viper.GetString("jwt.secret")

	// 安全检查：生产模式禁止使用默认签名密钥
	if !development && jwtSecret == defaultSecret {
		return nil, fmt.Errorf("SECURITY ERROR: JWT secret cannot be the default value. Please set EWEBB_JWT_SECRET environment variable")
	}

	maxSize := viper.GetInt64("uploads.max_size")
	if maxSize <= 0 {
		maxSize = 20 * 1024 * 1024
	}

	contactBody := viper.GetInt64("uploads.contact_body")
	if contactBody <= 0 {
		contactBody = 1024 * 1024
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("mongo.uri"),
			Database: viper.GetString("mongo.database"),
		},
		JWT: JWTConfig{
			Secret: jwtSecret,
			Issuer: viper.GetString("jwt.issuer"),
			Expiry: expiry,
		},
		Admin: AdminConfig{
			Username: viper.GetString("admin.username"),
			Password: viper.GetString("admin.password"),
			Email:    viper.GetString("admin.email"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("smtp.host"),
			Port:     viper.GetInt("smtp.port"),
			Username: viper.GetString("smtp.username"),
			Password: viper.GetString("smtp.password"),
		},
		Uploads: UploadsConfig{
			Dir:         viper.GetString("uploads.dir"),
			MaxSize:     maxSize,
			ContactBody: contactBody,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		RateLimit: RateLimitConfig{
			ContactPerMinute: viper.GetInt("ratelimit.contact_per_minute"),
			ContactBurst:     viper.GetInt("ratelimit.contact_burst"),
		},
		Log: LogConfig{
			Level:       viper.GetString("log.level"),
			Development: development,
		},
	}

	return cfg, nil
}

// parseList 将逗号分隔的字符串解析为字符串切片
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile 尝试加载 .env 文件
//
// 加载顺序：
//  1. 当前目录的 .env
//  2. 父目录的 .env（从 backend/ 子目录运行时）
//
// 已存在的环境变量不会被覆盖。
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}
