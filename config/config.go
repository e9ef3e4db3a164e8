package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Feature   FeatureConfig   `mapstructure:"feature"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port        int        `mapstructure:"port"`
	BaseURL     string     `mapstructure:"base_url"`
	MaxUploadMB int64      `mapstructure:"max_upload_mb"`
	CORS        CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	URL             string `mapstructure:"url"` // 完整连接串，优先于分项配置
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 分钟
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 分钟
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（仅用于限流，未启用时限流中间件直接放行）
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 管理员认证配置
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"` // bcrypt
	Cookie            CookieConfig  `mapstructure:"cookie"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	Domain   string `mapstructure:"domain"`
}

// StorageConfig 截图存储配置
type StorageConfig struct {
	Driver     string           `mapstructure:"driver"` // cloudinary | local
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Local      LocalConfig      `mapstructure:"local"`
}

// CloudinaryConfig 图床配置
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
	MaxWidth  int    `mapstructure:"max_width"`
}

// LocalConfig 本地磁盘存储配置
type LocalConfig struct {
	Dir       string `mapstructure:"dir"`
	PublicURL string `mapstructure:"public_url"`
}

// RateLimitConfig 公开接口限流（每分钟每 IP）
type RateLimitConfig struct {
	LoginPerMinute  int `mapstructure:"login_per_minute"`
	SubmitPerMinute int `mapstructure:"submit_per_minute"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	// AllowDelete 开启后注册 DELETE /submissions/:id（硬删除记录并清理截图）
	AllowDelete bool `mapstructure:"allow_delete"`
	// StrictTransitions 开启后状态流转只接受合法的前置状态，否则返回 409
	StrictTransitions bool `mapstructure:"strict_transitions"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量（含 .env）> 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.max_upload_mb", 5)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "fyb_checkin")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Africa/Lagos")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// 无默认值的键也需登记，AutomaticEnv 才会在 Unmarshal 时读取对应环境变量
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_username", "")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.session_ttl", "6h")
	v.SetDefault("auth.cookie.name", "admin_token")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Strict")
	v.SetDefault("auth.cookie.domain", "")

	v.SetDefault("storage.driver", "cloudinary")
	v.SetDefault("storage.cloudinary.cloud_name", "")
	v.SetDefault("storage.cloudinary.api_key", "")
	v.SetDefault("storage.cloudinary.api_secret", "")
	v.SetDefault("storage.cloudinary.folder", "fyb-payments")
	v.SetDefault("storage.cloudinary.max_width", 800)
	v.SetDefault("storage.local.dir", "./uploads")
	v.SetDefault("storage.local.public_url", "http://localhost:5000/uploads")

	v.SetDefault("rate_limit.login_per_minute", 10)
	v.SetDefault("rate_limit.submit_per_minute", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("feature.allow_delete", false)
	v.SetDefault("feature.strict_transitions", false)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("FYB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("配置校验失败: auth.admin_username 与 auth.admin_password_hash 不能为空")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("配置校验失败: auth.session_ttl 必须为正数")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	switch c.Storage.Driver {
	case "cloudinary":
		cld := c.Storage.Cloudinary
		if cld.CloudName == "" || cld.APIKey == "" || cld.APISecret == "" {
			return fmt.Errorf("配置校验失败: storage.cloudinary 凭据不完整")
		}
	case "local":
		if c.Storage.Local.Dir == "" {
			return fmt.Errorf("配置校验失败: storage.local.dir 不能为空")
		}
	default:
		return fmt.Errorf("配置校验失败: 未知的 storage.driver %q", c.Storage.Driver)
	}

	return nil
}
