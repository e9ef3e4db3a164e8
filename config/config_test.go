package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 5000},
		Auth: AuthConfig{
			JWTSecret:         "test-secret-key-for-unit-testing",
			SessionTTL:        6 * time.Hour,
			AdminUsername:     "admin",
			AdminPasswordHash: "$2a$10$placeholder",
		},
		Storage: StorageConfig{
			Driver: "local",
			Local:  LocalConfig{Dir: "./uploads"},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("期望校验通过，实际: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"空密钥", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"短密钥", func(c *Config) { c.Auth.JWTSecret = "short" }, "jwt_secret"},
		{"缺少管理员", func(c *Config) { c.Auth.AdminUsername = "" }, "admin_username"},
		{"缺少密码哈希", func(c *Config) { c.Auth.AdminPasswordHash = "" }, "admin_password_hash"},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"未知存储", func(c *Config) { c.Storage.Driver = "s3" }, "storage.driver"},
		{"图床缺凭据", func(c *Config) { c.Storage.Driver = "cloudinary" }, "storage.cloudinary"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("期望校验失败")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("期望错误包含 %q，实际: %v", tc.want, err)
			}
		})
	}
}

func TestDSN_PrefersURL(t *testing.T) {
	c := DatabaseConfig{URL: "postgres://u:p@db:5432/fyb", Host: "ignored"}
	if c.DSN() != "postgres://u:p@db:5432/fyb" {
		t.Errorf("期望使用 URL，实际=%s", c.DSN())
	}

	c = DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "fyb", SSLMode: "disable", Timezone: "UTC"}
	if !strings.Contains(c.DSN(), "dbname=fyb") {
		t.Errorf("期望分项 DSN，实际=%s", c.DSN())
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	// 无配置文件、无 .env 的空目录
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("FYB_AUTH_JWT_SECRET", "env-only-secret-value")
	t.Setenv("FYB_AUTH_ADMIN_USERNAME", "admin")
	t.Setenv("FYB_AUTH_ADMIN_PASSWORD_HASH", "$2a$10$placeholder")
	t.Setenv("FYB_AUTH_COOKIE_DOMAIN", "fyb.example.com")
	t.Setenv("FYB_STORAGE_DRIVER", "cloudinary")
	t.Setenv("FYB_STORAGE_CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("FYB_STORAGE_CLOUDINARY_API_KEY", "key")
	t.Setenv("FYB_STORAGE_CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("仅环境变量应可加载，实际: %v", err)
	}

	if cfg.Auth.JWTSecret != "env-only-secret-value" || cfg.Auth.AdminUsername != "admin" {
		t.Errorf("认证配置未读取环境变量: %+v", cfg.Auth)
	}
	if cfg.Auth.Cookie.Domain != "fyb.example.com" {
		t.Errorf("期望 cookie domain 来自环境变量，实际=%q", cfg.Auth.Cookie.Domain)
	}
	cld := cfg.Storage.Cloudinary
	if cld.CloudName != "demo" || cld.APIKey != "key" || cld.APISecret != "secret" {
		t.Errorf("图床凭据未读取环境变量: %+v", cld)
	}
	if cld.Folder != "fyb-payments" || cfg.Server.Port != 5000 {
		t.Errorf("未设置的键应保留默认值: folder=%q port=%d", cld.Folder, cfg.Server.Port)
	}
}
