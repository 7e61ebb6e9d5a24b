// Package config 提供应用程序配置加载功能
// 基于viper实现，支持配置文件和环境变量两种来源
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 应用程序总配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Site     SiteConfig     `mapstructure:"site"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Port         int    `mapstructure:"port"`           // HTTP监听端口
	HTTPSPort    int    `mapstructure:"https_port"`     // HTTPS监听端口
	ReadTimeout  int    `mapstructure:"read_timeout"`   // 读超时（秒）
	WriteTimeout int    `mapstructure:"write_timeout"`  // 写超时（秒）
	EnableHTTPS  bool   `mapstructure:"enable_https"`   // 是否启用HTTPS
	EnableHTTP2  bool   `mapstructure:"enable_http2"`   // 是否启用HTTP/2（需HTTPS）
	TLSCertFile  string `mapstructure:"tls_cert_file"`  // TLS证书路径
	TLSKeyFile   string `mapstructure:"tls_key_file"`   // TLS私钥路径
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // 数据库驱动，目前支持sqlite
	DSN             string `mapstructure:"dsn"`               // 数据源名称
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // 最大打开连接数
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（秒）
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`     // 日志级别 (debug, info, warn, error)
	Format   string `mapstructure:"format"`    // 日志格式 (json, text)
	Output   string `mapstructure:"output"`    // 输出方式 (console, file, both)
	FilePath string `mapstructure:"file_path"` // 日志文件路径
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`      // JWT签名密钥
	TokenTTLHours int    `mapstructure:"token_ttl_hours"` // Token有效期（小时）
	BcryptCost    int    `mapstructure:"bcrypt_cost"`     // bcrypt哈希成本
}

// SiteConfig 站点信息配置
// 用于公开页面和RSS订阅源的元数据
type SiteConfig struct {
	Name    string `mapstructure:"name"`     // 站点名称
	BaseURL string `mapstructure:"base_url"` // 站点根地址
	Author  string `mapstructure:"author"`   // 站点作者
}

// Load 加载应用程序配置
// 优先从当前目录的config.yaml读取，环境变量（LIFENOTE_前缀）可覆盖配置项
// 返回:
//
//	*Config - 配置对象
//	error - 加载失败时的错误信息
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("LIFENOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// 配置文件缺失时退回默认值，其它读取错误需要上报
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 设置默认配置项
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.https_port", 8443)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.enable_https", false)
	v.SetDefault("server.enable_http2", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "lifenote.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file_path", "logs/app.log")

	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_ttl_hours", 72)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("site.name", "Lifenote")
	v.SetDefault("site.base_url", "http://localhost:8080")
	v.SetDefault("site.author", "admin")
}
