package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr            string
	Port                  string
	DatabasePath          string
	SessionSecret         string
	GinMode               string
	BackendURL            string
	AdminAPIToken         string
	SuperRootUserName     string
	SuperRootPassword     string
	SiteBaseURL           string
	LogLevel              string
	LogFormat             string
	ResendAPIKey          string
	EmailFrom             string
	EmailFromName         string
	EmailTestMode         bool
	WaitlistRatePerMinute int
	CORSOrigins           []string
	MetricsAllowedIPs     string
	TrustedProxies        []string
}

var defaults = map[string]interface{}{
	"port":                     "8080",
	"database_path":            "risegum.db",
	"session_secret":           "risegum-dev-secret",
	"gin_mode":                 "release",
	"site_base_url":            "https://risegum.in",
	"log_level":                "info",
	"log_format":               "json",
	"email_from":               "hello@risegum.in",
	"email_from_name":          "Rise Gum",
	"email_test_mode":          true,
	"waitlist_rate_per_minute": 10,
	"cors_origins":             "*",
}

// Bind 为 viper 注册默认值与环境变量映射，命令行 flag 会在此之后覆盖。
func Bind(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// NewViper 读取 .env 后返回已绑定默认值与环境变量的 viper 实例。
func NewViper() *viper.Viper {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	v := viper.New()
	Bind(v)
	return v
}

// Load 读取 .env 与环境变量，并为缺失项提供安全的默认值。
func Load() AppConfig {
	return FromViper(NewViper())
}

// FromViper 将 viper 中的值整理为 AppConfig。
func FromViper(v *viper.Viper) AppConfig {
	port := trimmed(v, "port")
	if port == "" {
		port = "8080"
	}

	listenAddr := trimmed(v, "listen_addr")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := trimmed(v, "database_path")
	if databasePath == "" {
		databasePath = "risegum.db"
	}

	sessionSecret := trimmed(v, "session_secret")
	if sessionSecret == "" {
		sessionSecret = "risegum-dev-secret"
	}

	ginMode := trimmed(v, "gin_mode")
	if ginMode == "" {
		ginMode = "release"
	}

	// 未配置后端地址时，落地页直接调用本进程提供的 /api。
	backendURL := strings.TrimRight(trimmed(v, "backend_url"), "/")
	if backendURL == "" {
		backendURL = "http://127.0.0.1:" + port
	}

	siteBaseURL := strings.TrimRight(trimmed(v, "site_base_url"), "/")
	if siteBaseURL == "" {
		siteBaseURL = "https://risegum.in"
	}

	rate := v.GetInt("waitlist_rate_per_minute")
	if rate < 0 {
		rate = 0
	}

	var origins []string
	for _, origin := range splitList(trimmed(v, "cors_origins")) {
		if origin = strings.TrimRight(origin, "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return AppConfig{
		ListenAddr:            listenAddr,
		Port:                  port,
		DatabasePath:          databasePath,
		SessionSecret:         sessionSecret,
		GinMode:               ginMode,
		BackendURL:            backendURL,
		AdminAPIToken:         trimmed(v, "admin_api_token"),
		SuperRootUserName:     trimmed(v, "super_root_user_name"),
		SuperRootPassword:     trimmed(v, "super_root_password"),
		SiteBaseURL:           siteBaseURL,
		LogLevel:              strings.ToLower(trimmed(v, "log_level")),
		LogFormat:             strings.ToLower(trimmed(v, "log_format")),
		ResendAPIKey:          trimmed(v, "resend_api_key"),
		EmailFrom:             trimmed(v, "email_from"),
		EmailFromName:         trimmed(v, "email_from_name"),
		EmailTestMode:         v.GetBool("email_test_mode"),
		WaitlistRatePerMinute: rate,
		CORSOrigins:           origins,
		MetricsAllowedIPs:     trimmed(v, "metrics_allowed_ips"),
		TrustedProxies:        splitList(trimmed(v, "trusted_proxies")),
	}
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
