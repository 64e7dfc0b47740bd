package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"video-stats-updater/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	YouTube     YouTube     `json:"youtube"`
	Render      Render      `json:"render"`
	Title       Title       `json:"title"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	RedisClient RedisClient `json:"redisClient"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type YouTube struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	// Endpoint overrides the API base URL (local fakes, proxies).
	Endpoint string `json:"endpoint"`
}

type Render struct {
	BackgroundPath  string `json:"backgroundPath"`
	FontPath        string `json:"fontPath"`
	CaptionFontPath string `json:"captionFontPath"`
	OutputPath      string `json:"outputPath"`
	CacheTTLSeconds int    `json:"cacheTTLSeconds"`
	Style           Style  `json:"style"`
}

// Style holds overrides for the thumbnail style; zero values keep defaults.
type Style struct {
	EmphasisColor     string   `json:"emphasisColor"`
	CaptionColor      string   `json:"captionColor"`
	OutlineColor      string   `json:"outlineColor"`
	Outline           *bool    `json:"outline"`
	OutlineWidth      float64  `json:"outlineWidth"`
	LabelSize         float64  `json:"labelSize"`
	CaptionSize       float64  `json:"captionSize"`
	LetterSpacing     float64  `json:"letterSpacing"`
	CaptionGap        float64  `json:"captionGap"`
	ViewsThreshold    int64    `json:"viewsThreshold"`
	LikesThreshold    int64    `json:"likesThreshold"`
	CommentsThreshold int64    `json:"commentsThreshold"`
	Captions          []string `json:"captions"`
}

type Title struct {
	Prefix string `json:"prefix"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	TopicID   string `json:"topicID"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

var C Config

func init() {
	Load()
}

// Load exports the env files, reads the config file and applies env
// overrides and defaults to C.
func Load() {
	if n := LoadEnvFromFile(EnvFiles...); n > 0 {
		logger.GetLogger().WithField("vars", n).Info("Loaded variables from env files")
	}
	LoadConfig()
	initApp(&C)
	initRender(&C)
	initIntegrations(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 2003
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 2003
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Info("App.SecretKey not set; ingress accepts unauthenticated pollers")
	}
}

func initRender(C *Config) {
	C.Render.BackgroundPath = getConfigValue(C.Render.BackgroundPath, "RENDER_BACKGROUND_PATH", "assets/background.png")
	C.Render.FontPath = getConfigValue(C.Render.FontPath, "RENDER_FONT_PATH", "")
	C.Render.CaptionFontPath = getConfigValue(C.Render.CaptionFontPath, "RENDER_CAPTION_FONT_PATH", "")
	C.Render.OutputPath = getConfigValue(C.Render.OutputPath, "RENDER_OUTPUT_PATH", "")
	if C.Render.CacheTTLSeconds <= 0 {
		C.Render.CacheTTLSeconds = 3600
	}
	C.Title.Prefix = getConfigValue(C.Title.Prefix, "TITLE_PREFIX", "This video has")
}

func initIntegrations(C *Config) {
	C.YouTube.ClientID = getConfigValue(C.YouTube.ClientID, "YOUTUBE_CLIENT_ID", "")
	C.YouTube.ClientSecret = getConfigValue(C.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET", "")
	C.YouTube.Endpoint = getConfigValue(C.YouTube.Endpoint, "YOUTUBE_ENDPOINT", "")
	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
	C.Pubsub.ProjectID = getConfigValue(C.Pubsub.ProjectID, "PUBSUB_PROJECT_ID", "")
	C.Pubsub.TopicID = getConfigValue(C.Pubsub.TopicID, "PUBSUB_TOPIC_ID", "video-stats-outcomes")
	C.ServiceBus.Namespace = getConfigValue(C.ServiceBus.Namespace, "SERVICEBUS_NAMESPACE", "")
	C.ServiceBus.Queue = getConfigValue(C.ServiceBus.Queue, "SERVICEBUS_QUEUE", "video-stats-outcomes")
}

// getConfigValue: environment variable first, then config value unless it is a placeholder, then default.
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
