package main

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/client"
	"github.com/codexero/backend/pkg/api/pinata"
	"github.com/codexero/backend/pkg/api/telegram"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/logger"
	"github.com/codexero/backend/pkg/redis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (s *srv) loadConfig() {
	s.cfg = config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", ""),
			Key:  getEnv("SERVER_KEY", ""),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "codexero"),
			User:     getEnv("MYSQL_USER", "codexero"),
			Password: getEnv("MYSQL_PASSWORD", "codexero"),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token-secret"),
				Expiration: getEnvDuration("TOKEN_EXPIRATION", 24*time.Hour),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		TwitterProxy: config.TwitterProxyConfigs{
			Endpoint: getEnv("TWITTER_PROXY_ENDPOINT", "https://twitter154.p.rapidapi.com"),
			APIKey:   getEnv("TWITTER_PROXY_API_KEY", ""),
			APIHost:  getEnv("TWITTER_PROXY_API_HOST", "twitter154.p.rapidapi.com"),
		},
		Telegram: config.TelegramConfigs{
			BotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChannelID: getEnv("TELEGRAM_CHANNEL_ID", ""),
		},
		Pinata: config.PinataConfigs{
			Token: getEnv("PINATA_TOKEN", ""),
		},
		Verification: config.VerificationConfigs{
			MaxFollowingPages:  getEnvInt("MAX_FOLLOWING_PAGES", 20),
			FollowingPageLimit: getEnvInt("FOLLOWING_PAGE_LIMIT", 100),
			PostFetchLimit:     getEnvInt("POST_FETCH_LIMIT", 50),
			PostScanLimit:      getEnvInt("POST_SCAN_LIMIT", 20),
			MaxPollAttempts:    getEnvInt("MAX_POLL_ATTEMPTS", 20),
			PollInterval:       getEnvDuration("POLL_INTERVAL", 3*time.Second),
			ReclaimDelay:       getEnvDuration("RECLAIM_DELAY", 5*time.Minute),
		},
		Contract: config.ContractConfigs{
			Address:         getEnv("CONTRACT_ADDRESS", ""),
			OwnerPrivateKey: getEnv("CONTRACT_OWNER_PRIVATE_KEY", ""),
		},
	}

	chainPath := getEnv("CHAIN_CONFIG", "chain.toml")
	if _, err := toml.DecodeFile(chainPath, &s.cfg.Chain); err != nil {
		panic(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.cfg.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	if s.cfg.Redis.Addr == "" {
		s.logger.Infof("No redis configured, reclaim cache disabled")
		return
	}

	s.redisClient = redis.NewClient(s.cfg.Redis.Addr)
}

func (s *srv) loadEndpoints() {
	s.twitterEndpoint = twitterproxy.New(s.cfg.TwitterProxy, s.cfg.Verification)
	s.telegramEndpoint = telegram.New(s.cfg.Telegram)
	s.pinataEndpoint = pinata.New(s.cfg.Pinata)

	var err error
	s.mintContract, err = client.NewMintContractCaller(s.cfg.Chain, s.cfg.Contract)
	if err != nil {
		panic(err)
	}
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getEnvInt(key string, def int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}
