package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer    ServerConfigs
	Database     DatabaseConfigs
	Auth         AuthConfigs
	Redis        RedisConfigs
	TwitterProxy TwitterProxyConfigs
	Telegram     TelegramConfigs
	Pinata       PinataConfigs
	Verification VerificationConfigs
	Chain        ChainConfig
	Contract     ContractConfigs
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

// TwitterProxyConfigs describes the third-party twitter proxy API. The key
// and host go into the proxy's authentication headers on every request.
type TwitterProxyConfigs struct {
	Endpoint string
	APIKey   string
	APIHost  string
}

type TelegramConfigs struct {
	BotToken  string
	ChannelID string
}

type PinataConfigs struct {
	Token string
}

type VerificationConfigs struct {
	// Follow check bounds.
	MaxFollowingPages  int
	FollowingPageLimit int

	// Post check bounds.
	PostFetchLimit  int
	PostScanLimit   int
	MaxPollAttempts int
	PollInterval    time.Duration

	// How long a passed verification stays cached before a user may re-run it.
	ReclaimDelay time.Duration
}

type ChainConfig struct {
	Chain string   `toml:"chain"`
	Rpcs  []string `toml:"rpcs"`

	UseEip1559 bool `toml:"use_eip_1559"`
}

type ContractConfigs struct {
	Address         string
	OwnerPrivateKey string
}
