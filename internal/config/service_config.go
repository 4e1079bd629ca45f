package config

import (
	"time"

	"github.com/chainpocket/wallet-core/internal/util"
)

// ModuleName is the canonical name of this module.
const ModuleName = "wallet-core"

// EchoServer holds the HTTP server settings.
type EchoServer struct {
	ListenAddress         string
	HideInternalServerErr bool
}

// Logger holds the logging settings.
type Logger struct {
	Level              string
	PrettyPrintConsole bool
}

// Chain holds the RPC gateway settings.
type Chain struct {
	RequestTimeout time.Duration
}

// Explorer holds the block-explorer API settings.
type Explorer struct {
	APIKey         string
	RequestTimeout time.Duration
}

// Storage holds the local persistence settings.
type Storage struct {
	DatabasePath   string
	KeyringService string
}

// Server is the full service configuration, read once from ENV.
type Server struct {
	Echo     EchoServer
	Logger   Logger
	Chain    Chain
	Explorer Explorer
	Storage  Storage
}

// DefaultServiceConfigFromEnv returns the server config as parsed from
// environment variables, applying defaults for anything unset.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress:         util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8077"),
			HideInternalServerErr: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
		},
		Logger: Logger{
			Level:              util.GetEnv("SERVER_LOGGER_LEVEL", "info"),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Chain: Chain{
			RequestTimeout: time.Second * time.Duration(util.GetEnvAsInt("SERVER_CHAIN_REQUEST_TIMEOUT_SEC", 10)),
		},
		Explorer: Explorer{
			APIKey:         util.GetEnv("SERVER_EXPLORER_API_KEY", ""),
			RequestTimeout: time.Second * time.Duration(util.GetEnvAsInt("SERVER_EXPLORER_REQUEST_TIMEOUT_SEC", 10)),
		},
		Storage: Storage{
			DatabasePath:   util.GetEnv("SERVER_STORAGE_DATABASE_PATH", "wallet-core.db"),
			KeyringService: util.GetEnv("SERVER_STORAGE_KEYRING_SERVICE", "com.chainpocket.wallet-core"),
		},
	}
}
