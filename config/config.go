package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTP struct {
	Addr              string        `default:":8081" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s" envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s" envconfig:"IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"GRACEFUL_TIMEOUT"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"ENABLED"`
	ServiceName string  `default:"orderboard" envconfig:"SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"SAMPLE_RATIO"`
}

// Backend — REST-адрес источника заказов (paged + delta listing).
type Backend struct {
	BaseURL        string        `default:"http://localhost:8080" envconfig:"BASE_URL"`
	PageSize       int           `default:"10" envconfig:"PAGE_SIZE"`
	RequestTimeout time.Duration `default:"10s" envconfig:"REQUEST_TIMEOUT"`
}

// Realtime — push-канал заказов.
type Realtime struct {
	URL              string        `default:"ws://localhost:8080/ws" envconfig:"URL"`
	ReconnectDelay   time.Duration `default:"5s" envconfig:"RECONNECT_DELAY"`
	HandshakeTimeout time.Duration `default:"10s" envconfig:"HANDSHAKE_TIMEOUT"`
}

// Cache — локальный персистентный кэш коллекции.
type Cache struct {
	Path      string        `default:"orderboard.db" envconfig:"PATH"`
	Freshness time.Duration `default:"5m" envconfig:"FRESHNESS"`
	Capacity  int           `default:"100" envconfig:"CAPACITY"`
}

// Engine — параметры движка синхронизации.
type Engine struct {
	CatchUpInterval time.Duration `default:"60s" envconfig:"CATCHUP_INTERVAL"`
}

type Connectivity struct {
	ProbeInterval time.Duration `default:"15s" envconfig:"PROBE_INTERVAL"`
}

// Server — адрес бэкенда-симулятора (cmd/orderserver).
type Server struct {
	Addr string `default:":8080" envconfig:"ADDR"`
}

type Config struct {
	HTTP         HTTP
	Logger       Logger
	Tracing      Tracing
	Backend      Backend
	Realtime     Realtime
	Cache        Cache
	Engine       Engine
	Connectivity Connectivity
	Server       Server
}

// Load — конфигурация с префиксом BOARD (BOARD_HTTP_ADDR и т.д.).
func Load() (Config, error) { return LoadWithPrefix("BOARD") }

// LoadWithPrefix — как Load, но с произвольным префиксом (удобно в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
