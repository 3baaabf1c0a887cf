package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ordertracking/internal/adapters/in/ws"
	"ordertracking/internal/adapters/out/kafka"
	"ordertracking/internal/adapters/out/notifier"
	"ordertracking/internal/core/application/notifications"
	"ordertracking/internal/jobs"
	"ordertracking/internal/telemetry"
)

// Notifier transports selectable through NOTIFIER.
const (
	NotifierLog      = "log"
	NotifierEmail    = "email"
	NotifierRabbitMQ = "rabbitmq"
)

type Config struct {
	ServiceName     string
	ServiceVersion  string
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	MigrateOnStart bool

	KafkaHost               string
	KafkaStatusChangedTopic string

	Notifier                string
	EmailServiceURL         string
	RabbitMQURL             string
	RabbitMQExchange        string
	RabbitMQRoutingKey      string
	NotificationTimeout     time.Duration
	NotificationMaxInFlight int64
	PlaceholderSuffixes     []string

	NormalSurchargeCents    int64
	ExpressSurchargeCents   int64
	ScheduledSurchargeCents int64

	TracingEnabled bool
	OTLPEndpoint   string

	WSOutboxSize     int
	WSPingPeriod     time.Duration
	WSPongWait       time.Duration
	WSAllowedOrigins []string

	SweepSchedule string
}

// LoadConfig reads the configuration through getenv. Unset optional values
// take their defaults; malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}
	wsDefaults := ws.DefaultConfig()

	cfg := Config{
		ServiceName:     r.getString("SERVICE_NAME", "ordertracking"),
		ServiceVersion:  r.getString("SERVICE_VERSION", "dev"),
		HTTPPort:        r.getString("HTTP_PORT", "8080"),
		ShutdownTimeout: r.getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		DBHost:         r.getString("DB_HOST", "localhost"),
		DBPort:         r.getString("DB_PORT", "5432"),
		DBUser:         r.getString("DB_USER", "postgres"),
		DBPassword:     r.getString("DB_PASSWORD", ""),
		DBName:         r.getString("DB_NAME", "ordertracking"),
		DBSslMode:      r.getString("DB_SSLMODE", "disable"),
		DBMaxOpenConns: r.getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns: r.getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime: r.getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		MigrateOnStart: r.getBool("DB_MIGRATE_ON_START", true),

		KafkaHost:               r.getString("KAFKA_HOST", ""),
		KafkaStatusChangedTopic: r.getString("KAFKA_ORDER_STATUS_CHANGED_TOPIC", kafka.DefaultStatusChangedTopic),

		Notifier:                strings.ToLower(r.getString("NOTIFIER", NotifierLog)),
		EmailServiceURL:         r.getString("EMAIL_SERVICE_URL", ""),
		RabbitMQURL:             r.getString("RABBITMQ_URL", ""),
		RabbitMQExchange:        r.getString("RABBITMQ_EXCHANGE", notifier.DefaultNotificationsExchange),
		RabbitMQRoutingKey:      r.getString("RABBITMQ_ROUTING_KEY", notifier.DefaultNotificationsRouting),
		NotificationTimeout:     r.getDuration("NOTIFICATION_TIMEOUT", notifications.DefaultTimeout),
		NotificationMaxInFlight: int64(r.getInt("NOTIFICATION_MAX_IN_FLIGHT", notifications.DefaultMaxInFlight)),
		PlaceholderSuffixes:     r.getList("PLACEHOLDER_EMAIL_SUFFIXES", notifications.DefaultPlaceholderSuffixes),

		NormalSurchargeCents:    int64(r.getInt("SURCHARGE_NORMAL_CENTS", 0)),
		ExpressSurchargeCents:   int64(r.getInt("SURCHARGE_EXPRESS_CENTS", 500)),
		ScheduledSurchargeCents: int64(r.getInt("SURCHARGE_SCHEDULED_CENTS", 0)),

		TracingEnabled: r.getBool("TRACING_ENABLED", false),
		OTLPEndpoint:   r.getString("OTEL_EXPORTER_OTLP_ENDPOINT", telemetry.DefaultOTLPEndpoint),

		WSOutboxSize:     r.getInt("WS_OUTBOX_SIZE", wsDefaults.OutboxSize),
		WSPingPeriod:     r.getDuration("WS_PING_PERIOD", wsDefaults.PingPeriod),
		WSPongWait:       r.getDuration("WS_PONG_WAIT", wsDefaults.PongWait),
		WSAllowedOrigins: r.getList("WS_ALLOWED_ORIGINS", nil),

		SweepSchedule: r.getString("SUBSCRIBER_SWEEP_SCHEDULE", jobs.DefaultSweepSchedule),
	}

	if err := errors.Join(append(r.errs, cfg.validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	switch c.Notifier {
	case NotifierLog:
	case NotifierEmail:
		if c.EmailServiceURL == "" {
			errs = append(errs, errors.New("EMAIL_SERVICE_URL is required when NOTIFIER=email"))
		}
	case NotifierRabbitMQ:
		if c.RabbitMQURL == "" {
			errs = append(errs, errors.New("RABBITMQ_URL is required when NOTIFIER=rabbitmq"))
		}
	default:
		errs = append(errs, fmt.Errorf("NOTIFIER must be one of log, email, rabbitmq, got %q", c.Notifier))
	}

	if c.WSPingPeriod >= c.WSPongWait {
		errs = append(errs, errors.New("WS_PING_PERIOD must be shorter than WS_PONG_WAIT"))
	}
	for name, cents := range map[string]int64{
		"SURCHARGE_NORMAL_CENTS":    c.NormalSurchargeCents,
		"SURCHARGE_EXPRESS_CENTS":   c.ExpressSurchargeCents,
		"SURCHARGE_SCHEDULED_CENTS": c.ScheduledSurchargeCents,
	} {
		if cents < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	return errors.Join(errs...)
}

// DSN is the lib/pq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// PostgresURL is the URL form of DSN, as golang-migrate expects it.
func (c Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

func (c Config) KafkaBrokers() []string {
	return splitList(c.KafkaHost)
}

func (c Config) WebsocketConfig() ws.Config {
	cfg := ws.DefaultConfig()
	cfg.OutboxSize = c.WSOutboxSize
	cfg.PingPeriod = c.WSPingPeriod
	cfg.PongWait = c.WSPongWait
	cfg.AllowedOrigins = c.WSAllowedOrigins
	return cfg
}

func (c Config) NotificationConfig() notifications.Config {
	return notifications.Config{
		Timeout:             c.NotificationTimeout,
		MaxInFlight:         c.NotificationMaxInFlight,
		PlaceholderSuffixes: c.PlaceholderSuffixes,
	}
}

func (c Config) PoolConfig() telemetry.PoolConfig {
	return telemetry.PoolConfig{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnLifetime,
	}
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) getString(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) getInt(key string, fallback int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (r *envReader) getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (r *envReader) getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (r *envReader) getList(key string, fallback []string) []string {
	if items := splitList(r.getenv(key)); len(items) > 0 {
		return items
	}
	return fallback
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
