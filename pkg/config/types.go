package config

import "time"

// ClientConf representa o arquivo de configuração do client SNS (snsctl e aplicações).
type ClientConf struct {
	Region         string          `yaml:"region" toml:"region" env:"SNS_REGION" envDefault:"us-east-1" validate:"required"`
	Endpoint       string          `yaml:"endpoint" toml:"endpoint" env:"SNS_ENDPOINT"`
	Credentials    CredentialsConf `yaml:"credentials" toml:"credentials"`
	MaxConnections int             `yaml:"max_connections" toml:"max_connections" env:"SNS_MAX_CONNECTIONS" validate:"gte=0"`
	ConnectTimeout time.Duration   `yaml:"connect_timeout" toml:"connect_timeout" env:"SNS_CONNECT_TIMEOUT" validate:"gte=0"`
	ReadTimeout    time.Duration   `yaml:"read_timeout" toml:"read_timeout" env:"SNS_READ_TIMEOUT" validate:"gte=0"`
	Retry          RetryConf       `yaml:"retry" toml:"retry"`
	Async          AsyncConf       `yaml:"async" toml:"async"`
	Logging        LoggingConf     `yaml:"logging" toml:"logging"`
	Metrics        MetricsConf     `yaml:"metrics" toml:"metrics"`
}

// CredentialsConf escolhe a origem das credenciais.
// Sem chaves, segredo ou anonymous, a cadeia padrão da AWS é usada.
type CredentialsConf struct {
	AccessKeyID     string        `yaml:"access_key_id" toml:"access_key_id" env:"SNS_ACCESS_KEY_ID" validate:"required_with=SecretAccessKey"`
	SecretAccessKey string        `yaml:"secret_access_key" toml:"secret_access_key" env:"SNS_SECRET_ACCESS_KEY" validate:"required_with=AccessKeyID"`
	SessionToken    string        `yaml:"session_token" toml:"session_token" env:"SNS_SESSION_TOKEN"`
	SecretID        string        `yaml:"secret_id" toml:"secret_id" env:"SNS_CREDENTIALS_SECRET"`
	SecretTTL       time.Duration `yaml:"secret_ttl" toml:"secret_ttl" env:"SNS_CREDENTIALS_SECRET_TTL"`
	Anonymous       bool          `yaml:"anonymous" toml:"anonymous" env:"SNS_ANONYMOUS"`
}

type RetryConf struct {
	MaxAttempts        int           `yaml:"max_attempts" toml:"max_attempts" env:"SNS_RETRY_MAX_ATTEMPTS" validate:"gte=0"`
	BaseDelay          time.Duration `yaml:"base_delay" toml:"base_delay" env:"SNS_RETRY_BASE_DELAY" validate:"gte=0"`
	ThrottledBaseDelay time.Duration `yaml:"throttled_base_delay" toml:"throttled_base_delay" validate:"gte=0"`
	MaxBackoff         time.Duration `yaml:"max_backoff" toml:"max_backoff" env:"SNS_RETRY_MAX_BACKOFF" validate:"gte=0"`
	Deadline           time.Duration `yaml:"deadline" toml:"deadline" env:"SNS_RETRY_DEADLINE" validate:"gte=0"`
	RetryableCodes     []string      `yaml:"retryable_codes" toml:"retryable_codes" env:"SNS_RETRY_CODES"`
}

type AsyncConf struct {
	Workers   int `yaml:"workers" toml:"workers" env:"SNS_ASYNC_WORKERS" validate:"gte=0"`
	QueueSize int `yaml:"queue_size" toml:"queue_size" env:"SNS_ASYNC_QUEUE_SIZE"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" env:"LOG_ENABLED" envDefault:"true"`
	Level   string `yaml:"level" toml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" toml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog    DatadogConf    `yaml:"datadog" toml:"datadog"`
	Prometheus PrometheusConf `yaml:"prometheus" toml:"prometheus"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" toml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// PrometheusConf expõe as métricas em Addr (ex: ":9090") na rota /metrics.
// Addr vazio registra as métricas sem abrir servidor próprio.
type PrometheusConf struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" env:"PROMETHEUS_ENABLED"`
	Addr      string `yaml:"addr" toml:"addr" env:"PROMETHEUS_ADDR"`
	Namespace string `yaml:"namespace" toml:"namespace"`
}

// EmulatorConf representa a configuração do emulador local de SNS.
// OptedOut pré-carrega números de telefone que recusaram SMS.
type EmulatorConf struct {
	Port      int          `yaml:"port" toml:"port" env:"EMULATOR_PORT" envDefault:"9911" validate:"required,gt=0,lt=65536"`
	Region    string       `yaml:"region" toml:"region" env:"EMULATOR_REGION" envDefault:"us-east-1" validate:"required"`
	AccountID string       `yaml:"account_id" toml:"account_id" env:"EMULATOR_ACCOUNT_ID" envDefault:"000000000000" validate:"required,numeric"`
	Store     StoreConf    `yaml:"store" toml:"store"`
	Delivery  DeliveryConf `yaml:"delivery" toml:"delivery"`
	Faults    []FaultConf  `yaml:"faults" toml:"faults" validate:"dive"`
	OptedOut  []string     `yaml:"opted_out" toml:"opted_out" env:"EMULATOR_OPTED_OUT"`
	Logging   LoggingConf  `yaml:"logging" toml:"logging"`
	Metrics   MetricsConf  `yaml:"metrics" toml:"metrics"`
}

type StoreConf struct {
	Type     string       `yaml:"type" toml:"type" env:"EMULATOR_STORE" envDefault:"memory" validate:"omitempty,oneof=memory redis dynamodb postgres"`
	Redis    RedisConf    `yaml:"redis" toml:"redis"`
	DynamoDB DynamoDBConf `yaml:"dynamodb" toml:"dynamodb"`
	Postgres PostgresConf `yaml:"postgres" toml:"postgres"`
}

type RedisConf struct {
	Addr     string `yaml:"addr" toml:"addr" env:"EMULATOR_REDIS_ADDR"`
	Password string `yaml:"password" toml:"password" env:"EMULATOR_REDIS_PASSWORD"`
	DB       int    `yaml:"db" toml:"db" env:"EMULATOR_REDIS_DB" validate:"gte=0"`
}

type DynamoDBConf struct {
	Table    string `yaml:"table" toml:"table" env:"EMULATOR_DYNAMODB_TABLE"`
	Region   string `yaml:"region" toml:"region" env:"EMULATOR_DYNAMODB_REGION"`
	Endpoint string `yaml:"endpoint" toml:"endpoint" env:"EMULATOR_DYNAMODB_ENDPOINT"`
}

// PostgresConf aponta o store para uma tabela (kind, id, data) no Postgres.
type PostgresConf struct {
	DSN   string `yaml:"dsn" toml:"dsn" env:"EMULATOR_POSTGRES_DSN"`
	Table string `yaml:"table" toml:"table" env:"EMULATOR_POSTGRES_TABLE"`
}

// DeliveryConf controla a entrega das mensagens publicadas aos assinantes.
type DeliveryConf struct {
	Enabled     bool          `yaml:"enabled" toml:"enabled" env:"EMULATOR_DELIVERY"`
	HTTPTimeout time.Duration `yaml:"http_timeout" toml:"http_timeout" env:"EMULATOR_HTTP_TIMEOUT" validate:"gte=0"`
	// SQSEndpoint aponta a entrega SQS para um endpoint local (ex: ElasticMQ).
	SQSEndpoint string `yaml:"sqs_endpoint" toml:"sqs_endpoint" env:"EMULATOR_SQS_ENDPOINT"`
}

// FaultConf descreve uma falha injetada quando Expr (CEL) é verdadeira.
//
// Variáveis disponíveis: action (string), params (map[string]string), calls (int).
// Times limita quantas vezes a falha ocorre (0 = sempre).
type FaultConf struct {
	ID      string `yaml:"id" toml:"id" validate:"required"`
	Expr    string `yaml:"expr" toml:"expr" validate:"required"`
	Code    string `yaml:"code" toml:"code" validate:"required"`
	Status  int    `yaml:"status" toml:"status" validate:"omitempty,gte=400,lt=600"`
	Message string `yaml:"message" toml:"message"`
	Times   int    `yaml:"times" toml:"times" validate:"gte=0"`
}
