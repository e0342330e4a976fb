package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// ValidateClient realiza validações estruturais (tags) e semânticas (lógica) do client.
func (cv *ConfigValidator) ValidateClient(cfg *ClientConf) error {
	if err := cv.structural(cfg); err != nil {
		return err
	}
	if err := cv.clientSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}
	return nil
}

// ValidateEmulator realiza validações estruturais e semânticas do emulador.
func (cv *ConfigValidator) ValidateEmulator(cfg *EmulatorConf) error {
	if err := cv.structural(cfg); err != nil {
		return err
	}
	if err := cv.emulatorSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) structural(cfg interface{}) error {
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) clientSemantics(cfg *ClientConf) error {
	// 1. Origem das credenciais é exclusiva
	creds := cfg.Credentials
	sources := 0
	if creds.AccessKeyID != "" {
		sources++
	}
	if creds.SecretID != "" {
		sources++
	}
	if creds.Anonymous {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("credenciais ambíguas: use apenas uma entre chaves estáticas, secret_id ou anonymous")
	}
	if creds.SessionToken != "" && creds.AccessKeyID == "" {
		return fmt.Errorf("session_token exige access_key_id e secret_access_key")
	}

	// 2. Endpoint explícito precisa ser uma URL utilizável
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		u, err := url.Parse(endpoint)
		if err != nil || u.Host == "" {
			return fmt.Errorf("endpoint inválido: '%s'", cfg.Endpoint)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint com esquema não suportado: '%s'", u.Scheme)
		}
	}

	// 3. Backoff máximo não pode ser menor que o atraso base
	if cfg.Retry.MaxBackoff > 0 && cfg.Retry.BaseDelay > cfg.Retry.MaxBackoff {
		return fmt.Errorf("retry.base_delay (%s) maior que retry.max_backoff (%s)", cfg.Retry.BaseDelay, cfg.Retry.MaxBackoff)
	}
	return nil
}

func (cv *ConfigValidator) emulatorSemantics(cfg *EmulatorConf) error {
	// 1. Backend de estado com seus parâmetros obrigatórios
	switch cfg.Store.Type {
	case "redis":
		if cfg.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr é obrigatório quando store.type é 'redis'")
		}
	case "dynamodb":
		if cfg.Store.DynamoDB.Table == "" {
			return fmt.Errorf("store.dynamodb.table é obrigatório quando store.type é 'dynamodb'")
		}
	case "postgres":
		if cfg.Store.Postgres.DSN == "" {
			return fmt.Errorf("store.postgres.dsn é obrigatório quando store.type é 'postgres'")
		}
	}

	// 2. Unicidade de IDs das falhas
	seenIDs := make(map[string]bool)
	for _, f := range cfg.Faults {
		if seenIDs[f.ID] {
			return fmt.Errorf("fault ID duplicado detectado: '%s'", f.ID)
		}
		seenIDs[f.ID] = true
	}
	return nil
}
