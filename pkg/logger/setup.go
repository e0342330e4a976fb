package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/raywall/fast-sns/pkg/config"
	"github.com/rs/zerolog"
)

// Configure inicializa o logger global baseando-se na configuração, escrevendo em stdout.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return ConfigureTo(os.Stdout, cfg)
}

// ConfigureTo é igual a Configure, mas escreve em w.
func ConfigureTo(w io.Writer, cfg config.LoggingConf) zerolog.Logger {
	// Nível de log (default: info)
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console para uso local
	output := w
	if !cfg.Enabled {
		output = io.Discard
	} else if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// Component deriva um logger com o campo "component", no formato esperado por sns.Options.
func Component(base zerolog.Logger, name string) *zerolog.Logger {
	l := base.With().Str("component", name).Logger()
	return &l
}
