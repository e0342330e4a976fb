package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/raywall/fast-sns/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Run("Default Level Info", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Enabled: true, Level: "DEBUG"})
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := ConfigureTo(&buf, config.LoggingConf{Enabled: false})
		logger.Info().Msg("teste")
		assert.Zero(t, buf.Len())
	})
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	base := ConfigureTo(&buf, config.LoggingConf{Enabled: true, Level: "info", Format: "json"})

	Component(base, "sns-client").Info().Str("operation", "Publish").Msg("ok")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "sns-client", line["component"])
	assert.Equal(t, "Publish", line["operation"])
	assert.Contains(t, line, "time")
}
