package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack-backend/internal/config"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	Configure(log, config.LoggerConfig{Level: "debug", Format: "json"}, &buf)

	log.WithField("portfolio_id", "p1").Debug("report built")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report built", entry["msg"])
	assert.Equal(t, "p1", entry["portfolio_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestConfigure_TextAndInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	Configure(log, config.LoggerConfig{Level: "loud", Format: "text"}, &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.Debug("hidden")
	log.Info("visible")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=visible")
}
