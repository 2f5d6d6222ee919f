package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("ORDER_TX_TIMEOUT", "")
	t.Setenv("ORDER_EVENTS_TOPIC", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 10*time.Second, cfg.OrderTxTimeout)
	assert.Equal(t, "order_events", cfg.OrderEventsTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ORDER_TX_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 3*time.Second, cfg.OrderTxTimeout)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []byte("s3cret"), cfg.JWTAccessSecret)
}

func TestEnvDurationDefault_Invalid(t *testing.T) {
	t.Setenv("ORDER_TX_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, EnvDurationDefault("ORDER_TX_TIMEOUT", time.Minute))

	t.Setenv("ORDER_TX_TIMEOUT", "-1s")
	assert.Equal(t, time.Minute, EnvDurationDefault("ORDER_TX_TIMEOUT", time.Minute))
}
