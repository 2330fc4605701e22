package main

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "PREDICTION_DELAY", "SESSION_TTL", "VALKEY_ADDR", "MQTT_BROKER", "MQTT_CLIENT_ID", "LOG_LEVEL", "API_RATE_LIMIT", "API_RATE_BURST"} {
		t.Setenv(k, "")
	}
	// prázdná hodnota se u řetězců bere tak, jak je; u čísel a dob padá na default
	cfg := LoadConfig()

	assert.Equal(t, 1500*time.Millisecond, cfg.PredictionDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5.0, cfg.APIRateLimit)
	assert.Equal(t, 10, cfg.APIRateBurst)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PREDICTION_DELAY", "250ms")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("VALKEY_ADDR", "localhost:6379")
	t.Setenv("MQTT_CLIENT_ID", "solar-web-2")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("API_RATE_LIMIT", "0.5")
	t.Setenv("API_RATE_BURST", "3")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 250*time.Millisecond, cfg.PredictionDelay)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.ValkeyAddr)
	assert.Equal(t, "solar-web-2", cfg.MQTTClientID)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 0.5, cfg.APIRateLimit)
	assert.Equal(t, 3, cfg.APIRateBurst)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PREDICTION_DELAY", "soon")
	t.Setenv("SESSION_TTL", "-1m")
	t.Setenv("API_RATE_LIMIT", "fast")
	t.Setenv("API_RATE_BURST", "0")

	cfg := LoadConfig()

	assert.Equal(t, 1500*time.Millisecond, cfg.PredictionDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5.0, cfg.APIRateLimit)
	assert.Equal(t, 10, cfg.APIRateBurst)
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, Config{LogLevel: in}.SlogLevel(), in)
	}
}

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakePublisher) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return nil
}

func TestMqttLogWriterPublishesCopy(t *testing.T) {
	pub := &fakePublisher{}
	w := NewMqttLogWriter(pub, "solar-web")

	buf := []byte(`{"msg":"hello"}`)
	n, err := w.Write(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	// writer nesmí sdílet buffer volajícího
	buf[2] = 'X'

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "logs/solar-web", pub.msgs[0].topic)
	assert.Equal(t, byte(0), pub.msgs[0].qos)
	assert.Equal(t, `{"msg":"hello"}`, string(pub.msgs[0].payload))
}

func TestMqttLogWriterWithSlog(t *testing.T) {
	pub := &fakePublisher{}
	logger := slog.New(slog.NewJSONHandler(NewMqttLogWriter(pub, "solar-web"), nil))

	logger.Info("Predikce přijata", "seq", 1)

	require.Len(t, pub.msgs, 1)
	assert.Contains(t, string(pub.msgs[0].payload), `"msg":"Predikce přijata"`)
	assert.Contains(t, string(pub.msgs[0].payload), `"seq":1`)
}
