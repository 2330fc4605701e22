package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) (*Collector, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "logs")
	c, err := NewCollector(dir, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c, dir
}

func TestAppendWritesLinePerRecord(t *testing.T) {
	c, dir := newTestCollector(t)

	require.NoError(t, c.Append("logs/solar-web", []byte(`{"msg":"a"}`)))
	require.NoError(t, c.Append("logs/solar-web", []byte(`{"msg":"b"}`+"\n")))

	data, err := os.ReadFile(filepath.Join(dir, "solar-web.log"))
	require.NoError(t, err)
	assert.Equal(t, "{\"msg\":\"a\"}\n{\"msg\":\"b\"}\n", string(data))
}

func TestAppendSeparatesServices(t *testing.T) {
	c, dir := newTestCollector(t)

	require.NoError(t, c.Append("logs/solar-web/info", []byte("x")))
	require.NoError(t, c.Append("logs/predict-cli", []byte("y")))

	assert.FileExists(t, filepath.Join(dir, "solar-web.log"))
	assert.FileExists(t, filepath.Join(dir, "predict-cli.log"))
}

func TestServiceFromTopic(t *testing.T) {
	cases := []struct {
		topic   string
		service string
		ok      bool
	}{
		{"logs/solar-web", "solar-web", true},
		{"logs/solar-web/error", "solar-web", true},
		{"logs", "", false},
		{"logs/", "", false},
		{"metrics/solar-web", "", false},
		{"logs/..", "", false},
	}
	for _, tc := range cases {
		got, err := serviceFromTopic(tc.topic)
		if tc.ok {
			require.NoError(t, err, tc.topic)
			assert.Equal(t, tc.service, got)
		} else {
			assert.ErrorIs(t, err, errBadTopic, tc.topic)
		}
	}
}
