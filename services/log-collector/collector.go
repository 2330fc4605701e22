package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var errBadTopic = errors.New("topic neodpovídá tvaru logs/<služba>")

// Collector ukládá přijaté logovací záznamy do souboru podle služby.
type Collector struct {
	dir    string
	logger *slog.Logger

	// zápisy z callbacků paho mohou běžet souběžně
	mu sync.Mutex
}

// NewCollector připraví adresář a vrátí sběrač.
func NewCollector(dir string, logger *slog.Logger) (*Collector, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("nelze vytvořit adresář pro logy: %w", err)
	}
	return &Collector{dir: dir, logger: logger}, nil
}

// serviceFromTopic vrátí název služby z topicu "logs/<služba>[/...]".
func serviceFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 || parts[0] != "logs" || parts[1] == "" {
		return "", errBadTopic
	}
	// název jde do cesty k souboru
	if strings.ContainsAny(parts[1], `\.`) {
		return "", errBadTopic
	}
	return parts[1], nil
}

// Append připíše jeden záznam (řádek) do <dir>/<služba>.log.
func (c *Collector) Append(topic string, payload []byte) error {
	service, err := serviceFromTopic(topic)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(c.dir, service+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := strings.TrimRight(string(payload), "\n") + "\n"
	_, err = f.WriteString(line)
	return err
}

// HandleMessage je callback pro paho (SetDefaultPublishHandler).
func (c *Collector) HandleMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := c.Append(msg.Topic(), msg.Payload()); err != nil {
		c.logger.Warn("Záznam nelze uložit", "topic", msg.Topic(), "error", err)
	}
}
