package main

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// mqttPublisher je ta část mqtt.Client, kterou log writer potřebuje.
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MqttLogWriter implementuje io.Writer. Každý zápis (jeden JSON záznam slogu)
// se odešle do MQTT topicu logs/<služba>.
type MqttLogWriter struct {
	client mqttPublisher
	topic  string
}

// NewMqttLogWriter vytvoří writer pro danou službu, např. topic "logs/solar-web".
func NewMqttLogWriter(client mqttPublisher, serviceName string) *MqttLogWriter {
	return &MqttLogWriter{
		client: client,
		topic:  fmt.Sprintf("logs/%s", serviceName),
	}
}

// Write odešle kopii p bez čekání na potvrzení (fire-and-forget, QoS 0).
func (w *MqttLogWriter) Write(p []byte) (n int, err error) {
	// slog buffer po návratu znovu použije, proto kopie
	payload := make([]byte, len(p))
	copy(payload, p)

	w.client.Publish(w.topic, 0, false, payload)
	return len(p), nil
}
