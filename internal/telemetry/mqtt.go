// Package telemetry forwards the oven's event stream to an MQTT broker,
// satisfying events.Sink. Grounded on the teacher's own publish-subscribe
// instincts (internal/handlers/websockets.go's fan-out loop) but using
// github.com/eclipse/paho.mqtt.golang since this is an outbound broker
// client rather than an inbound websocket server.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"ovencontroller/internal/models"
)

// Config describes the broker connection and topic prefix.
type Config struct {
	BrokerURL string
	ClientID  string
	Topic     string // events are published to "<Topic>/<event type lowercased>"
}

// Publisher is an events.Sink that forwards every event to MQTT as JSON.
type Publisher struct {
	client mqtt.Client
	topic  string
	log    *zap.SugaredLogger
}

// Connect opens a connection to the configured broker.
func Connect(cfg Config, log *zap.SugaredLogger) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker %q: %w", cfg.BrokerURL, token.Error())
	}
	return &Publisher{client: client, topic: cfg.Topic, log: log}, nil
}

// Emit publishes the event as a retained-false JSON message at QoS 0 under
// "<topic>/<type>".
func (p *Publisher) Emit(e models.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		if p.log != nil {
			p.log.Errorw("telemetry_marshal_failed", "err", err)
		}
		return
	}
	topic := fmt.Sprintf("%s/%s", p.topic, lower(e.Type))
	token := p.client.Publish(topic, 0, false, payload)
	if p.log != nil && token.WaitTimeout(time.Second) && token.Error() != nil {
		p.log.Errorw("telemetry_publish_failed", "topic", topic, "err", token.Error())
	}
}

// Close disconnects from the broker, waiting up to 250ms for in-flight
// publishes to drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
