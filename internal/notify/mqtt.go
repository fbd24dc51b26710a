package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// Notifier tells the bot runner that a workspace's schedule changed so
// it can reload its timers.
type Notifier interface {
	ScheduleChanged(workspace string) error
}

// NoopNotifier is used when no broker is configured.
type NoopNotifier struct{}

func (NoopNotifier) ScheduleChanged(string) error { return nil }

type reloadEvent struct {
	Workspace string `json:"workspace"`
	ChangedAt string `json:"changed_at"`
}

// MQTTNotifier publishes reload events to the schedule topic.
type MQTTNotifier struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

func NewMQTTNotifier(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}
	return &MQTTNotifier{client: client}, nil
}

func (n *MQTTNotifier) ScheduleChanged(workspace string) error {
	payload, err := json.Marshal(reloadEvent{
		Workspace: workspace,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("chulseok/%s/schedule", workspace)
	token := n.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish schedule reload for %s: %v", workspace, token.Error())
	}
	log.Debug().Str("workspace", workspace).Msg("published schedule reload")
	return nil
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
