package stream

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// DefaultPublishTimeout bounds a publish when no timeout is given.
const DefaultPublishTimeout = time.Second

// ErrPublishTimeout is returned by MqttSink.Send when the broker has not
// acknowledged a frame in time. The frame is dropped.
var ErrPublishTimeout = errors.New("publish timed out")

// MqttSink publishes frames to an ledrx device.
type MqttSink struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// NewMqttSink creates a sink publishing to topic. Send waits at most timeout
// for each publish; a non-positive timeout uses DefaultPublishTimeout.
func NewMqttSink(client mqtt.Client, topic string, timeout time.Duration) *MqttSink {
	s := new(MqttSink)
	s.client = client
	s.topic = topic
	s.timeout = timeout
	if s.timeout <= 0 {
		s.timeout = DefaultPublishTimeout
	}
	return s
}

// Send publishes f as binary.
func (s *MqttSink) Send(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "marshal frame")
	}
	token := s.client.Publish(s.topic, 2, false, b)
	if !token.WaitTimeout(s.timeout) {
		return errors.Wrapf(ErrPublishTimeout, "publish to %s after %v", s.topic, s.timeout)
	}
	return errors.Wrap(token.Error(), "publish frame")
}

// DecodeCommand parses a JSON command payload.
func DecodeCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return cmd, errors.Wrap(err, "decode command")
	}
	if cmd.Animation == "" || cmd.Name == "" {
		return cmd, errors.Errorf("command needs animation and command fields: %s", payload)
	}
	return cmd, nil
}

func (s *Streamer) handleCommandMessage(client mqtt.Client, msg mqtt.Message) {
	cmd, err := DecodeCommand(msg.Payload())
	if err != nil {
		log.Printf("Received bad command on %s: %v", msg.Topic(), err)
		return
	}
	if err := s.Enqueue(cmd); err != nil {
		log.Printf("Dropped command from %s: %v", msg.Topic(), err)
	}
}

// SubscribeCommands queues commands published to topic.
func (s *Streamer) SubscribeCommands(client mqtt.Client, topic string) error {
	token := client.Subscribe(topic, 0, s.handleCommandMessage)
	token.Wait()
	return errors.Wrapf(token.Error(), "subscribe %s", topic)
}
