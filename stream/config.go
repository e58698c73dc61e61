package stream

import (
	"github.com/pkg/errors"
)

// Config describes the stream output and its transports.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream   string `yaml:"stream"`
			Commands string `yaml:"commands"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Api struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
	Pixels    int     `yaml:"pixels"`
	FrameRate float64 `yaml:"frameRate"`
	Preview   bool    `yaml:"preview"`
	QueueSize int     `yaml:"queueSize"`
}

// DefaultConfig returns the settings used for anything left unset.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledtx"
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Commands = "home/xmastree/commands"
	c.Pixels = 500
	c.FrameRate = 30
	c.QueueSize = 64
	return c
}

// Validate checks the settings the streamer depends on.
func (c Config) Validate() error {
	if c.Pixels <= 0 || c.Pixels > MaxPixels {
		return errors.Errorf("pixels must be in 1..%d, got %d", MaxPixels, c.Pixels)
	}
	if !(c.FrameRate > 0) {
		return errors.Errorf("frameRate must be positive, got %v", c.FrameRate)
	}
	if c.QueueSize <= 0 {
		return errors.Errorf("queueSize must be positive, got %d", c.QueueSize)
	}
	return nil
}
