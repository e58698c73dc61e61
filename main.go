package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/clock"
	"github.com/matt-g-everett/ledanim/preview"
	"github.com/matt-g-everett/ledanim/scene"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type config struct {
	Stream stream.Config `yaml:",inline"`
	Scene  scene.Config  `yaml:"scene"`
}

type app struct {
	Config   config
	Client   mqtt.Client
	Streamer *stream.Streamer
	Scene    *scene.Scene
}

func newApp() *app {
	a := new(app)
	a.Config.Stream = stream.DefaultConfig()
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	topic := a.Config.Stream.Mqtt.Topics.Commands
	if topic == "" {
		return
	}
	if err := a.Streamer.SubscribeCommands(client, topic); err != nil {
		log.Println(err)
	}
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&a.Config); err != nil {
		return errors.Wrapf(err, "decode %s", configPath)
	}
	return errors.Wrap(a.Config.Stream.Validate(), "config")
}

func (a *app) connect() error {
	cfg := a.Config.Stream.Mqtt
	if cfg.URL == "" {
		log.Println("No MQTT broker configured, frames are not published")
		return nil
	}

	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
	a.Streamer.AddSink(stream.NewMqttSink(a.Client, cfg.Topics.Stream, a.Streamer.Interval()))

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error(), "connect")
	}
	return nil
}

func run(configPath string, fixed bool) error {
	a := newApp()
	if err := a.readConfig(configPath); err != nil {
		return err
	}
	log.Printf("Config: %d pixels at %v fps, %d layers", a.Config.Stream.Pixels, a.Config.Stream.FrameRate, len(a.Config.Scene.Layers))

	var source clock.FrameSource = clock.NewWall()
	if fixed {
		source = clock.NewManual(1 / a.Config.Stream.FrameRate)
	}

	s, err := scene.New(a.Config.Scene, a.Config.Stream.Pixels, source)
	if err != nil {
		return errors.Wrap(err, "scene")
	}
	a.Scene = s
	a.Streamer = stream.NewStreamer(a.Config.Stream, s)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if a.Config.Stream.Preview {
		p, err := preview.NewScreen()
		if err != nil {
			return err
		}
		defer p.Close()
		a.Streamer.AddSink(p)
		go p.Events(cancel)
	}

	if err := a.connect(); err != nil {
		return err
	}
	if a.Client != nil {
		defer a.Client.Disconnect(250)
	}

	if addr := a.Config.Stream.Api.Listen; addr != "" {
		server := api.NewApi(a.Streamer, a.Scene)
		go func() {
			if err := server.Serve(addr); err != nil {
				log.Printf("api: %v", err)
			}
		}()
	}

	a.Streamer.Run(ctx)
	return nil
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	fixed := flag.Bool("fixed", false, "Advance animations by a fixed step per frame instead of wall time.")
	flag.Parse()

	if err := run(*configPath, *fixed); err != nil {
		log.Fatal(err)
	}
}
