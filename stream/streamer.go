package stream

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
)

// ErrQueueFull is returned by Enqueue when commands arrive faster than
// frames drain them.
var ErrQueueFull = errors.New("command queue full")

// A Sink receives every streamed frame.
type Sink interface {
	Send(f *Frame) error
}

// Streamer that streams RGB data frames to its sinks.
//
// Frame calculation and command dispatch run on the goroutine that calls Run,
// so the animation never sees concurrent access.
type Streamer struct {
	config    Config
	animation Animation
	sinks     []Sink
	commands  chan Command
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, animation Animation, sinks ...Sink) *Streamer {
	s := new(Streamer)
	s.config = config
	if !(s.config.FrameRate > 0) {
		log.Printf("Invalid frame rate %v, using %v", s.config.FrameRate, DefaultConfig().FrameRate)
		s.config.FrameRate = DefaultConfig().FrameRate
	}
	s.animation = animation
	s.sinks = sinks
	size := config.QueueSize
	if size <= 0 {
		size = 1
	}
	s.commands = make(chan Command, size)
	return s
}

// AddSink adds a sink for subsequent frames. It must be called before Run.
func (s *Streamer) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// Enqueue queues cmd for the next frame. It is safe for concurrent use.
func (s *Streamer) Enqueue(cmd Command) error {
	select {
	case s.commands <- cmd:
		return nil
	default:
		return errors.Wrapf(ErrQueueFull, "%s %s", cmd.Animation, cmd.Name)
	}
}

// SendFrame calculates a frame and sends it to every sink.
func (s *Streamer) SendFrame() {
	f := s.animation.CalculateFrame()
	for _, sink := range s.sinks {
		if err := sink.Send(f); err != nil {
			log.Printf("send frame: %v", err)
		}
	}
}

func (s *Streamer) drain() {
	d, ok := s.animation.(Dispatcher)
	for {
		select {
		case cmd := <-s.commands:
			if ok {
				d.Dispatch(cmd)
			} else {
				log.Printf("no dispatcher for command %s %s", cmd.Animation, cmd.Name)
			}
		default:
			return
		}
	}
}

// Interval is the time between frames.
func (s *Streamer) Interval() time.Duration {
	d := time.Duration(float64(time.Second) / s.config.FrameRate)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// Run sends frames continuously until ctx is done. Queued commands are
// dispatched before each frame.
func (s *Streamer) Run(ctx context.Context) {
	publishTimer := time.NewTicker(s.Interval())
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-publishTimer.C:
			s.drain()
			s.SendFrame()
		}
	}
}
