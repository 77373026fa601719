// Package input decodes raw terminal bytes into key, pointer and resize events.
package input

import (
	"io"
	"sync"
)

const (
	readBufSize   = 256
	eventChanSize = 128
)

// Stream reads raw bytes from a terminal and delivers decoded events.
type Stream struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// StartStream spawns a goroutine that reads from r until it fails and sends
// the decoded events to the stream. The channel is closed when r is exhausted.
func StartStream(r io.Reader) *Stream {
	s := &Stream{ch: make(chan Event, eventChanSize)}
	go s.readLoop(r)
	return s
}

// Events returns the channel events are delivered on.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Push injects an event produced outside the byte stream, such as a
// window-size change reported by an SSH session.
func (s *Stream) Push(ev Event) {
	s.send(ev)
}

func (s *Stream) readLoop(r io.Reader) {
	defer s.close()

	buf := make([]byte, readBufSize)
	var pending []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			events, rest := Parse(pending)
			for _, ev := range events {
				s.send(ev)
			}

			// Terminals write a whole escape sequence at once, so an ESC
			// left alone at the end of a read is the Escape key
			if len(rest) == 1 && rest[0] == esc {
				s.send(Event{Type: EventKey, Key: KeyEscape})
				rest = nil
			}
			pending = append(pending[:0], rest...)
		}
		if err != nil {
			return
		}
	}
}

// send delivers ev unless the stream is closed or the consumer fell far behind.
func (s *Stream) send(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
	}
}

func (s *Stream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
