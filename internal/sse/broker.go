// Package sse implements the Server-Sent Events broker that streams
// reference and almanac changes to connected clients.
package sse

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Event is one broker message. Type becomes the SSE event name and
// Data is serialized as the JSON payload.
type Event struct {
	Type string
	Data any
}

// frame renders the wire form of the event, tagged with its sequence
// number so clients can detect dropped messages.
func (e Event) frame(seq uint64) ([]byte, error) {
	payload, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("id: ")
	buf.WriteString(strconv.FormatUint(seq, 10))
	buf.WriteString("\nevent: ")
	buf.WriteString(e.Type)
	buf.WriteString("\ndata: ")
	buf.Write(payload)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}

const (
	clientBuffer   = 64
	publishBuffer  = 256
	heartbeatEvery = 25 * time.Second
)

// Broker fans events out to any number of SSE clients.
//
// A single goroutine owns the subscriber set; the exported methods
// talk to it over channels, so the broker needs no locks.
type Broker struct {
	add    chan chan []byte
	remove chan chan []byte
	events chan Event
	count  chan chan int

	stop     sync.Once
	stopping chan struct{}
	done     chan struct{}
}

// NewBroker starts a broker. Callers must Close it to release the
// fan-out goroutine.
func NewBroker() *Broker {
	b := &Broker{
		add:      make(chan chan []byte),
		remove:   make(chan chan []byte),
		events:   make(chan Event, publishBuffer),
		count:    make(chan chan int),
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.done)

	var seq uint64
	subs := make(map[chan []byte]struct{})

	for {
		select {
		case <-b.stopping:
			for ch := range subs {
				close(ch)
			}
			return

		case ch := <-b.add:
			subs[ch] = struct{}{}

		case ch := <-b.remove:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case ev := <-b.events:
			seq++
			frame, err := ev.frame(seq)
			if err != nil {
				continue
			}
			for ch := range subs {
				select {
				case ch <- frame:
				default:
					// Slow client; drop the frame rather than stall the loop.
				}
			}

		case reply := <-b.count:
			reply <- len(subs)
		}
	}
}

// Close stops the fan-out loop and closes every subscriber channel.
// Safe to call more than once.
func (b *Broker) Close() {
	b.stop.Do(func() { close(b.stopping) })
	<-b.done
}

// Subscribe registers a new client. The returned channel is closed
// when the client is removed or the broker shuts down.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	select {
	case b.add <- ch:
	case <-b.stopping:
		close(ch)
	}
	return ch
}

// Unsubscribe drops a client. Its channel is closed by the broker,
// at most once.
func (b *Broker) Unsubscribe(ch chan []byte) {
	select {
	case b.remove <- ch:
	case <-b.stopping:
	}
}

// ClientCount reports the number of connected clients.
func (b *Broker) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case b.count <- reply:
	case <-b.stopping:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-b.done:
		return 0
	}
}

// Publish queues an event for delivery to every subscriber. Events
// published after Close are discarded.
func (b *Broker) Publish(ev Event) {
	select {
	case b.events <- ev:
	case <-b.stopping:
	}
}

// ServeHTTP streams events to one client until it disconnects.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	heartbeat := time.NewTicker(heartbeatEvery)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			// Comment frame; keeps intermediaries from timing out the stream.
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case frame, ok := <-ch:
			if !ok {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
