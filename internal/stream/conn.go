package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrClosed is returned by Next once the session ended.
var ErrClosed = errors.New("stream closed by server")

// HandshakeTimeout bounds the Engine.IO open and namespace connect exchange.
var HandshakeTimeout = 15 * time.Second

// Stream is a subscribed event channel. Conn is the production implementation.
type Stream interface {
	Emit(event string, args ...any) error
	Next() (event string, args []json.RawMessage, err error)
	Close() error
}

type event struct {
	name string
	args []json.RawMessage
}

// Conn is a Socket.IO session on the default namespace, websocket transport
// only. Reconnecting is left to the Updater.
type Conn struct {
	sock   *socket.Socket
	events chan event

	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
	reason    string
}

// target splits a backend URL into the origin the client dials and the
// Socket.IO path.
func target(raw string) (origin, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse stream url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws", "":
		u.Scheme = "http"
	case "https", "wss":
		u.Scheme = "https"
	default:
		return "", "", fmt.Errorf("unsupported stream scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("stream url %q has no host", raw)
	}
	path = u.Path
	if path == "" || path == "/" {
		path = "/socket.io"
	}
	return u.Scheme + "://" + u.Host, path, nil
}

// Dial connects to the default namespace and returns once the server
// acknowledged the connect.
func Dial(ctx context.Context, rawURL string) (*Conn, error) {
	origin, path, err := target(rawURL)
	if err != nil {
		return nil, err
	}

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	opts.SetTransports(types.NewSet(socket.WebSocket))
	opts.SetReconnection(false)
	opts.SetForceNew(true)
	opts.SetAutoConnect(false)
	opts.SetTimeout(HandshakeTimeout)

	sock := socket.NewManager(origin, opts).Socket("/", opts)
	c := &Conn{
		sock:   sock,
		events: make(chan event, 64),
		done:   make(chan struct{}),
	}

	connected := make(chan struct{}, 1)
	failed := make(chan error, 1)
	sock.On("connect", func(...any) {
		select {
		case connected <- struct{}{}:
		default:
		}
	})
	sock.On("connect_error", func(args ...any) {
		select {
		case failed <- connectError(args):
		default:
		}
	})
	sock.On("disconnect", func(args ...any) {
		reason := "closed"
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				reason = s
			}
		}
		c.finish(reason)
	})
	sock.OnAny(c.dispatch)
	sock.Connect()

	timer := time.NewTimer(HandshakeTimeout)
	defer timer.Stop()
	select {
	case <-connected:
		log.Debugf("socket.io session %s open", sock.Id())
		return c, nil
	case err := <-failed:
		c.Close()
		return nil, fmt.Errorf("connect %s: %w", origin, err)
	case <-timer.C:
		c.Close()
		return nil, fmt.Errorf("connect %s: handshake timed out after %s", origin, HandshakeTimeout)
	case <-ctx.Done():
		c.Close()
		return nil, fmt.Errorf("handshake: %w", ctx.Err())
	}
}

func connectError(args []any) error {
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			return err
		}
		return fmt.Errorf("%v", args[0])
	}
	return errors.New("connect refused")
}

// dispatch queues one server event. args[0] is the event name.
func (c *Conn) dispatch(args ...any) {
	if len(args) == 0 {
		return
	}
	name, ok := args[0].(string)
	if !ok {
		return
	}
	ev := event{name: name, args: make([]json.RawMessage, 0, len(args)-1)}
	for _, a := range args[1:] {
		b, err := json.Marshal(a)
		if err != nil {
			log.Debugf("skip %s argument: %v", name, err)
			return
		}
		ev.args = append(ev.args, b)
	}
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

func (c *Conn) finish(reason string) {
	c.doneOnce.Do(func() {
		c.reason = reason
		close(c.done)
	})
}

// Emit sends an event on the default namespace.
func (c *Conn) Emit(event string, args ...any) error {
	return c.sock.Emit(event, args...)
}

// Next blocks until the server sends an event or the session ends.
// Liveness is enforced by the Engine.IO ping timeout.
func (c *Conn) Next() (string, []json.RawMessage, error) {
	select {
	case ev := <-c.events:
		return ev.name, ev.args, nil
	case <-c.done:
		select {
		case ev := <-c.events:
			return ev.name, ev.args, nil
		default:
		}
		return "", nil, fmt.Errorf("%w: %s", ErrClosed, c.reason)
	}
}

// Close leaves the namespace and closes the transport. It is safe to call
// more than once and from another goroutine than Next.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.sock.Disconnect()
		c.finish("io client disconnect")
	})
	return nil
}
