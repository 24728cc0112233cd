// Package messaging routes named commands and messages between the viewer's
// front ends and the document session.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Type identifies a message.
type Type string

const (
	// ToggleJSONView switches between formatted and raw display.
	ToggleJSONView Type = "TOGGLE_JSON_VIEW"
	// OpenOptions asks the host to show the settings editor.
	OpenOptions Type = "OPEN_OPTIONS"
)

// Default command names.
const (
	CommandToggleRawFormatted = "toggle-raw-formatted"
	CommandOpenOptions        = "open-options"
)

// ErrNoHandler is returned when nothing is registered for a message type or command.
var ErrNoHandler = errors.New("no handler registered")

// Message is a request sent over the bus.
type Message struct {
	Type Type `json:"type"`
}

// Response reports whether the handler succeeded.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OK is the response for a handled message.
func OK() Response {
	return Response{Success: true}
}

// Fail wraps err as an unsuccessful response.
func Fail(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

// Handler processes a message.
type Handler func(ctx context.Context, msg Message) error

// Bus delivers messages to one handler per type and maps command names to messages.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type]Handler
	commands map[string]Type
}

// NewBus creates a bus with the default command bindings.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type]Handler),
		commands: map[string]Type{
			CommandToggleRawFormatted: ToggleJSONView,
			CommandOpenOptions:        OpenOptions,
		},
	}
}

// Handle registers h for messages of type t, replacing any earlier handler.
func (b *Bus) Handle(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = h
}

// Bind maps a command name to a message type.
func (b *Bus) Bind(command string, t Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands[command] = t
}

// Commands lists the bound command names.
func (b *Bus) Commands() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.commands))
	for name := range b.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Send delivers msg and returns the handler's error.
func (b *Bus) Send(ctx context.Context, msg Message) error {
	b.mu.RLock()
	h, ok := b.handlers[msg.Type]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, msg.Type)
	}
	return h(ctx, msg)
}

// Request delivers msg and folds the outcome into a Response.
func (b *Bus) Request(ctx context.Context, msg Message) Response {
	if err := b.Send(ctx, msg); err != nil {
		return Fail(err)
	}
	return OK()
}

// Dispatch sends the message bound to command.
func (b *Bus) Dispatch(ctx context.Context, command string) error {
	b.mu.RLock()
	t, ok := b.commands[command]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: command %q", ErrNoHandler, command)
	}
	return b.Send(ctx, Message{Type: t})
}
