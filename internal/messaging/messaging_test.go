package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusRequest(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()

	resp := bus.Request(ctx, Message{Type: ToggleJSONView})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "no handler")

	toggles := 0
	bus.Handle(ToggleJSONView, func(context.Context, Message) error {
		toggles++
		return nil
	})
	assert.Equal(t, OK(), bus.Request(ctx, Message{Type: ToggleJSONView}))
	assert.Equal(t, 1, toggles)

	bus.Handle(OpenOptions, func(context.Context, Message) error {
		return errors.New("options unavailable")
	})
	assert.Equal(t, Response{Success: false, Error: "options unavailable"}, bus.Request(ctx, Message{Type: OpenOptions}))
}

func TestBusDispatch(t *testing.T) {
	ctx := context.Background()
	bus := NewBus()

	var got []Type
	bus.Handle(ToggleJSONView, func(_ context.Context, msg Message) error {
		got = append(got, msg.Type)
		return nil
	})

	require.NoError(t, bus.Dispatch(ctx, CommandToggleRawFormatted))
	assert.Equal(t, []Type{ToggleJSONView}, got)

	err := bus.Dispatch(ctx, "unknown-command")
	assert.ErrorIs(t, err, ErrNoHandler)

	assert.Equal(t, []string{CommandOpenOptions, CommandToggleRawFormatted}, bus.Commands())
	assert.ErrorIs(t, bus.Dispatch(ctx, CommandOpenOptions), ErrNoHandler)

	bus.Bind("raw", ToggleJSONView)
	require.NoError(t, bus.Dispatch(ctx, "raw"))
	assert.Equal(t, []Type{ToggleJSONView, ToggleJSONView}, got)
	assert.Equal(t, []string{CommandOpenOptions, "raw", CommandToggleRawFormatted}, bus.Commands())
}
