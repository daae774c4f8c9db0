package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	factory := func(context.Context, Config) (Dispatcher, error) {
		return NewSimulatedDispatcher(time.Millisecond), nil
	}

	require.NoError(t, r.Register("custom", factory))
	assert.Error(t, r.Register("custom", factory))
	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register("nil", nil))
	assert.Equal(t, []string{"custom"}, r.ListProviders())
}

func TestDefaultRegistry_Create(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{ProviderSES, ProviderSimulated}, r.ListProviders())

	d, err := r.Create(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, ProviderSimulated, d.Provider())

	sim, ok := d.(*SimulatedDispatcher)
	require.True(t, ok)
	assert.Equal(t, DefaultSimulatedDelay, sim.delay)

	_, err = r.Create(context.Background(), Config{Provider: "carrier-pigeon"})
	assert.ErrorContains(t, err, "carrier-pigeon")
}
