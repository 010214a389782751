package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("api.base_url", "https://sign.example.com"))

	val, ok := store.Get("api.base_url")
	assert.True(t, ok)
	assert.Equal(t, "https://sign.example.com", val)

	_, ok = store.Get("api.missing")
	assert.False(t, ok)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("zoom.max", 2.0))
	require.NoError(t, store.Set("zoom.max", 3.0))

	assert.InDelta(t, 3.0, store.GetFloat("zoom.max"), 1e-9)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("api.base_url", "http://localhost")
	_ = store.Set("tui.cell_width", 8)

	assert.Equal(t, "http://localhost", store.GetString("api.base_url"))
	assert.Empty(t, store.GetString("tui.cell_width"), "wrong type")
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 16, 16},
		{"int64", int64(50), 50},
		{"float64 truncates", 8.9, 8},
		{"string", "16", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("tui.cell_height", tt.value)
			assert.Equal(t, tt.want, store.GetInt("tui.cell_height"))
		})
	}

	assert.Equal(t, 0, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"float64", 0.3, 0.3},
		{"float32", float32(0.5), 0.5},
		{"int widens", 100, 100},
		{"int64 widens", int64(40), 40},
		{"string", "0.3", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("zoom.min", tt.value)
			assert.InDelta(t, tt.want, store.GetFloat("zoom.min"), 1e-6)
		})
	}

	assert.Zero(t, NewConfigStore().GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("flag", true)
	_ = store.Set("text", "true")

	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("text"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("zoom.step", 0.1)

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
	assert.InDelta(t, 0.1, store.GetFloat("zoom.step"), 1e-9)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("autoscroll.speed", float64(n))
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetFloat("autoscroll.speed")
		}()
	}
	wg.Wait()

	_, ok := store.Get("autoscroll.speed")
	assert.True(t, ok)
}
