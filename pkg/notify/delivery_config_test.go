package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propstack/notifykit/pkg/notify"
)

func TestDefaultDeliveryConfig(t *testing.T) {
	t.Parallel()

	cfg := notify.DefaultDeliveryConfig()

	assert.True(t, cfg.ChannelEnabled(notify.ChannelInApp))
	assert.False(t, cfg.ChannelEnabled(notify.ChannelEmail))
	assert.False(t, cfg.ChannelEnabled(notify.ChannelWebhook))
	assert.False(t, cfg.ChannelEnabled(notify.ChannelSocket))

	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.LoggingEnabled())
}

func TestDeliveryConfig_Merge(t *testing.T) {
	t.Parallel()

	t.Run("channel entries replace wholesale", func(t *testing.T) {
		t.Parallel()

		base := notify.DefaultDeliveryConfig()
		merged := base.Merge(notify.DeliveryConfig{
			Channels: map[string]notify.ChannelSettings{
				notify.ChannelEmail: {
					Enabled: true,
					Options: map[string]string{"title_prefix": "[propstack]"},
				},
			},
		})

		assert.True(t, merged.ChannelEnabled(notify.ChannelEmail))
		assert.Equal(t, "[propstack]", merged.ChannelOptions(notify.ChannelEmail)["title_prefix"])
		// Untouched entries keep their base values.
		assert.True(t, merged.ChannelEnabled(notify.ChannelInApp))
		assert.Equal(t, base.Timeout, merged.Timeout)
	})

	t.Run("unset scalars keep base values", func(t *testing.T) {
		t.Parallel()

		base := notify.DefaultDeliveryConfig()
		merged := base.Merge(notify.DeliveryConfig{Timeout: 250 * time.Millisecond})

		assert.Equal(t, 250*time.Millisecond, merged.Timeout)
		assert.Equal(t, base.MaxRetries, merged.MaxRetries)
		assert.True(t, merged.LoggingEnabled(), "nil Logging override must keep the base value")
	})

	t.Run("override can disable logging", func(t *testing.T) {
		t.Parallel()

		off := false
		merged := notify.DefaultDeliveryConfig().Merge(notify.DeliveryConfig{Logging: &off})

		assert.False(t, merged.LoggingEnabled())
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		t.Parallel()

		base := notify.DefaultDeliveryConfig()
		base.Merge(notify.DeliveryConfig{
			Channels: map[string]notify.ChannelSettings{
				notify.ChannelInApp: {Enabled: false},
			},
		})

		assert.True(t, base.ChannelEnabled(notify.ChannelInApp))
	})
}

func TestDeliveryConfig_ChannelOptionsNeverNil(t *testing.T) {
	t.Parallel()

	cfg := notify.DefaultDeliveryConfig()
	opts := cfg.ChannelOptions("unknown")
	assert.NotNil(t, opts)
	assert.Empty(t, opts["anything"])
}

func TestConfig_DeliveryConfigProjection(t *testing.T) {
	t.Parallel()

	c := notify.Config{
		DispatchTimeout: 2 * time.Second,
		MaxRetries:      7,
		BatchSize:       20,
		Logging:         false,
	}
	cfg := c.DeliveryConfig()

	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.False(t, cfg.LoggingEnabled())
	assert.True(t, cfg.ChannelEnabled(notify.ChannelInApp))

	// Zero env values fall back to the stock defaults through the merge.
	zero := notify.Config{}.DeliveryConfig()
	assert.Equal(t, 5*time.Second, zero.Timeout)
	assert.Equal(t, 3, zero.MaxRetries)
}
