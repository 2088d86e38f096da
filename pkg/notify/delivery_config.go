package notify

import "time"

// ChannelSettings configures a single delivery channel.
type ChannelSettings struct {
	// Enabled gates whether the dispatcher fans out to this channel.
	Enabled bool

	// Options are free-form channel-specific settings (prefixes,
	// endpoint URLs, signing secrets). Channels read the keys they
	// understand and ignore the rest.
	Options map[string]string
}

// DeliveryConfig controls dispatch behavior across all channels.
type DeliveryConfig struct {
	// Channels maps channel identifiers to their settings. Channels
	// absent from the map are treated as disabled.
	Channels map[string]ChannelSettings

	// Timeout bounds a single channel delivery attempt.
	Timeout time.Duration

	// MaxRetries is the declared per-channel retry budget. Dispatch is
	// currently at-most-once; the field is carried in configuration so
	// deployments can set it ahead of retry support landing.
	MaxRetries int

	// Logging enables the per-dispatch summary log line. Nil means unset,
	// which Merge treats as "keep the base value" and the dispatcher
	// treats as off.
	Logging *bool
}

// Defaults applied where a DeliveryConfig leaves fields unset.
const (
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 3
	DefaultBatchSize  = 10
)

// DefaultDeliveryConfig returns the stock configuration: only the in-app
// channel delivers, everything else is present but disabled.
func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		Channels: map[string]ChannelSettings{
			ChannelInApp:   {Enabled: true},
			ChannelEmail:   {Enabled: false},
			ChannelWebhook: {Enabled: false},
			ChannelSocket:  {Enabled: false},
		},
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Logging:    boolRef(true),
	}
}

// Merge layers override on top of c and returns the result. Channel entries
// in override replace the whole entry for that identifier; unset fields
// (zero scalars, nil Logging) keep c's values. Neither input is mutated.
func (c DeliveryConfig) Merge(override DeliveryConfig) DeliveryConfig {
	merged := DeliveryConfig{
		Channels:   cloneChannelSettings(c.Channels),
		Timeout:    c.Timeout,
		MaxRetries: c.MaxRetries,
		Logging:    c.Logging,
	}
	for id, settings := range override.Channels {
		merged.Channels[id] = settings
	}
	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}
	if override.MaxRetries > 0 {
		merged.MaxRetries = override.MaxRetries
	}
	if override.Logging != nil {
		merged.Logging = override.Logging
	}
	return merged
}

// LoggingEnabled reports whether the dispatch summary log is switched on.
func (c DeliveryConfig) LoggingEnabled() bool {
	return c.Logging != nil && *c.Logging
}

// ChannelEnabled reports whether the identified channel is switched on.
func (c DeliveryConfig) ChannelEnabled(id string) bool {
	return c.Channels[id].Enabled
}

// ChannelOptions returns the identified channel's option map. The result is
// never nil, so channels can index it without guards.
func (c DeliveryConfig) ChannelOptions(id string) map[string]string {
	if opts := c.Channels[id].Options; opts != nil {
		return opts
	}
	return map[string]string{}
}

// Config is the environment-driven subset of delivery settings, loaded with
// the config package.
type Config struct {
	DispatchTimeout time.Duration `env:"NOTIFY_DISPATCH_TIMEOUT" envDefault:"5s"`
	MaxRetries      int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	BatchSize       int           `env:"NOTIFY_BATCH_SIZE" envDefault:"10"`
	Logging         bool          `env:"NOTIFY_DISPATCH_LOGGING" envDefault:"true"`
}

// DeliveryConfig projects the environment values onto the stock delivery
// configuration as a partial override.
func (c Config) DeliveryConfig() DeliveryConfig {
	return DefaultDeliveryConfig().Merge(DeliveryConfig{
		Timeout:    c.DispatchTimeout,
		MaxRetries: c.MaxRetries,
		Logging:    boolRef(c.Logging),
	})
}

// cloneChannelSettings returns a shallow copy of the settings map. Entries
// are value types, so replacing an entry never bleeds into the source map.
func cloneChannelSettings(in map[string]ChannelSettings) map[string]ChannelSettings {
	out := make(map[string]ChannelSettings, len(in))
	for id, settings := range in {
		out[id] = settings
	}
	return out
}

func boolRef(b bool) *bool {
	return &b
}
