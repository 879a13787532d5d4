package serial

// Config holds the configuration for a serial port.
//
// Framing is fixed at 8 data bits, 1 stop bit, no parity. Only the
// baud rate and the kernel read timeout are tunable.
type Config struct {
	BaudRate          int
	ReadTimeoutTenths int // VTIME setting in tenths of seconds (0-255)
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:          115200,
		ReadTimeoutTenths: 2, // 200ms: keeps blocking reads responsive to close
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, ok := baudRates[rate]; !ok {
			return ErrInvalidBaudRate
		}
		c.BaudRate = rate
		return nil
	}
}

// WithReadTimeout sets the read timeout in tenths of seconds (VTIME)
func WithReadTimeout(tenths int) Option {
	return func(c *Config) error {
		if tenths < 0 || tenths > 255 {
			return ErrInvalidConfig
		}
		c.ReadTimeoutTenths = tenths
		return nil
	}
}
