package serial

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Port represents an open serial port. All I/O goes through the raw
// file descriptor; the port is configured for raw mode 8N1.
type Port struct {
	mu     sync.RWMutex
	fd     int
	config Config
	closed bool
}

// baudRates maps integer baud rates to the corresponding termios constants.
var baudRates = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// BaudRates returns the supported baud rates in ascending order.
func BaudRates() []int {
	rates := make([]int, 0, len(baudRates))
	for r := range baudRates {
		rates = append(rates, r)
	}
	for i := 1; i < len(rates); i++ {
		for j := i; j > 0 && rates[j-1] > rates[j]; j-- {
			rates[j-1], rates[j] = rates[j], rates[j-1]
		}
	}
	return rates
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (*Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, openError(device, err)
	}

	if err := configurePort(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Port{fd: fd, config: config}, nil
}

// openError maps errno from open(2) onto the package sentinel errors
func openError(device string, err error) error {
	switch err {
	case unix.ENOENT, unix.ENODEV, unix.ENXIO:
		return fmt.Errorf("%s: %w", device, ErrDeviceNotFound)
	case unix.EACCES, unix.EPERM:
		return fmt.Errorf("%s: %w", device, ErrPermissionDenied)
	case unix.EBUSY:
		return fmt.Errorf("%s: %w", device, ErrDeviceInUse)
	}
	return fmt.Errorf("failed to open %s: %w", device, err)
}

// configurePort puts the descriptor into raw mode with fixed 8N1 framing
func configurePort(fd int, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}

	// Raw mode, 8 data bits, 1 stop bit, no parity, no flow control
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	// VMIN=0 with VTIME makes reads return after the timeout even when
	// no data arrived, so read loops can observe cancellation.
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = uint8(config.ReadTimeoutTenths)

	baud, ok := baudRates[config.BaudRate]
	if !ok {
		return ErrInvalidBaudRate
	}
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baud
	termios.Ispeed = baud
	termios.Ospeed = baud

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %w", err)
	}

	return nil
}

// Close closes the serial port
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	return err
}

// Read reads data from the serial port. With the default configuration
// it returns (0, nil) when the kernel read timeout expires without data.
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Read(p.fd, buf)
}

// Write writes data to the serial port
func (p *Port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(p.fd, data)
}

// WriteContext writes data with context cancellation support
func (p *Port) WriteContext(ctx context.Context, data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	type writeResult struct {
		n   int
		err error
	}
	resultCh := make(chan writeResult, 1)

	go func() {
		n, err := unix.Write(p.fd, data)
		resultCh <- writeResult{n: n, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// ReadContext reads data with context cancellation support
func (p *Port) ReadContext(ctx context.Context, buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	type readResult struct {
		n   int
		err error
	}
	resultCh := make(chan readResult, 1)

	go func() {
		n, err := unix.Read(p.fd, buf)
		resultCh <- readResult{n: n, err: err}
	}()

	select {
	case result := <-resultCh:
		return result.n, result.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// FlushInput discards any unread input data
func (p *Port) FlushInput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// Drain waits until all output written to the port has been transmitted
func (p *Port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}
