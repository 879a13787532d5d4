// Package serial provides the serial port layer for the serialmon tool:
// raw termios port I/O and port discovery on Linux systems.
//
// Framing is fixed at 8 data bits, 1 stop bit, no parity. The tool is a
// line-oriented monitor, not a general-purpose serial library, and does
// not negotiate flow control.
//
// # Basic Usage
//
// Open a serial port with default configuration (115200 8N1):
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	n, err := port.Write([]byte("Hello\r\n"))
//	buffer := make([]byte, 4096)
//	n, err = port.Read(buffer)
//
// Use functional options for custom configuration:
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithReadTimeout(5),
//	)
//
// # Port Discovery
//
// List available serial ports and get USB device metadata:
//
//	ports, err := serial.ListPorts()
//	for _, portPath := range ports {
//	    info, _ := serial.GetPortInfo(portPath)
//	    fmt.Printf("%s: %s (%s %s, serial %s)\n",
//	        info.Path, info.Description, info.Manufacturer, info.Product,
//	        info.SerialNumber)
//	}
//
// # Error Handling
//
// Open failures map onto sentinel errors; use errors.Is():
//
//	if errors.Is(err, serial.ErrDeviceInUse) {
//	    // another process holds the port
//	}
//
// # Context Support
//
// Read and write operations support context cancellation:
//
//	n, err := port.ReadContext(ctx, buffer)
//	n, err = port.WriteContext(ctx, data)
package serial
