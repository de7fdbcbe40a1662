// Package display owns the serial link to the map-frame microcontroller
// and the wire framing for per-LED color assignments.
//
// Each frame is the ASCII decimal LED index followed by a single color
// byte, with no separator or terminator; the microcontroller reads digits
// until a non-digit arrives. At 9600 baud the default 500 ms write timeout
// bounds one write to roughly 480 bytes, a soft cap of ~68 frames per tick.
package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// Assignment is one framed message: set the LED at Index to Color.
// Index zero is reserved; a leading zero digit would be indistinguishable
// from frame padding on the microcontroller side.
type Assignment struct {
	Index uint16
	Color byte
}

// EncodeFrame renders the assignment's wire bytes, e.g. LED 3 in blue
// becomes "3b".
func EncodeFrame(a Assignment) []byte {
	frame := strconv.AppendUint(nil, uint64(a.Index), 10)
	return append(frame, a.Color)
}

// Emitter writes framed assignments to an open serial port.
type Emitter struct {
	port    io.WriteCloser
	timeout time.Duration
	logger  *logrus.Logger
}

// Open opens the serial device at 8-N-1 with the given baud rate. The
// caller owns the returned emitter for one refresh tick and must Close it.
func Open(device string, baudRate int, timeout time.Duration, logger *logrus.Logger) (*Emitter, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial device %s: %w", device, err)
	}

	logger.WithFields(logrus.Fields{
		"device":    device,
		"baud_rate": baudRate,
	}).Debug("Serial device opened")

	return &Emitter{port: port, timeout: timeout, logger: logger}, nil
}

// Emit writes one framed assignment, bounded by the configured write
// timeout.
func (e *Emitter) Emit(a Assignment) error {
	frame := EncodeFrame(a)

	done := make(chan error, 1)
	go func() {
		_, err := e.port.Write(frame)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to write frame for LED %d: %w", a.Index, err)
		}
		e.logger.WithFields(logrus.Fields{
			"led":   a.Index,
			"frame": string(frame),
		}).Debug("Frame written")
		return nil
	case <-time.After(e.timeout):
		return fmt.Errorf("write for LED %d timed out after %s", a.Index, e.timeout)
	}
}

// Close releases the serial handle.
func (e *Emitter) Close() error {
	return e.port.Close()
}
