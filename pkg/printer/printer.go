package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

// Printer is the interface for sending raw ESC/POS data to a receipt printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer can currently accept jobs.
	IsConnected() bool
}

const (
	dialTimeout  = 5 * time.Second
	checkTimeout = 2 * time.Second
	writeTimeout = 10 * time.Second
)

// writeJob sends one receipt and closes the handle, reporting the first
// failure of either step.
func writeJob(w io.WriteCloser, target string, data []byte) error {
	_, err := w.Write(data)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("printer: write to %s: %w", target, err)
	}
	return nil
}

// --- USB printer (writes to a device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	return writeJob(f, p.path, data)
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
}

// NewNetworkPrinter creates a printer that opens one TCP connection per job.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return writeJob(conn, p.address, data)
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, checkTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// --- Null printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }
func (p *nullPrinter) Close() error            { return nil }
func (p *nullPrinter) IsConnected() bool       { return false }

// Options selects and configures a printer transport.
type Options struct {
	Type    string // queue, usb, network or none
	Name    string // preferred queue name for the queue type
	USBPath string
	Address string
	// Spooler backs the queue type; nil uses the local CUPS tools.
	Spooler Spooler
}

// New creates the Printer described by opts.
func New(opts Options) (Printer, error) {
	switch opts.Type {
	case "queue":
		spooler := opts.Spooler
		if spooler == nil {
			spooler = NewCUPSSpooler()
		}
		return NewQueuePrinter(spooler, opts.Name), nil
	case "usb":
		if opts.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(opts.USBPath), nil
	case "network":
		if opts.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(opts.Address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use queue, usb, network, or none)", opts.Type)
	}
}
