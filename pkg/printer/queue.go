package printer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNoPrinter is returned when no print queue can be resolved.
var ErrNoPrinter = errors.New("printer not found, please check printer connection")

// Spooler is a system print queue backend.
type Spooler interface {
	// Printers lists the installed queue names.
	Printers(ctx context.Context) ([]string, error)
	// Default returns the system default queue, or "" when none is set.
	Default(ctx context.Context) (string, error)
	// Submit sends data to queue as a raw job.
	Submit(ctx context.Context, queue string, data []byte) error
}

// SelectQueue picks the destination queue: an exact name match, then a
// case-insensitive substring match of preferred, then the first Epson/TM
// receipt printer, then fallback. It returns "" when nothing matches.
func SelectQueue(queues []string, preferred, fallback string) string {
	if preferred != "" {
		for _, q := range queues {
			if q == preferred {
				return q
			}
		}
		want := strings.ToLower(preferred)
		for _, q := range queues {
			if strings.Contains(strings.ToLower(q), want) {
				return q
			}
		}
	}
	for _, q := range queues {
		name := strings.ToLower(q)
		if strings.Contains(name, "epson") || strings.Contains(name, "tm-u220") || strings.Contains(name, "tm-t") {
			return q
		}
	}
	return fallback
}

// queuePrinter prints through a system spooler, resolving the destination on
// every job so newly attached printers are picked up.
type queuePrinter struct {
	spooler   Spooler
	preferred string
	timeout   time.Duration
}

// NewQueuePrinter creates a printer that submits raw jobs to spooler.
func NewQueuePrinter(spooler Spooler, preferred string) Printer {
	return &queuePrinter{spooler: spooler, preferred: preferred, timeout: 15 * time.Second}
}

// Resolve returns the queue a job would be sent to.
func (p *queuePrinter) Resolve(ctx context.Context) (string, error) {
	queues, err := p.spooler.Printers(ctx)
	if err != nil {
		return "", fmt.Errorf("printer: failed to list queues: %w", err)
	}
	def, err := p.spooler.Default(ctx)
	if err != nil {
		def = ""
	}
	name := SelectQueue(queues, p.preferred, def)
	if name == "" {
		return "", ErrNoPrinter
	}
	return name, nil
}

func (p *queuePrinter) Print(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	name, err := p.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := p.spooler.Submit(ctx, name, data); err != nil {
		return fmt.Errorf("printer: failed to submit job to %s: %w", name, err)
	}
	return nil
}

func (p *queuePrinter) Close() error { return nil }

func (p *queuePrinter) IsConnected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := p.Resolve(ctx)
	return err == nil
}

// cupsSpooler drives the CUPS command line tools.
type cupsSpooler struct{}

// NewCUPSSpooler returns a Spooler backed by lpstat and lp.
func NewCUPSSpooler() Spooler {
	return cupsSpooler{}
}

func (cupsSpooler) Printers(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "lpstat", "-e").Output()
	if err != nil {
		return nil, err
	}
	return parseLines(out), nil
}

func (cupsSpooler) Default(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "lpstat", "-d").Output()
	if err != nil {
		return "", err
	}
	return parseDefault(string(out)), nil
}

func (cupsSpooler) Submit(ctx context.Context, queue string, data []byte) error {
	cmd := exec.CommandContext(ctx, "lp", "-d", queue, "-o", "raw")
	cmd.Stdin = bytes.NewReader(data)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func parseLines(out []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names
}

// parseDefault reads "system default destination: NAME".
func parseDefault(out string) string {
	_, name, ok := strings.Cut(strings.TrimSpace(out), ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}

