// Package transcript captures the process's console output to a file.
// While a capture is active, everything written to os.Stdout and
// os.Stderr is copied to the transcript file and passed through to the
// original streams.
package transcript

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Capture is an active console transcript. A Capture swaps os.Stdout and
// os.Stderr for pipes and tees them into the transcript file; Stop
// restores the original streams.
type Capture struct {
	path string
	file *os.File

	origStdout *os.File
	origStderr *os.File
	outWrite   *os.File
	errWrite   *os.File

	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// lockedWriter serializes writes to the transcript file, which receives
// copies from both the stdout and stderr tee goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// Start begins capturing console output to path, opened in append mode.
// A header line is written immediately so a started transcript is never
// empty. The label appears in the header and footer.
func Start(path, label string) (*Capture, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file: %w", err)
	}

	if _, err := fmt.Fprintf(file, "**** Transcript started %s [%s] ****\n",
		time.Now().Format("2006-01-02 15:04:05"), label); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write transcript header: %w", err)
	}

	outRead, outWrite, err := os.Pipe()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	errRead, errWrite, err := os.Pipe()
	if err != nil {
		outRead.Close()
		outWrite.Close()
		file.Close()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	c := &Capture{
		path:       path,
		file:       file,
		origStdout: os.Stdout,
		origStderr: os.Stderr,
		outWrite:   outWrite,
		errWrite:   errWrite,
	}

	sink := &lockedWriter{w: file}

	os.Stdout = outWrite
	os.Stderr = errWrite

	c.wg.Add(2)
	go c.tee(outRead, c.origStdout, sink)
	go c.tee(errRead, c.origStderr, sink)

	return c, nil
}

// tee copies a captured stream to both the original stream and the
// transcript file until the write end is closed.
func (c *Capture) tee(src *os.File, orig *os.File, sink io.Writer) {
	defer c.wg.Done()
	defer src.Close()
	io.Copy(io.MultiWriter(orig, sink), src)
}

// Path returns the transcript file path.
func (c *Capture) Path() string {
	return c.path
}

// Stop restores the original console streams, drains the tee goroutines,
// writes the footer, and closes the transcript file. Stop is safe to
// call more than once.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil
	}
	c.stopped = true

	os.Stdout = c.origStdout
	os.Stderr = c.origStderr

	// Closing the write ends unblocks the tee goroutines.
	c.outWrite.Close()
	c.errWrite.Close()
	c.wg.Wait()

	fmt.Fprintf(c.file, "**** Transcript stopped %s ****\n",
		time.Now().Format("2006-01-02 15:04:05"))

	if err := c.file.Close(); err != nil {
		return fmt.Errorf("failed to close transcript file: %w", err)
	}
	return nil
}
