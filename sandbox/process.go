package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Stdio carries the standard streams handed to a Runner. It stands in for a
// real process's descriptors when producers and consumers run in-process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Runner executes a unit of work against explicit standard streams.
type Runner func(ctx context.Context, std Stdio) (int, error)

// ProcessResult holds the outcome of process execution.
type ProcessResult struct {
	Err      error
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Process runs a Runner with configurable streams, simulating one side of a
// shell pipeline without spawning a real subprocess. Its stdin can be fed
// incrementally through Write, exactly like a parent process writing into a
// child's pipe.
type Process struct {
	runner Runner

	in  io.Reader
	out io.Writer
	err io.Writer

	stdoutPipe *io.PipeReader
	stdoutW    *io.PipeWriter
	stderrPipe *io.PipeReader
	stderrW    *io.PipeWriter

	stdinPipe *io.PipeReader
	stdinW    *io.PipeWriter

	outBuf *bytes.Buffer
	errBuf *bytes.Buffer

	mu sync.Mutex
}

// NewProcess constructs a Process bound to a Runner function.
func NewProcess(fn Runner) *Process {
	return &Process{runner: fn}
}

// NewProducer constructs a Process that emits the provided lines to stdout,
// pausing interval between lines. Each line is written in a single call, so
// a pipe-connected consumer sees one chunk per line.
func NewProducer(interval time.Duration, lines []string) *Process {
	runner := func(ctx context.Context, std Stdio) (int, error) {
		for _, l := range lines {
			fmt.Fprintln(std.Out, l)
			time.Sleep(interval)
		}
		return 0, nil
	}

	return NewProcess(runner)
}

// StdoutPipe returns a reader connected to the process stdout.
func (p *Process) StdoutPipe() io.Reader {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stdoutPipe == nil {
		p.stdoutPipe, p.stdoutW = io.Pipe()
	}
	return p.stdoutPipe
}

// CaptureStdout configures stdout capture and returns the buffer.
func (p *Process) CaptureStdout() *bytes.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.outBuf == nil {
		p.outBuf = &bytes.Buffer{}
	}
	return p.outBuf
}

// StderrPipe returns a reader connected to the process stderr.
func (p *Process) StderrPipe() io.Reader {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stderrPipe == nil {
		p.stderrPipe, p.stderrW = io.Pipe()
	}
	return p.stderrPipe
}

// CaptureStderr configures stderr capture and returns the buffer.
func (p *Process) CaptureStderr() *bytes.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.errBuf == nil {
		p.errBuf = &bytes.Buffer{}
	}
	return p.errBuf
}

// SetStdin sets the input stream for the process.
func (p *Process) SetStdin(r io.Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in = r
}

// SetStderr sets the error stream for the process.
func (p *Process) SetStderr(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = w
}

// SetStdout sets the output stream for the process.
func (p *Process) SetStdout(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = w
}

// Write writes data to the process stdin. The stdin pipe is created lazily,
// so a Process can be fed before or while it runs.
func (p *Process) Write(b []byte) (int, error) {
	p.mu.Lock()
	if p.stdinW == nil {
		p.stdinPipe, p.stdinW = io.Pipe()
		p.in = p.stdinPipe
	}
	w := p.stdinW
	p.mu.Unlock()
	return w.Write(b)
}

// Close closes the process stdin writer. The runner's next read sees EOF.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stdinW != nil {
		return p.stdinW.Close()
	}
	return nil
}

// Run executes the process runner synchronously.
func (p *Process) Run(ctx context.Context) *ProcessResult {
	result := &ProcessResult{}

	if p.runner == nil {
		result.Err = fmt.Errorf("Run: no runner configured")
		result.ExitCode = 1
		return result
	}

	p.mu.Lock()

	in := p.in
	if in == nil {
		if p.stdinPipe == nil || p.stdinW == nil {
			p.stdinPipe, p.stdinW = io.Pipe()
		}
		in = p.stdinPipe
		p.in = in
	}

	out := p.out
	if out == nil {
		if p.outBuf != nil {
			out = p.outBuf
		} else if p.stdoutW != nil {
			out = p.stdoutW
		} else {
			out = &bytes.Buffer{}
			p.outBuf = out.(*bytes.Buffer)
		}
	}

	errOut := p.err
	if errOut == nil {
		if p.errBuf != nil {
			errOut = p.errBuf
		} else if p.stderrW != nil {
			errOut = p.stderrW
		} else {
			errOut = &bytes.Buffer{}
			p.errBuf = errOut.(*bytes.Buffer)
		}
	}

	p.mu.Unlock()

	exitCode, err := p.runner(ctx, Stdio{In: in, Out: out, Err: errOut})

	p.mu.Lock()
	if p.stdoutW != nil {
		_ = p.stdoutW.Close()
	}
	if p.stderrW != nil {
		_ = p.stderrW.Close()
	}
	if p.stdinW != nil {
		_ = p.stdinW.Close()
	}
	p.mu.Unlock()

	result.Err = err
	result.ExitCode = exitCode

	p.mu.Lock()
	if p.outBuf != nil {
		result.Stdout = p.outBuf.Bytes()
	}
	if p.errBuf != nil {
		result.Stderr = p.errBuf.Bytes()
	}
	p.mu.Unlock()

	return result
}

// RunWithIO executes the process with the provided reader as stdin.
func (p *Process) RunWithIO(ctx context.Context, r io.Reader) *ProcessResult {
	p.mu.Lock()
	p.in = r
	p.mu.Unlock()
	return p.Run(ctx)
}
