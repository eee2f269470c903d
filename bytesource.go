package lineedit

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// ErrCancelled is returned by ReadBlocking once the byte source has been
// cancelled (ReadNonblocking then reports ok=false). It is the
// byte-source analogue of the
// teacher's errCanceled in inputreader.go.
var ErrCancelled = errors.New("lineedit: byte source cancelled")

// ByteBuffer is the C1 byte source: a bounded LIFO push-back stack layered
// over a blocking/non-blocking read from the TTY, per spec §3/§4.1.
//
// Push-back is last-in-first-out: the most recently pushed byte is the
// next one popped, which is what lets the decoder "un-read" bytes it
// peeked at but didn't consume (spec §5, Ordering).
type ByteBuffer struct {
	r       io.Reader
	file    *os.File // non-nil when r is a cancelable *os.File
	rStop   *os.File
	wStop   *os.File
	mu      sync.Mutex
	stack   []byte // push-back LIFO; top is the last element
	cancel  bool

	// fallbackCh/fallbackStart back readTimeoutFallback's single
	// long-lived reader goroutine (started lazily, once, per ByteBuffer)
	// instead of one goroutine per timed-out call.
	fallbackCh    chan fallbackRead
	fallbackStart sync.Once
}

// fallbackRead is one byte (or error) produced by the fallback reader
// goroutine.
type fallbackRead struct {
	c   byte
	err error
}

// maxPushback bounds the push-back stack. A fully decoded escape sequence
// is at most a handful of bytes, so this is generous headroom, not a
// tuned limit.
const maxPushback = 64

// NewByteBuffer wraps r as a byte source. When r is backed by an *os.File
// (the common TTY case) reads are interruptible via Cancel and
// ReadNonblocking's poll uses unix.Select on the fd directly, grounded on
// the teacher's cancelreader.go/waitforread_unix.go. Otherwise reads fall
// back to a goroutine-timeout scheme, mirroring fallbackInputReader in
// inputreader.go.
func NewByteBuffer(r io.Reader) (*ByteBuffer, error) {
	b := &ByteBuffer{r: r}
	if f, ok := r.(*os.File); ok {
		b.file = f
		rStop, wStop, err := os.Pipe()
		if err != nil {
			return nil, err
		}
		b.rStop, b.wStop = rStop, wStop
	}
	return b, nil
}

// Cancel aborts any in-flight and future blocking reads. Returns true if
// cancellation is actually supported for this reader (i.e. it is backed
// by an *os.File), matching cancelreader.CancelReader.Cancel's contract.
func (b *ByteBuffer) Cancel() bool {
	if b.file == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel {
		return true
	}
	b.cancel = true
	_, _ = b.wStop.Write([]byte{'q'})
	return true
}

// Close releases the cancellation pipe, if any.
func (b *ByteBuffer) Close() error {
	if b.file == nil {
		return nil
	}
	_ = b.rStop.Close()
	return b.wStop.Close()
}

// PushByte prepends a single byte to future reads.
func (b *ByteBuffer) PushByte(c byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stack = append(b.stack, c)
	if len(b.stack) > maxPushback {
		// Drop the oldest (bottom) entry rather than grow unbounded; this
		// only matters for pathological input that never gets consumed.
		b.stack = b.stack[len(b.stack)-maxPushback:]
	}
}

// PushUnicode encodes u as 1-4 UTF-8 bytes and pushes them so the first
// byte popped afterwards is the lead byte, satisfying the round-trip
// invariant in spec §8.
func (b *ByteBuffer) PushUnicode(u rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], u)
	// Push in reverse so the LIFO pop order reproduces buf[0:n] forward.
	for i := n - 1; i >= 0; i-- {
		b.PushByte(buf[i])
	}
}

// popPushed pops one byte from the push-back stack, if any is present.
func (b *ByteBuffer) popPushed() (byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.stack) == 0 {
		return 0, false
	}
	c := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return c, true
}

// ReadBlocking reads one byte, blocking indefinitely (modulo Cancel).
func (b *ByteBuffer) ReadBlocking() (byte, error) {
	if c, ok := b.popPushed(); ok {
		return c, nil
	}
	return b.readTimeout(0)
}

// ReadNonblocking reads one byte, returning ok=false if none is available
// within the poll window. The exact window is implementation-defined
// (spec §4.1); see Config.EscTimeout for the default and its trade-offs.
func (b *ByteBuffer) ReadNonblocking(timeout time.Duration) (c byte, ok bool) {
	if c, ok := b.popPushed(); ok {
		return c, true
	}
	c, err := b.readTimeout(timeout)
	if err != nil {
		return 0, false
	}
	return c, true
}

// readTimeout reads one byte from the underlying reader, waiting at most
// timeout (0 meaning forever). Grounded on waitforread_unix.go's
// unix.Select pattern, generalised to a bounded wait instead of an
// indefinite one.
func (b *ByteBuffer) readTimeout(timeout time.Duration) (byte, error) {
	if b.file == nil {
		return b.readTimeoutFallback(timeout)
	}

	readerFd := int(b.file.Fd())
	abortFd := int(b.rStop.Fd())
	maxFd := readerFd
	if abortFd > maxFd {
		maxFd = abortFd
	}
	if maxFd >= 1024 {
		return 0, errors.New("lineedit: fd too large for select")
	}

	fdSet := &unix.FdSet{}
	for {
		if b.cancel {
			return 0, ErrCancelled
		}
		fdSet.Zero()
		fdSet.Set(readerFd)
		fdSet.Set(abortFd)

		var tv *unix.Timeval
		if timeout > 0 {
			t := unix.NsecToTimeval(timeout.Nanoseconds())
			tv = &t
		}
		n, err := unix.Select(maxFd+1, fdSet, nil, nil, tv)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, err
		}
		if fdSet.IsSet(abortFd) {
			return 0, ErrCancelled
		}
		if n == 0 {
			return 0, os.ErrDeadlineExceeded
		}

		var buf [1]byte
		nr, err := b.file.Read(buf[:])
		if nr == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// readTimeoutFallback implements the same contract for readers that
// aren't a cancelable *os.File (e.g. tests using strings.Reader), per
// inputreader.go's fallbackInputReader shape. A single long-lived
// goroutine (started on first use) feeds fallbackCh; a call that times
// out simply stops waiting on the channel rather than abandoning a
// fresh goroutine each time, so a reader that never produces another
// byte leaks at most one goroutine for the life of the ByteBuffer
// instead of one per timed-out call.
func (b *ByteBuffer) readTimeoutFallback(timeout time.Duration) (byte, error) {
	b.fallbackStart.Do(func() {
		b.fallbackCh = make(chan fallbackRead, 1)
		go func() {
			for {
				var buf [1]byte
				n, err := b.r.Read(buf[:])
				if n == 1 {
					b.fallbackCh <- fallbackRead{c: buf[0]}
					continue
				}
				if err == nil {
					err = io.ErrNoProgress
				}
				b.fallbackCh <- fallbackRead{err: err}
			}
		}()
	})

	if timeout <= 0 {
		r := <-b.fallbackCh
		return r.c, r.err
	}
	select {
	case r := <-b.fallbackCh:
		return r.c, r.err
	case <-time.After(timeout):
		return 0, os.ErrDeadlineExceeded
	}
}
