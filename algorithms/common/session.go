package common

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/RyanBlaney/sonido-samples/logging"
)

// Session carries the per-run state that the sample routines share: the
// diagnostic logger and the storage mode of the last header read from a
// stream, together with the standard streams that the file name "-"
// stands for. A nil *Session is valid everywhere and behaves as a silent
// session on the process streams.
type Session struct {
	logger   logging.Logger
	lastMode rune
	stdin    *bufio.Reader
	stdout   io.Writer
}

// process is the state of the nil session: the process standard input and
// the mode of the last header read without a session.
var process struct {
	mu       sync.Mutex
	file     *os.File
	stdin    *bufio.Reader
	lastMode rune
}

// processStdin returns the one buffered reader over os.Stdin. It is
// rebuilt only when os.Stdin is replaced.
func processStdin() *bufio.Reader {
	process.mu.Lock()
	defer process.mu.Unlock()
	if process.stdin == nil || process.file != os.Stdin {
		process.file = os.Stdin
		process.stdin = bufio.NewReader(os.Stdin)
	}
	return process.stdin
}

// NewSession creates a session logging through logger. A nil logger
// produces a silent session.
func NewSession(logger logging.Logger) *Session {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Session{logger: logger}
}

// NewVerboseSession creates a session that writes diagnostics to w at
// verbosity v (0 silent ... 5 trace).
func NewVerboseSession(w io.Writer, v logging.Verbosity) *Session {
	return NewSession(logging.NewWriterLogger(w, v))
}

// Logger returns the session logger, never nil.
func (s *Session) Logger() logging.Logger {
	if s == nil || s.logger == nil {
		return &logging.NoOpLogger{}
	}
	return s.logger
}

// Log returns the session logger tagged with the calling routine.
func (s *Session) Log(fn string) logging.Logger {
	return s.Logger().WithFields(logging.Fields{"fn": fn})
}

// WithVerbosity returns a copy of the session whose logger uses verbosity v.
// The receiver is left untouched, so a single call can be made louder or
// quieter without affecting other users of the session.
func (s *Session) WithVerbosity(v logging.Verbosity) *Session {
	l := s.Logger().WithFields(logging.Fields{})
	l.SetLevel(v.Level())
	out := &Session{logger: l}
	if s != nil {
		out.lastMode = s.lastMode
		out.stdin = s.stdin
		out.stdout = s.stdout
	}
	return out
}

// WithStreams replaces the streams used for the file name "-" and returns
// the session.
func (s *Session) WithStreams(in io.Reader, out io.Writer) *Session {
	if s == nil {
		return s
	}
	s.stdin = bufio.NewReader(in)
	s.stdout = out
	return s
}

// Stdin returns the buffered reader behind "-". Consecutive reads through
// one session share the buffer, so a header read leaves the body in place.
func (s *Session) Stdin() *bufio.Reader {
	if s == nil {
		return processStdin()
	}
	if s.stdin == nil {
		s.stdin = processStdin()
	}
	return s.stdin
}

// Stdout returns the writer behind "-".
func (s *Session) Stdout() io.Writer {
	if s == nil || s.stdout == nil {
		return os.Stdout
	}
	return s.stdout
}

// LastMode returns the storage mode tag of the last header parsed through
// this session, or 0 if none is remembered. The nil session remembers the
// mode process wide.
func (s *Session) LastMode() rune {
	if s == nil {
		process.mu.Lock()
		defer process.mu.Unlock()
		return process.lastMode
	}
	return s.lastMode
}

// SetLastMode records the storage mode tag of a parsed header.
func (s *Session) SetLastMode(mode rune) {
	if s == nil {
		process.mu.Lock()
		process.lastMode = mode
		process.mu.Unlock()
		return
	}
	s.lastMode = mode
}
