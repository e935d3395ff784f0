package logging

import (
	"fmt"
	"sync"
	"time"
)

// traceMessage is a single enqueued log entry awaiting display.
type traceMessage struct {
	level   Severity
	module  string
	content string
}

// StdLogger forwards log messages to the standard output through a
// buffered channel, so that callers on the turn-resolution hot path are
// never blocked by console I/O. Grounded on the teacher's
// `logger.StdLogger` (pkg/logger/std_logger.go): a background goroutine
// drains the channel until Release is called.
type StdLogger struct {
	appName    string
	minLevel   Severity
	logChannel chan traceMessage
	endChannel chan struct{}
	closed     bool
	locker     sync.Mutex
	waiter     sync.WaitGroup
}

// NewStdLogger creates a logger that only displays messages at or above
// minLevel, with the given buffer depth for the internal channel.
func NewStdLogger(appName string, minLevel Severity, buffer int) *StdLogger {
	log := &StdLogger{
		appName:    appName,
		minLevel:   minLevel,
		logChannel: make(chan traceMessage, buffer),
		endChannel: make(chan struct{}),
	}

	log.waiter.Add(1)
	go log.performLogging()

	return log
}

// Trace enqueues a message for asynchronous display. It does not block
// unless the internal buffer is full.
func (log *StdLogger) Trace(level Severity, module string, message string) {
	if level < log.minLevel {
		return
	}

	log.locker.Lock()
	defer log.locker.Unlock()
	if log.closed {
		return
	}
	log.logChannel <- traceMessage{level: level, module: module, content: message}
}

// Release stops the background logging goroutine, flushing any messages
// still queued before returning.
func (log *StdLogger) Release() {
	log.locker.Lock()
	log.closed = true
	close(log.logChannel)
	log.locker.Unlock()

	close(log.endChannel)
	log.waiter.Wait()
}

func (log *StdLogger) performLogging() {
	defer log.waiter.Done()
	for trace := range log.logChannel {
		log.performSingleLog(trace)
	}
}

func (log *StdLogger) performSingleLog(trace traceMessage) {
	out := FormatWithBrackets(log.appName, Magenta)
	out += " " + FormatWithNoBrackets(time.Now().Format("2006-01-02 15:04:05"), Grey)
	out += " " + FormatWithBrackets(trace.module, Blue)
	out += " " + FormatWithNoBrackets(trace.level.String(), severityColor(trace.level))
	out += " " + trace.content

	fmt.Println(out)
}
