package background

import (
	"fmt"
	"sync"
	"time"

	"ec4x_engine/internal/logging"
)

// Process :
// Defines a process that can be started with a certain
// repeatability and will spawn a go routine to do so.
// The function to execute is provided as input so that
// it is customizable. The user can also specify whether
// the function should be retried in case of a failure.
//
// The `interval` defines the duration between two calls
// of the function by this process.
//
// The `retryInterval` defines the interval to wait in
// case the `operation` fails. The default value is `1`
// second.
//
// The `operation` defines the function to be executed
// by the process.
//
// The `retry` defines whether the operation should be
// rescheduled immediately in case it fails.
//
// The `log` defines a way for this process to notify
// information and failures to the user.
//
// The `module` defines a string identifying the func
// attached to this process to make logs more relevant.
//
// The `lock` allows to protect concurrent accesses
// to some internal variables.
//
// The `running` defines whether or not the main
// processing loop is running.
//
// The `termination` is a channel used to terminate
// the execution of the main processing loop.
//
// The `waiter` allows to wait for this process to
// complete before returning from the `Stop` func.
type Process struct {
	interval      time.Duration
	retryInterval time.Duration
	operation     OperationFunc
	retry         bool
	log           logging.Logger
	module        string

	lock        sync.Mutex
	running     bool
	termination chan struct{}
	waiter      sync.WaitGroup
}

// OperationFunc :
// Defines an operation that can be associated to a
// process object. It should take no argument and
// return any error along with a status indicating
// whether it could be executed successfully.
type OperationFunc func() (bool, error)

// ErrAlreadyRunning : Indicates that this process is
// already running and cannot be started again.
var ErrAlreadyRunning = fmt.Errorf("unable to start already running process")

// ErrInvalidOperation : Indicates that the operation
// associated to this process is not valid.
var ErrInvalidOperation = fmt.Errorf("invalid operation to start process")

// NewProcess :
// Defines a new process object with the specified
// interval and logger. This is used by the command
// line harness to advance the turn on a cadence when
// the engine is run as a standalone long-lived process;
// the engine's own `AdvanceTurn` call has no suspension
// points and does not need this wrapper.
//
// The `interval` defines the time interval between
// two consecutive calls to the main process func.
//
// The `log` defines the logger to use to notify
// info and errors.
//
// Returns the built-in object.
func NewProcess(interval time.Duration, log logging.Logger) *Process {
	return &Process{
		interval:      interval,
		retryInterval: 1 * time.Second,
		retry:         false,
		log:           log,

		lock:        sync.Mutex{},
		running:     false,
		termination: make(chan struct{}),
	}
}

// WithModule :
// Assigns a new string as the module name for this
// process.
//
// Returns this process to allow chain calling.
func (p *Process) WithModule(module string) *Process {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.module = module

	return p
}

// WithRetry :
// Defines that this process should try to schedule
// the operation function again if it fails, until it
// succeeds.
//
// Returns this process to allow chain calling.
func (p *Process) WithRetry() *Process {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.retry = true

	return p
}

// WithRetryInterval :
// Defines a new retry interval for the time to
// wait when the main operation fails to execute.
//
// Returns this process to allow chain calling.
func (p *Process) WithRetryInterval(interval time.Duration) *Process {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.retryInterval = interval

	return p
}

// WithOperation :
// Defines the core processing function to execute
// when needed.
//
// Returns this process to allow chain calling.
func (p *Process) WithOperation(operation OperationFunc) *Process {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.operation = operation

	return p
}

// Stop :
// Used to indicate the termination of the active
// loop for this process. It is used to prevent
// any further execution of the main operation
// callback. Blocks until the loop has exited.
func (p *Process) Stop() {
	p.lock.Lock()
	if !p.running {
		p.lock.Unlock()
		return
	}
	p.lock.Unlock()

	close(p.termination)
	p.waiter.Wait()
}

// Start :
// Used to start the process associated with
// this object. Note that we will check that
// the operation is valid otherwise an error
// is returned.
//
// Returns any error.
func (p *Process) Start() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}
	if p.operation == nil {
		return ErrInvalidOperation
	}

	p.running = true
	p.termination = make(chan struct{})
	p.waiter.Add(1)

	go p.activeLoop()

	return nil
}

// activeLoop :
// Main processing loop for this object. It
// will sleep for the required period of time
// and execute the attached operation, on repeat,
// until asked to terminate.
func (p *Process) activeLoop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	defer func() {
		if err := recover(); err != nil {
			p.log.Trace(logging.Critical, p.module, fmt.Sprintf("recovered from error in process (err: %v)", err))
		}

		p.lock.Lock()
		p.running = false
		p.lock.Unlock()

		p.waiter.Done()
	}()

	for {
		select {
		case <-p.termination:
			return
		case <-ticker.C:
			if err := p.execute(); err != nil {
				p.log.Trace(logging.Critical, p.module, fmt.Sprintf("caught error while executing process (err: %v)", err))
			}
		}
	}
}

// execute :
// Wrapper function allowing to execute the main
// operation bound to this process. The process
// will be retried as long as it does not succeed
// and the retry flag is set.
//
// Returns any error from the last attempt.
func (p *Process) execute() error {
	for {
		p.log.Trace(logging.Verbose, p.module, "executing process")

		success, err := p.operation()
		if err != nil {
			p.log.Trace(logging.Error, p.module, fmt.Sprintf("caught error while executing process (err: %v)", err))
		}

		if success || !p.retry {
			return err
		}

		p.lock.Lock()
		wait := p.retryInterval
		p.lock.Unlock()

		p.log.Trace(logging.Verbose, p.module, fmt.Sprintf("failed to execute process, retrying in %v", wait))
		time.Sleep(wait)
	}
}
