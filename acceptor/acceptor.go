// Package acceptor implements the listening-socket lifecycle (spec §3
// Acceptor, §4.2 start/stop) and drives one Engine per accepted connection
// through a pluggable Taskmaster. Grounded on the teacher's App/tcp.Server
// pair in indi.go and internal/server/tcp/server.go, split here into two
// pieces (Taskmaster owns fan-out, Acceptor owns the socket and shutdown
// bookkeeping) the way spec §4.2/§4.3 separate the two concerns.
package acceptor

import (
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"

	"github.com/originhttp/core/config"
	"github.com/originhttp/core/corerr"
	"github.com/originhttp/core/engine"
	"github.com/originhttp/core/form"
	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/corelog"
	"github.com/originhttp/core/logging"
	"github.com/originhttp/core/taskmaster"
	"github.com/originhttp/core/tlswrap"
	"github.com/originhttp/core/wire"
)

// Acceptor owns a listening socket, its Engine, and the shutdown bookkeeping
// spec §5 requires: an in-flight request counter guarded by a mutex/cond so
// Stop(true) can drain outstanding requests before returning.
type Acceptor struct {
	Name    string
	Address string

	Config         *config.Config
	Handler        handler.Handler
	ErrorGenerator handler.ErrorGenerator
	AccessLogger   logging.AccessLogger
	MessageLogger  logging.MessageLogger
	TLS            tlswrap.Wrapper

	Taskmaster taskmaster.Taskmaster

	listener net.Listener
	engine   *engine.Engine
	sweeper  *form.Sweeper

	mu          sync.Mutex
	cond        *sync.Cond
	inFlight    int
	shutdown    atomic.Bool
	started     atomic.Bool
}

// New fills in defaults for any unset collaborator, matching the teacher's
// habit of tolerating a bare-minimum App{addr} construction.
func New(addr string, cfg *config.Config, h handler.Handler) *Acceptor {
	a := &Acceptor{
		Address:        addr,
		Config:         cfg,
		Handler:        h,
		ErrorGenerator: handler.DefaultErrorGenerator{
			ShowErrors:     cfg.Logging.ShowErrorsInErrorPage,
			ShowBacktraces: cfg.Logging.ShowBacktracesInErrorPage,
		},
		AccessLogger:   logging.NewStderr(),
		MessageLogger:  logging.NewStderr(),
		Taskmaster:     taskmaster.SingleThreaded{},
	}
	a.cond = sync.NewCond(&a.mu)

	return a
}

// Start implements spec §4.2 start(acceptor): binds the listening socket,
// builds the Engine, and hands the accept loop to the Taskmaster.
// Whether Start blocks depends entirely on the Taskmaster: SingleThreaded
// runs the accept loop on the calling goroutine, so Start doesn't return
// until the listener closes; ThreadPerConnection runs its own accept-loop
// goroutine, so Start returns as soon as the socket is bound.
func (a *Acceptor) Start() error {
	if a.started.Swap(true) {
		return corerr.ErrAlreadyStarted
	}

	ln, err := listenTCP(a.Address, a.Config.NET.ListenBacklog)
	if err != nil {
		a.started.Store(false)
		return err
	}

	a.listener = ln

	a.engine = engine.New(a.Config, a.Handler, a.ErrorGenerator, a.AccessLogger, a.MessageLogger, a.TLS, engine.Hooks{
		BeginRequest: a.BeginConnection,
		EndRequest:   a.EndConnection,
		ShuttingDown: a.ShuttingDown,
	})

	a.sweeper = form.NewSweeper(a.Config.Body.Form.TempDir, a.Config.Body.Form.SweepInterval)
	a.sweeper.Start()

	a.Taskmaster.ExecuteAcceptor(a)

	return nil
}

// Stop implements spec §4.2 stop(acceptor, soft). soft=false closes the
// listener and returns immediately, leaving in-flight connections to finish
// or be cut off by their own read/write timeouts. soft=true additionally
// blocks until every in-flight request has completed, looping on the
// condition variable rather than a single Wait to tolerate spurious wakeups
// (the documented resolution to the corresponding Open Question).
func (a *Acceptor) Stop(soft bool) error {
	if !a.started.Load() {
		return corerr.ErrNotStarted
	}

	a.shutdown.Store(true)
	a.Taskmaster.Shutdown()
	a.sweeper.Stop()

	err := a.listener.Close()

	if !soft {
		return err
	}

	a.mu.Lock()
	for a.inFlight > 0 {
		a.cond.Wait()
	}
	a.mu.Unlock()

	return err
}

// Accept, ShuttingDown, BeginConnection, EndConnection, ServeConnection and
// RejectConnection implement taskmaster.AcceptorHandle.

func (a *Acceptor) Accept() (net.Conn, error) {
	return a.listener.Accept()
}

func (a *Acceptor) ShuttingDown() bool {
	return a.shutdown.Load()
}

func (a *Acceptor) BeginConnection() {
	a.mu.Lock()
	a.inFlight++
	a.mu.Unlock()
}

func (a *Acceptor) EndConnection() {
	a.mu.Lock()
	a.inFlight--
	if a.inFlight == 0 {
		a.cond.Broadcast()
	}
	a.mu.Unlock()
}

func (a *Acceptor) ServeConnection(conn net.Conn) {
	a.engine.Run(conn)
}

// RejectConnection answers an overload-rejected connection with a bare 503
// and closes it (spec §4.3 "the Taskmaster answers with a 503 response
// itself, without invoking the Engine").
func (a *Acceptor) RejectConnection(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	h := headers.New()
	h.Set("Connection", "close")
	h.Set("Content-Length", "0")

	buf := make([]byte, 0, 64)
	buf = append(buf, "HTTP/1.1 503 Service Unavailable\r\n"...)

	if _, err := conn.Write(buf); err != nil {
		corelog.Printf("reject connection: %v", err)
		return
	}

	client := writeOnlyClient{conn}
	if err := wire.WriteHeaders(client, h, nil); err != nil {
		corelog.Printf("reject connection: %v", err)
	}
}

// writeOnlyClient adapts a bare net.Conn to the small write surface
// wire.WriteHeaders needs, for the one place (overload rejection) where a
// full netio.Client hasn't been built yet.
type writeOnlyClient struct {
	conn net.Conn
}

func (w writeOnlyClient) Write(b []byte) error {
	_, err := w.conn.Write(b)
	return err
}

func (w writeOnlyClient) Read() ([]byte, error)   { return nil, nil }
func (w writeOnlyClient) Unread([]byte)           {}
func (w writeOnlyClient) RemoteAddr() net.Addr    { return w.conn.RemoteAddr() }
func (w writeOnlyClient) Close() error            { return w.conn.Close() }

// WithTLSConfig is a convenience for embedders who already hold a
// *tls.Config (e.g. built with tlswrap.FromFiles's underlying pieces or a
// hand-assembled one), mirroring the teacher's App.TLS/HTTPS split between
// "I have files" and "I have a listener constructor".
func (a *Acceptor) WithTLSConfig(c *tls.Config) *Acceptor {
	a.TLS = tlswrap.FromTLSConfig(c)
	return a
}
