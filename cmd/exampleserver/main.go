// Command exampleserver is a minimal embedder demonstrating the core: a
// handful of routes wired directly through handler.Composite, no router
// package involved, matching the teacher's own bare examples/ style.
package main

import (
	"log"
	"strconv"

	"github.com/originhttp/core/acceptor"
	"github.com/originhttp/core/config"
	"github.com/originhttp/core/handler"
	"github.com/originhttp/core/logging"
	"github.com/originhttp/core/request"
	"github.com/originhttp/core/status"
)

var addr = "localhost:9090"

func hello(req *request.Request) (handler.Result, error) {
	if req.URI != "/hello" {
		return handler.NotHandled, nil
	}

	return handler.Handled("hello, world"), nil
}

func echo(req *request.Request) (handler.Result, error) {
	if req.URI != "/echo" {
		return handler.NotHandled, nil
	}

	body, err := req.BodyOctets()
	if err != nil {
		return handler.Abort(req, status.BadRequest), nil
	}

	return handler.Handled(string(body)), nil
}

func say(req *request.Request) (handler.Result, error) {
	if req.URI != "/say" {
		return handler.NotHandled, nil
	}

	f, err := req.PostParameters()
	if err != nil {
		return handler.Abort(req, status.BadRequest), nil
	}

	if f == nil {
		return handler.Handled("no body received"), nil
	}

	name, _ := f.Get("name")

	return handler.Handled("received " + strconv.Quote(name) + ", thank you!"), nil
}

func countUploaded(req *request.Request) (handler.Result, error) {
	if req.URI != "/upload" {
		return handler.NotHandled, nil
	}

	f, err := req.PostParameters()
	if err != nil {
		return handler.Abort(req, status.BadRequest), nil
	}

	n := 0
	for _, e := range f.All() {
		if e.File != nil {
			n++
		}
	}

	return handler.Handled(strconv.Itoa(n) + " file(s) received"), nil
}

func main() {
	cfg := config.Default()

	routes := handler.Composite{
		handler.Func(hello),
		handler.Func(echo),
		handler.Func(say),
		handler.Func(countUploaded),
	}

	a := acceptor.New(addr, cfg, routes)
	a.Name = cfg.Name
	a.MessageLogger = logging.NewStderr()
	a.AccessLogger = logging.NewStderr()

	log.Println("listening on", addr)
	log.Fatal(a.Start())
}
