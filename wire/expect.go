package wire

import (
	"github.com/originhttp/core/headers"
	"github.com/originhttp/core/internal/netio"
)

var continueResponse = []byte("HTTP/1.1 100 Continue\r\n\r\n")

// HandleExpectContinue emits the 100-continue interim response and flushes
// it if the Expect header requests it (spec §4.1). The spec permits
// replying 417 instead when the server can't satisfy the request; this
// core always accepts, matching the documented Open Question decision.
func HandleExpectContinue(client netio.Client, h *headers.Headers) error {
	expect, ok := h.Get("EXPECT")
	if !ok || !headers.HasToken(expect, "100-continue") {
		return nil
	}

	return client.Write(continueResponse)
}
