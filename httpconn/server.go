package httpconn

import (
	"golang.org/x/net/http/httpguts"

	"github.com/JanSimek/via-httplib/httpparser"
)

var continueResponse = []byte("HTTP/1.1 100 Continue\r\n\r\n")

// ServerHandler receives the structural events of one server-side
// connection. Callbacks run on the thread that called OnBytes.
type ServerHandler interface {
	// OnRequest is called once a complete request has been received.
	// The connection's receiver holds the request until OnRequest
	// returns.
	OnRequest(conn *ServerConnection)
	// OnChunk is called for each body chunk of a chunked request.
	OnChunk(conn *ServerConnection)
	// OnError is called when the peer sent a malformed message. A
	// 400 Bad Request has already been sent and the transport closed.
	OnError(err error)
}

// ServerConnection drives a RequestReceiver over one transport. The
// host's event loop feeds it with OnBytes; the handler answers through
// SendResponse and the chunk senders.
type ServerConnection struct {
	transport    Transport
	handler      ServerHandler
	receiver     *httpparser.RequestReceiver
	autoContinue bool
	shouldClose  bool
}

func NewServerConnection(transport Transport, handler ServerHandler, settings httpparser.Settings) *ServerConnection {
	return &ServerConnection{
		transport:    transport,
		handler:      handler,
		receiver:     httpparser.NewRequestReceiver(settings),
		autoContinue: true,
	}
}

// SetAutoContinue controls whether the connection answers
// "Expect: 100-continue" with an interim 100 Continue by itself.
// Enabled by default.
func (c *ServerConnection) SetAutoContinue(enabled bool) {
	c.autoContinue = enabled
}

// Receiver exposes the connection's request receiver for the handler's
// accessors.
func (c *ServerConnection) Receiver() *httpparser.RequestReceiver {
	return c.receiver
}

// OnBytes feeds newly received octets into the connection. Pipelined
// requests in one buffer are dispatched one by one.
func (c *ServerConnection) OnBytes(data []byte) error {
	for {
		rx, n := c.receiver.Receive(data)
		data = data[n:]

		switch rx {
		case httpparser.RxIncomplete:
			return nil
		case httpparser.RxExpectContinue:
			if c.autoContinue {
				if err := c.transport.Send(continueResponse); err != nil {
					return err
				}
			}
		case httpparser.RxChunk:
			c.handler.OnChunk(c)
		case httpparser.RxValid:
			c.shouldClose = closeRequested(c.receiver)
			c.handler.OnRequest(c)
			c.receiver.Reset()

			if len(data) == 0 {
				return nil
			}
		case httpparser.RxInvalid:
			err := c.receiver.Err()
			c.reject()
			c.handler.OnError(err)

			return err
		}
	}
}

// SendResponse encodes and sends the response head and any fixed-length
// body. A chunked response is finished by the host with SendChunk and
// SendFinalChunk.
func (c *ServerConnection) SendResponse(response *httpparser.TxResponse) error {
	if c.shouldClose {
		if err := response.AddHeader("Connection", "close"); err != nil {
			return err
		}
	}

	if err := c.transport.Send(response.Encode()); err != nil {
		return err
	}

	if !response.Chunked() && c.shouldClose {
		return c.transport.Close()
	}

	return nil
}

// SendChunk frames and sends one chunk of a chunked response body.
func (c *ServerConnection) SendChunk(data []byte) error {
	return c.transport.Send(httpparser.AppendChunk(nil, data))
}

// SendFinalChunk terminates a chunked response body.
func (c *ServerConnection) SendFinalChunk(trailers *httpparser.Headers) error {
	if err := c.transport.Send(httpparser.AppendFinalChunk(nil, trailers)); err != nil {
		return err
	}

	if c.shouldClose {
		return c.transport.Close()
	}

	return nil
}

// reject answers a malformed message and shuts the connection down.
func (c *ServerConnection) reject() {
	bad := httpparser.NewTxResponse(httpparser.StatusBadRequest)
	_ = bad.AddHeader("Connection", "close")
	bad.SetBody(nil)
	_ = c.transport.Send(bad.Encode())
	_ = c.transport.Close()
}

// closeRequested decides whether the connection closes after this
// request: an explicit "Connection: close", or HTTP/1.0 without an
// explicit keep-alive.
func closeRequested(receiver *httpparser.RequestReceiver) bool {
	headers := receiver.Headers()
	if headers.CloseConnection() {
		return true
	}

	line := receiver.Request()
	if line.Major() == 1 && line.Minor() == 0 {
		connection := headers.Find("Connection")

		return !httpguts.HeaderValuesContainsToken([]string{connection}, "keep-alive")
	}

	return false
}
