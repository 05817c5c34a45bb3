package httpconn

import (
	"github.com/indigo-web/utils/strcomp"

	"github.com/JanSimek/via-httplib/httpparser"
)

// ClientHandler receives the structural events of one client-side
// connection.
type ClientHandler interface {
	// OnResponse is called for every complete response, including
	// interim 1xx responses; check the status code to tell them apart.
	OnResponse(conn *ClientConnection)
	// OnChunk is called for each body chunk of a chunked response.
	OnChunk(conn *ClientConnection)
	// OnError is called when the server sent a malformed message; the
	// transport has been closed.
	OnError(err error)
}

// ClientConnection drives a ResponseReceiver over one transport and
// correlates responses with the requests sent on it, so that a response
// to a HEAD request is framed as headers-only regardless of its
// Content-Length.
type ClientConnection struct {
	transport Transport
	handler   ClientHandler
	receiver  *httpparser.ResponseReceiver
	pending   []string // methods of requests awaiting a final response
}

func NewClientConnection(transport Transport, handler ClientHandler, settings httpparser.Settings) *ClientConnection {
	return &ClientConnection{
		transport: transport,
		handler:   handler,
		receiver:  httpparser.NewResponseReceiver(settings),
	}
}

// Receiver exposes the connection's response receiver for the handler's
// accessors.
func (c *ClientConnection) Receiver() *httpparser.ResponseReceiver {
	return c.receiver
}

// SendRequest encodes and sends the request head and any fixed-length
// body, and queues the method for response correlation. A chunked
// request is finished with SendChunk and SendFinalChunk.
func (c *ClientConnection) SendRequest(request *httpparser.TxRequest) error {
	if err := c.transport.Send(request.Encode()); err != nil {
		return err
	}

	c.pending = append(c.pending, request.Method())
	if len(c.pending) == 1 {
		c.correlate()
	}

	return nil
}

// SendChunk frames and sends one chunk of a chunked request body.
func (c *ClientConnection) SendChunk(data []byte) error {
	return c.transport.Send(httpparser.AppendChunk(nil, data))
}

// SendFinalChunk terminates a chunked request body.
func (c *ClientConnection) SendFinalChunk(trailers *httpparser.Headers) error {
	return c.transport.Send(httpparser.AppendFinalChunk(nil, trailers))
}

// OnBytes feeds newly received octets into the connection.
func (c *ClientConnection) OnBytes(data []byte) error {
	for {
		rx, n := c.receiver.Receive(data)
		data = data[n:]

		switch rx {
		case httpparser.RxIncomplete:
			return nil
		case httpparser.RxExpectContinue:
			// responses never carry Expect; nothing to do
		case httpparser.RxChunk:
			c.handler.OnChunk(c)
		case httpparser.RxValid:
			interim := c.receiver.Response().Code() < 200
			c.handler.OnResponse(c)

			if !interim && len(c.pending) > 0 {
				c.pending = c.pending[1:]
			}

			c.receiver.Reset()
			c.correlate()

			if len(data) == 0 {
				return nil
			}
		case httpparser.RxInvalid:
			err := c.receiver.Err()
			_ = c.transport.Close()
			c.handler.OnError(err)

			return err
		}
	}
}

// correlate arms the HEAD hint for the next expected response.
func (c *ClientConnection) correlate() {
	head := len(c.pending) > 0 && strcomp.EqualFold(c.pending[0], httpparser.MethodHead)
	c.receiver.SetHeadResponse(head)
}
