package httpparser

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Rx is the signal a receiver emits to the host on each fed byte range.
type Rx uint8

const (
	RxInvalid        Rx = iota // the message is invalid, the receiver is dead
	RxExpectContinue           // the client expects a 100 Continue response
	RxIncomplete               // more data is required
	RxValid                    // a complete request or response
	RxChunk                    // a complete body chunk
)

func (rx Rx) String() string {
	switch rx {
	case RxInvalid:
		return "INVALID"
	case RxExpectContinue:
		return "EXPECT_CONTINUE"
	case RxIncomplete:
		return "INCOMPLETE"
	case RxValid:
		return "VALID"
	case RxChunk:
		return "CHUNK"
	default:
		return "UNKNOWN"
	}
}

// receiverCore is the body and chunk engine shared by the request and
// response receivers.
type receiverCore struct {
	settings Settings

	headers     *Headers
	body        []byte
	chunks      chunkParser
	state       rxState
	remaining   int64
	chunkedSize int64
	err         error
}

func (c *receiverCore) init(settings Settings) {
	c.settings = settings
	c.headers = NewHeaders(settings)
	c.chunks = newChunkParser(settings)
	c.state = rxStart
}

func (c *receiverCore) reset() {
	c.headers.Clear()
	c.body = c.body[:0]
	c.chunks.clear()
	c.state = rxStart
	c.remaining = 0
	c.chunkedSize = 0
	c.err = nil
}

func (c *receiverCore) die(err error) Rx {
	c.state = rxDead
	c.err = err

	return RxInvalid
}

// routeBody decides the body framing once the headers are complete.
// Returns RxValid when the message has no body, RxInvalid on a framing
// error, and RxIncomplete when body or chunk data follows.
func (c *receiverCore) routeBody(contentLength int64) Rx {
	if contentLength < 0 {
		return c.die(ErrInvalidContentLength)
	}

	if value, ok := c.headers.fields["transfer-encoding"]; ok && !validTransferEncoding(value) {
		return c.die(ErrMalformedSyntax)
	}

	if c.headers.IsChunked() {
		c.state = rxChunk

		return RxIncomplete
	}

	if contentLength > c.settings.MaxBodySize {
		return c.die(ErrLengthExceeded)
	}

	if contentLength > 0 {
		c.remaining = contentLength
		c.state = rxBody

		return RxIncomplete
	}

	c.state = rxEnd

	return RxValid
}

// consumeBody copies up to remaining octets into the body buffer.
func (c *receiverCore) consumeBody(data []byte, pos *int) Rx {
	n := int64(len(data) - *pos)
	if n > c.remaining {
		n = c.remaining
	}

	c.body = append(c.body, data[*pos:*pos+int(n)]...)
	*pos += int(n)
	c.remaining -= n

	if c.remaining > 0 {
		return RxIncomplete
	}

	c.state = rxEnd

	return RxValid
}

// consumeChunk drives the chunk engine until the next structural event.
func (c *receiverCore) consumeChunk(data []byte, pos *int) (Rx, error) {
	if c.chunks.state == chunkDone {
		c.chunks.nextChunk()
	}

	event, err := c.chunks.parse(data, pos)
	if err != nil {
		return RxInvalid, err
	}

	switch event {
	case chunkEventChunk:
		c.chunkedSize += c.chunks.size
		if c.chunkedSize > c.settings.MaxBodySize {
			return RxInvalid, ErrLengthExceeded
		}

		return RxChunk, nil
	case chunkEventLast:
		c.state = rxEnd

		return RxValid, nil
	default:
		return RxIncomplete, nil
	}
}

// Headers returns the parsed header collection.
func (c *receiverCore) Headers() *Headers {
	return c.headers
}

// Body returns the accumulated fixed-length body.
func (c *receiverCore) Body() []byte {
	return c.body
}

// Chunk returns the header and data of the chunk that produced the last
// RxChunk signal. The data view is valid until the next Receive call.
func (c *receiverCore) Chunk() (ChunkHeader, []byte) {
	return c.chunks.header(), c.chunks.data
}

// Trailers returns the trailer headers of a chunked message, populated
// once RxValid has been emitted.
func (c *receiverCore) Trailers() *Headers {
	return c.chunks.trailers
}

// Err returns the error kind that made the receiver emit RxInvalid.
func (c *receiverCore) Err() error {
	return c.err
}

// validTransferEncoding accepts a transfer-encoding value whose final
// coding is either "chunked" or "identity". Anything else is a coding
// this parser cannot frame.
func validTransferEncoding(value string) bool {
	codings := strings.Split(value, ",")
	last := strings.TrimSpace(codings[len(codings)-1])

	return strcomp.EqualFold(last, "chunked") || strcomp.EqualFold(last, identityCoding)
}

// RequestReceiver sequences request-line, headers and body. Feed bytes
// with Receive; residual bytes after RxValid belong to the next message
// and stay with the host.
type RequestReceiver struct {
	line            RequestLine
	expectSignalled bool
	receiverCore
}

func NewRequestReceiver(settings Settings) *RequestReceiver {
	settings = PrepareSettings(settings)

	r := &RequestReceiver{line: newRequestLine(settings)}
	r.init(settings)

	return r
}

// Reset prepares the receiver for the next message on the connection.
// It keeps all allocated storage.
func (r *RequestReceiver) Reset() {
	r.line.clear()
	r.expectSignalled = false
	r.reset()
}

// Request returns the parsed request line.
func (r *RequestReceiver) Request() *RequestLine {
	return &r.line
}

// Receive feeds a byte range to the receiver. It returns the signal and
// the number of bytes consumed; bytes beyond the returned count have not
// been examined.
func (r *RequestReceiver) Receive(data []byte) (Rx, int) {
	pos := 0

	switch r.state {
	case rxDead:
		return RxInvalid, 0
	case rxEnd:
		return RxValid, 0
	}

	for pos < len(data) {
		switch r.state {
		case rxStart:
			done, err := r.line.parse(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if !done {
				return RxIncomplete, pos
			}

			r.state = rxHeader
		case rxHeader:
			done, err := r.headers.Parse(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if !done {
				return RxIncomplete, pos
			}

			if rx := r.routeBody(r.headers.ContentLength()); rx != RxIncomplete {
				return rx, pos
			}

			if r.headers.ExpectContinue() && !r.expectSignalled {
				r.expectSignalled = true

				return RxExpectContinue, pos
			}
		case rxBody:
			if rx := r.consumeBody(data, &pos); rx != RxIncomplete {
				return rx, pos
			}
		case rxChunk:
			rx, err := r.consumeChunk(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if rx != RxIncomplete {
				return rx, pos
			}
		}
	}

	return RxIncomplete, pos
}

// ResponseReceiver sequences status-line, headers and body for the
// client side of a connection.
type ResponseReceiver struct {
	line         StatusLine
	headResponse bool
	receiverCore
}

func NewResponseReceiver(settings Settings) *ResponseReceiver {
	settings = PrepareSettings(settings)

	r := &ResponseReceiver{line: newStatusLine(settings)}
	r.init(settings)

	return r
}

// Reset prepares the receiver for the next message on the connection.
func (r *ResponseReceiver) Reset() {
	r.line.clear()
	r.headResponse = false
	r.reset()
}

// SetHeadResponse tells the receiver that the next response answers a
// HEAD request, so any Content-Length or Transfer-Encoding header
// describes a body that will not be sent. The hint comes from the
// request-response correlator owned by the host.
func (r *ResponseReceiver) SetHeadResponse(head bool) {
	r.headResponse = head
}

// Response returns the parsed status line.
func (r *ResponseReceiver) Response() *StatusLine {
	return &r.line
}

// Receive feeds a byte range to the receiver. It returns the signal and
// the number of bytes consumed.
func (r *ResponseReceiver) Receive(data []byte) (Rx, int) {
	pos := 0

	switch r.state {
	case rxDead:
		return RxInvalid, 0
	case rxEnd:
		return RxValid, 0
	}

	for pos < len(data) {
		switch r.state {
		case rxStart:
			done, err := r.line.parse(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if !done {
				return RxIncomplete, pos
			}

			r.state = rxHeader
		case rxHeader:
			done, err := r.headers.Parse(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if !done {
				return RxIncomplete, pos
			}

			contentLength := r.headers.ContentLength()
			if r.headResponse {
				// the HEAD response has headers only
				r.state = rxEnd

				return RxValid, pos
			}

			if rx := r.routeBody(contentLength); rx != RxIncomplete {
				return rx, pos
			}
		case rxBody:
			if rx := r.consumeBody(data, &pos); rx != RxIncomplete {
				return rx, pos
			}
		case rxChunk:
			rx, err := r.consumeChunk(data, &pos)
			if err != nil {
				return r.die(err), pos
			}
			if rx != RxIncomplete {
				return rx, pos
			}
		}
	}

	return RxIncomplete, pos
}
