package httpparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxRequestEncode(t *testing.T) {
	request := NewTxRequest(MethodGet, "/hello")
	require.NoError(t, request.AddHeader("Host", "example.com"))
	require.NoError(t, request.AddHeader("Accept", "*/*"))

	wire := request.Encode()
	require.Equal(t, "GET /hello HTTP/1.1\r\nHost: example.com\r\nAccept: */*\r\n\r\n", string(wire))
}

func TestTxRequestBody(t *testing.T) {
	request := NewTxRequest(MethodPost, "/submit")
	require.NoError(t, request.AddHeader("Host", "example.com"))
	request.SetBody([]byte("Hello, world!"))

	wire := request.Encode()
	require.Equal(t,
		"POST /submit HTTP/1.1\r\nHost: example.com\r\nContent-Length: 13\r\n\r\nHello, world!",
		string(wire))
}

func TestTxRequestChunked(t *testing.T) {
	request := NewTxRequest(MethodPost, "/stream")
	request.SetChunked()

	wire := request.Encode()
	require.Equal(t, "POST /stream HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n", string(wire))
	require.True(t, request.Chunked())

	wire = AppendChunk(wire, []byte("hello"))
	wire = AppendFinalChunk(wire, nil)

	r := NewRequestReceiver(Settings{})
	events := feedReceiver(r.Receive, wire, 1)
	require.Equal(t, []Rx{RxChunk, RxValid}, events)
}

func TestTxResponseEncode(t *testing.T) {
	response := NewTxResponse(StatusOK)
	require.NoError(t, response.AddHeader("Server", "via"))
	response.SetBody([]byte("hi"))

	wire := response.Encode()
	require.Equal(t, "HTTP/1.1 200 OK\r\nServer: via\r\nContent-Length: 2\r\n\r\nhi", string(wire))
}

func TestTxResponseCustomReason(t *testing.T) {
	response := NewTxResponse(299)
	response.SetReason("Fine I Guess")

	wire := response.Encode()
	require.Equal(t, "HTTP/1.1 299 Fine I Guess\r\n\r\n", string(wire))
}

func TestTxResponseUnknownCodeEmptyReason(t *testing.T) {
	response := NewTxResponse(567)

	wire := response.Encode()
	require.Equal(t, "HTTP/1.1 567 \r\n\r\n", string(wire))
}

func TestAddHeaderRejectsSplitting(t *testing.T) {
	request := NewTxRequest(MethodGet, "/")

	err := request.AddHeader("X-Bad", "v\r\n\r\nInjected: y")
	require.ErrorIs(t, err, ErrHeaderSplitAttempt)

	err = request.AddHeader("X-Bad", "v\n\nInjected: y")
	require.ErrorIs(t, err, ErrHeaderSplitAttempt)
}

func TestAddHeaderRejectsControlBytes(t *testing.T) {
	request := NewTxRequest(MethodGet, "/")

	require.Error(t, request.AddHeader("X-Bad", "a\rb"))
	require.Error(t, request.AddHeader("Bad Name", "v"))
	require.Error(t, request.AddHeader("X-Bad", "a\x00b"))
}

func TestSetBodyReplacesContentLength(t *testing.T) {
	response := NewTxResponse(StatusOK)
	response.SetBody([]byte("one"))
	response.SetBody([]byte("longer body"))

	wire := response.Encode()
	require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 11\r\n\r\nlonger body", string(wire))
}

// A message produced by the builder always parses back to itself.
func TestTxRoundTrip(t *testing.T) {
	request := NewTxRequest(MethodPut, "/res/1")
	require.NoError(t, request.AddHeader("Host", "example.com"))
	require.NoError(t, request.AddHeader("Content-Type", "text/plain"))
	request.SetBody([]byte("payload"))

	wire := request.Encode()
	require.False(t, AreHeadersSplit(string(request.headers.encode(nil))))

	r := NewRequestReceiver(Settings{})
	events := feedReceiver(r.Receive, wire, 3)
	require.Equal(t, []Rx{RxValid}, events)
	require.Equal(t, "PUT", r.Request().Method())
	require.Equal(t, "/res/1", r.Request().URI())
	require.Equal(t, "example.com", r.Headers().Find("host"))
	require.Equal(t, "payload", string(r.Body()))

	// and encoding the parsed form reproduces the wire head, modulo
	// the lowercased field names
	head := EncodeRequestLine(nil, r.Request().Method(), r.Request().URI(), 1, 1)
	head = append(head, r.Headers().String()...)
	head = append(head, '\r', '\n')
	require.Equal(t,
		"PUT /res/1 HTTP/1.1\r\nhost: example.com\r\ncontent-type: text/plain\r\ncontent-length: 7\r\n\r\n",
		string(head))
}
