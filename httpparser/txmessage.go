package httpparser

import (
	"strconv"

	"golang.org/x/net/http/httpguts"
)

// txHeaders is the header list of an outgoing message. Unlike the
// received Headers collection it keeps names as given and emits them in
// the order they were added.
type txHeaders struct {
	names  []string
	values []string
}

// add validates one header field. A value whose serialised form would
// inject an extra blank line is a response-splitting attempt and is
// rejected; anything httpguts considers malformed is rejected too.
func (t *txHeaders) add(name, value string) error {
	if AreHeadersSplit(name + ": " + value + "\r\n") {
		return ErrHeaderSplitAttempt
	}
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return ErrMalformedSyntax
	}

	t.names = append(t.names, name)
	t.values = append(t.values, value)

	return nil
}

func (t *txHeaders) set(name, value string) {
	for i := range t.names {
		if t.names[i] == name {
			t.values[i] = value

			return
		}
	}

	t.names = append(t.names, name)
	t.values = append(t.values, value)
}

func (t *txHeaders) encode(dst []byte) []byte {
	for i := range t.names {
		dst = append(dst, t.names[i]...)
		dst = append(dst, ':', ' ')
		dst = append(dst, t.values[i]...)
		dst = append(dst, '\r', '\n')
	}

	return dst
}

// TxRequest builds an outgoing request: start line, headers and either a
// fixed-length body or chunked framing.
type TxRequest struct {
	method  string
	uri     string
	major   int
	minor   int
	headers txHeaders
	body    []byte
	chunked bool
}

// NewTxRequest starts an HTTP/1.1 request for the given method and
// request-target.
func NewTxRequest(method, uri string) *TxRequest {
	return &TxRequest{method: method, uri: uri, major: 1, minor: 1}
}

// Method returns the request method token.
func (t *TxRequest) Method() string {
	return t.method
}

// AddHeader appends a header field, rejecting malformed or
// message-splitting values.
func (t *TxRequest) AddHeader(name, value string) error {
	return t.headers.add(name, value)
}

// SetBody attaches a fixed-length body and its Content-Length header.
func (t *TxRequest) SetBody(body []byte) {
	t.body = body
	t.chunked = false
	t.headers.set("Content-Length", strconv.Itoa(len(body)))
}

// SetChunked switches the message to chunked framing. The body is then
// emitted by the host through AppendChunk and AppendFinalChunk.
func (t *TxRequest) SetChunked() {
	t.body = nil
	t.chunked = true
	t.headers.set("Transfer-Encoding", "chunked")
}

// Chunked reports whether the message uses chunked framing.
func (t *TxRequest) Chunked() bool {
	return t.chunked
}

// Encode emits the request head and, unless chunked, the body.
func (t *TxRequest) Encode() []byte {
	dst := EncodeRequestLine(nil, t.method, t.uri, t.major, t.minor)
	dst = t.headers.encode(dst)
	dst = append(dst, '\r', '\n')

	if !t.chunked {
		dst = append(dst, t.body...)
	}

	return dst
}

// TxResponse builds an outgoing response. An empty reason is filled from
// the standard reason-phrase table at encode time.
type TxResponse struct {
	code    int
	reason  string
	major   int
	minor   int
	headers txHeaders
	body    []byte
	chunked bool
}

// NewTxResponse starts an HTTP/1.1 response with the given status code.
func NewTxResponse(code int) *TxResponse {
	return &TxResponse{code: code, major: 1, minor: 1}
}

// SetReason overrides the standard reason phrase.
func (t *TxResponse) SetReason(reason string) {
	t.reason = reason
}

// AddHeader appends a header field, rejecting malformed or
// message-splitting values.
func (t *TxResponse) AddHeader(name, value string) error {
	return t.headers.add(name, value)
}

// SetBody attaches a fixed-length body and its Content-Length header.
func (t *TxResponse) SetBody(body []byte) {
	t.body = body
	t.chunked = false
	t.headers.set("Content-Length", strconv.Itoa(len(body)))
}

// SetChunked switches the message to chunked framing.
func (t *TxResponse) SetChunked() {
	t.body = nil
	t.chunked = true
	t.headers.set("Transfer-Encoding", "chunked")
}

// Chunked reports whether the message uses chunked framing.
func (t *TxResponse) Chunked() bool {
	return t.chunked
}

// Encode emits the response head and, unless chunked, the body.
func (t *TxResponse) Encode() []byte {
	reason := t.reason
	if reason == "" {
		reason = ReasonPhrase(t.code)
	}

	dst := EncodeStatusLine(nil, t.major, t.minor, t.code, reason)
	dst = t.headers.encode(dst)
	dst = append(dst, '\r', '\n')

	if !t.chunked {
		dst = append(dst, t.body...)
	}

	return dst
}
