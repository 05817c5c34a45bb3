package httpparser

import "errors"

var (
	ErrMalformedSyntax      = errors.New("byte not permitted by the current parsing state")
	ErrLengthExceeded       = errors.New("configured maximum exceeded")
	ErrStrictCRLFViolation  = errors.New("received LF without preceding CR")
	ErrInvalidContentLength = errors.New("invalid value for content-length header")
	ErrInvalidChunkSize     = errors.New("chunk size is not a valid hexadecimal number")
	ErrHeaderSplitAttempt   = errors.New("header value contains a message-splitting sequence")
	ErrReceiverDead         = errors.New("receiver already rejected the connection")
)
