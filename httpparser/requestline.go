package httpparser

import (
	"strconv"

	"github.com/scott-ainsworth/go-ascii"
)

// Standard request method tokens.
var (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodConnect = "CONNECT"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
	MethodPatch   = "PATCH"
)

const httpVersionPrefix = "HTTP/"

// RequestLine parses and holds "METHOD SP request-target SP HTTP/M.N CRLF".
// The request-target is opaque to the parser beyond being printable.
type RequestLine struct {
	strictCRLF      bool
	maxWhitespace   int
	maxMethodLength int
	maxURILength    int

	method  []byte
	uri     []byte
	major   int
	minor   int
	wsCount int
	version int
	state   requestLineState
}

func newRequestLine(settings Settings) RequestLine {
	return RequestLine{
		strictCRLF:      settings.StrictCRLF,
		maxWhitespace:   settings.MaxWhitespace,
		maxMethodLength: settings.MaxMethodLength,
		maxURILength:    settings.MaxURILength,
		state:           reqMethod,
	}
}

func (r *RequestLine) clear() {
	r.method = r.method[:0]
	r.uri = r.uri[:0]
	r.major = 0
	r.minor = 0
	r.wsCount = 0
	r.version = 0
	r.state = reqMethod
}

// parse consumes bytes from data starting at *pos until the request line
// is complete, data is exhausted, or a byte is rejected.
func (r *RequestLine) parse(data []byte, pos *int) (bool, error) {
	for *pos < len(data) {
		char := data[*pos]
		*pos++

		switch r.state {
		case reqMethod:
			switch {
			case char == ' ':
				if len(r.method) == 0 {
					return false, ErrMalformedSyntax
				}

				r.wsCount = 1
				r.state = reqURILS
			case IsTchar(char):
				r.method = append(r.method, char)

				if len(r.method) > r.maxMethodLength {
					return false, ErrLengthExceeded
				}
			default:
				return false, ErrMalformedSyntax
			}
		case reqURILS:
			if IsSpaceOrTab(char) {
				r.wsCount++
				if r.wsCount > r.maxWhitespace {
					return false, ErrLengthExceeded
				}

				break
			}

			r.state = reqURI
			fallthrough
		case reqURI:
			switch {
			case char == ' ':
				if len(r.uri) == 0 {
					return false, ErrMalformedSyntax
				}

				r.wsCount = 1
				r.state = reqVersionLS
			case ascii.IsPrint(char):
				r.uri = append(r.uri, char)

				if len(r.uri) > r.maxURILength {
					return false, ErrLengthExceeded
				}
			default:
				return false, ErrMalformedSyntax
			}
		case reqVersionLS:
			if IsSpaceOrTab(char) {
				r.wsCount++
				if r.wsCount > r.maxWhitespace {
					return false, ErrLengthExceeded
				}

				break
			}

			r.state = reqVersion
			fallthrough
		case reqVersion:
			if char != httpVersionPrefix[r.version] {
				return false, ErrMalformedSyntax
			}

			r.version++
			if r.version == len(httpVersionPrefix) {
				r.state = reqMajor
			}
		case reqMajor:
			digit := DecDigit(char)
			if digit < 0 {
				return false, ErrMalformedSyntax
			}

			r.major = digit
			r.state = reqDot
		case reqDot:
			if char != '.' {
				return false, ErrMalformedSyntax
			}

			r.state = reqMinor
		case reqMinor:
			digit := DecDigit(char)
			if digit < 0 {
				return false, ErrMalformedSyntax
			}

			r.minor = digit
			r.state = reqCR
		case reqCR:
			switch char {
			case '\r':
				r.state = reqLF
			case '\n':
				if r.strictCRLF {
					return false, ErrStrictCRLFViolation
				}

				r.state = reqValid

				return true, nil
			default:
				return false, ErrMalformedSyntax
			}
		case reqLF:
			if char != '\n' {
				return false, ErrMalformedSyntax
			}

			r.state = reqValid

			return true, nil
		}
	}

	return false, nil
}

// Method returns the request method token.
func (r *RequestLine) Method() string {
	return string(r.method)
}

// URI returns the raw request-target.
func (r *RequestLine) URI() string {
	return string(r.uri)
}

// Major returns the major version number.
func (r *RequestLine) Major() int {
	return r.major
}

// Minor returns the minor version number.
func (r *RequestLine) Minor() int {
	return r.minor
}

// Valid reports whether a complete request line has been parsed.
func (r *RequestLine) Valid() bool {
	return r.state == reqValid
}

// EncodeRequestLine emits the canonical "METHOD SP uri SP HTTP/M.N CRLF".
func EncodeRequestLine(dst []byte, method, uri string, major, minor int) []byte {
	dst = append(dst, method...)
	dst = append(dst, ' ')
	dst = append(dst, uri...)
	dst = append(dst, ' ')
	dst = append(dst, httpVersionPrefix...)
	dst = strconv.AppendInt(dst, int64(major), 10)
	dst = append(dst, '.')
	dst = strconv.AppendInt(dst, int64(minor), 10)

	return append(dst, '\r', '\n')
}
