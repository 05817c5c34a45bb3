package httpparser

import "strconv"

// StatusLine parses and holds "HTTP/M.N SP code SP reason CRLF".
// The reason phrase may be empty and may contain any byte except CR/LF.
type StatusLine struct {
	strictCRLF      bool
	maxWhitespace   int
	maxReasonLength int

	major      int
	minor      int
	code       int
	codeDigits int
	reason     []byte
	wsCount    int
	version    int
	state      statusLineState
}

func newStatusLine(settings Settings) StatusLine {
	return StatusLine{
		strictCRLF:      settings.StrictCRLF,
		maxWhitespace:   settings.MaxWhitespace,
		maxReasonLength: settings.MaxReasonLength,
		state:           statVersion,
	}
}

func (s *StatusLine) clear() {
	s.major = 0
	s.minor = 0
	s.code = 0
	s.codeDigits = 0
	s.reason = s.reason[:0]
	s.wsCount = 0
	s.version = 0
	s.state = statVersion
}

// parse consumes bytes from data starting at *pos until the status line
// is complete, data is exhausted, or a byte is rejected.
func (s *StatusLine) parse(data []byte, pos *int) (bool, error) {
	for *pos < len(data) {
		char := data[*pos]
		*pos++

		switch s.state {
		case statVersion:
			if char != httpVersionPrefix[s.version] {
				return false, ErrMalformedSyntax
			}

			s.version++
			if s.version == len(httpVersionPrefix) {
				s.state = statMajor
			}
		case statMajor:
			digit := DecDigit(char)
			if digit < 0 {
				return false, ErrMalformedSyntax
			}

			s.major = digit
			s.state = statDot
		case statDot:
			if char != '.' {
				return false, ErrMalformedSyntax
			}

			s.state = statMinor
		case statMinor:
			digit := DecDigit(char)
			if digit < 0 {
				return false, ErrMalformedSyntax
			}

			s.minor = digit
			s.wsCount = 0
			s.state = statCodeLS
		case statCodeLS:
			if IsSpaceOrTab(char) {
				s.wsCount++
				if s.wsCount > s.maxWhitespace {
					return false, ErrLengthExceeded
				}

				break
			}
			if s.wsCount == 0 {
				return false, ErrMalformedSyntax
			}

			s.state = statCode
			fallthrough
		case statCode:
			digit := DecDigit(char)
			if digit < 0 {
				return false, ErrMalformedSyntax
			}

			s.code = s.code*10 + digit
			s.codeDigits++

			if s.codeDigits == 3 {
				if s.code < 100 || s.code > 599 {
					return false, ErrMalformedSyntax
				}

				s.wsCount = 0
				s.state = statReasonLS
			}
		case statReasonLS:
			switch {
			case IsSpaceOrTab(char):
				s.wsCount++
				if s.wsCount > s.maxWhitespace {
					return false, ErrLengthExceeded
				}

				continue
			case char == '\r':
				s.state = statLF
				continue
			case char == '\n':
				if s.strictCRLF {
					return false, ErrStrictCRLFViolation
				}

				s.state = statValid

				return true, nil
			}

			// the reason phrase needs its separating space
			if s.wsCount == 0 {
				return false, ErrMalformedSyntax
			}

			s.state = statReason
			fallthrough
		case statReason:
			switch {
			case !IsEndOfLine(char):
				s.reason = append(s.reason, char)

				if len(s.reason) > s.maxReasonLength {
					return false, ErrLengthExceeded
				}
			case char == '\r':
				s.state = statLF
			default: // '\n'
				if s.strictCRLF {
					return false, ErrStrictCRLFViolation
				}

				s.state = statValid

				return true, nil
			}
		case statLF:
			if char != '\n' {
				return false, ErrMalformedSyntax
			}

			s.state = statValid

			return true, nil
		}
	}

	return false, nil
}

// Major returns the major version number.
func (s *StatusLine) Major() int {
	return s.major
}

// Minor returns the minor version number.
func (s *StatusLine) Minor() int {
	return s.minor
}

// Code returns the three-digit status code.
func (s *StatusLine) Code() int {
	return s.code
}

// Reason returns the reason phrase as received.
func (s *StatusLine) Reason() string {
	return string(s.reason)
}

// Valid reports whether a complete status line has been parsed.
func (s *StatusLine) Valid() bool {
	return s.state == statValid
}

// EncodeStatusLine emits the canonical "HTTP/M.N SP code SP reason CRLF".
func EncodeStatusLine(dst []byte, major, minor, code int, reason string) []byte {
	dst = append(dst, httpVersionPrefix...)
	dst = strconv.AppendInt(dst, int64(major), 10)
	dst = append(dst, '.')
	dst = strconv.AppendInt(dst, int64(minor), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(code), 10)
	dst = append(dst, ' ')
	dst = append(dst, reason...)

	return append(dst, '\r', '\n')
}
