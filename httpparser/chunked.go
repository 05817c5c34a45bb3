package httpparser

import "strconv"

// ChunkHeader is the size line of one chunk: a hexadecimal size and an
// optional extension (the raw text after ';', ignored but size-capped).
type ChunkHeader struct {
	Size      int64
	Extension string
}

// IsLast reports whether this is the terminating zero-sized chunk.
func (c ChunkHeader) IsLast() bool {
	return c.Size == 0
}

type chunkEvent uint8

const (
	chunkEventNone chunkEvent = iota // more data required
	chunkEventChunk                  // one complete data chunk
	chunkEventLast                   // zero-chunk and trailers consumed
)

// chunkParser parses a chunked transfer-coded body: hex chunk sizes,
// optional extensions, chunk data, and the trailer section after the
// zero-chunk. Restartable at any byte boundary.
type chunkParser struct {
	maxChunkSize  int64
	maxLineLength int
	strictCRLF    bool

	size       int64
	sizeDigits int
	extension  []byte
	data       []byte
	remaining  int64
	trailers   *Headers
	state      chunkState
}

func newChunkParser(settings Settings) chunkParser {
	return chunkParser{
		maxChunkSize:  settings.MaxChunkSize,
		maxLineLength: settings.MaxLineLength,
		strictCRLF:    settings.StrictCRLF,
		trailers:      NewHeaders(settings),
		state:         chunkSize,
	}
}

func (p *chunkParser) clear() {
	p.nextChunk()
	p.trailers.Clear()
}

// nextChunk resets per-chunk state, keeping the trailers collection.
func (p *chunkParser) nextChunk() {
	p.size = 0
	p.sizeDigits = 0
	p.extension = p.extension[:0]
	p.data = p.data[:0]
	p.remaining = 0
	p.state = chunkSize
}

// parse consumes bytes from data starting at *pos until a chunk
// completes, the body terminates, data is exhausted, or a byte is
// rejected. After chunkEventChunk the caller must invoke nextChunk
// before parsing again.
func (p *chunkParser) parse(data []byte, pos *int) (chunkEvent, error) {
	for *pos < len(data) {
		if p.state == chunkData {
			n := int64(len(data) - *pos)
			if n > p.remaining {
				n = p.remaining
			}

			p.data = append(p.data, data[*pos:*pos+int(n)]...)
			*pos += int(n)
			p.remaining -= n

			if p.remaining > 0 {
				return chunkEventNone, nil
			}

			p.state = chunkDataCR
			continue
		}

		if p.state == chunkTrailers {
			done, err := p.trailers.Parse(data, pos)
			if err != nil {
				return chunkEventNone, err
			}
			if !done {
				return chunkEventNone, nil
			}

			p.state = chunkLast

			return chunkEventLast, nil
		}

		char := data[*pos]
		*pos++

		switch p.state {
		case chunkSize:
			digit := HexDigit(char)

			switch {
			case digit >= 0:
				p.size = p.size<<4 + int64(digit)
				p.sizeDigits++

				// leading zeros are legal, so bound the digit count
				// by the line limit rather than the value width
				if p.size > p.maxChunkSize || p.size < 0 {
					return chunkEventNone, ErrInvalidChunkSize
				}
				if p.sizeDigits > p.maxLineLength {
					return chunkEventNone, ErrLengthExceeded
				}
			case char == ';' || IsSpaceOrTab(char):
				if p.sizeDigits == 0 {
					return chunkEventNone, ErrInvalidChunkSize
				}

				p.state = chunkExtension
			case char == '\r':
				if p.sizeDigits == 0 {
					return chunkEventNone, ErrInvalidChunkSize
				}

				p.state = chunkSizeLF
			case char == '\n':
				if p.sizeDigits == 0 {
					return chunkEventNone, ErrInvalidChunkSize
				}
				if p.strictCRLF {
					return chunkEventNone, ErrStrictCRLFViolation
				}

				p.startChunkData()
			default:
				return chunkEventNone, ErrInvalidChunkSize
			}
		case chunkExtension:
			switch {
			case !IsEndOfLine(char):
				p.extension = append(p.extension, char)

				if len(p.extension) > p.maxLineLength {
					return chunkEventNone, ErrLengthExceeded
				}
			case char == '\r':
				p.state = chunkSizeLF
			default: // '\n'
				if p.strictCRLF {
					return chunkEventNone, ErrStrictCRLFViolation
				}

				p.startChunkData()
			}
		case chunkSizeLF:
			if char != '\n' {
				return chunkEventNone, ErrMalformedSyntax
			}

			p.startChunkData()
		case chunkDataCR:
			switch char {
			case '\r':
				p.state = chunkDataLF
			case '\n':
				if p.strictCRLF {
					return chunkEventNone, ErrStrictCRLFViolation
				}

				p.state = chunkDone

				return chunkEventChunk, nil
			default:
				return chunkEventNone, ErrMalformedSyntax
			}
		case chunkDataLF:
			if char != '\n' {
				return chunkEventNone, ErrMalformedSyntax
			}

			p.state = chunkDone

			return chunkEventChunk, nil
		default:
			return chunkEventNone, ErrMalformedSyntax
		}
	}

	return chunkEventNone, nil
}

// startChunkData leaves the size line for either the data bytes or, for
// the zero-chunk, the trailer section.
func (p *chunkParser) startChunkData() {
	if p.size == 0 {
		p.state = chunkTrailers

		return
	}

	p.remaining = p.size
	p.state = chunkData
}

// header returns the parsed size line of the current chunk.
func (p *chunkParser) header() ChunkHeader {
	return ChunkHeader{Size: p.size, Extension: string(p.extension)}
}

// AppendChunk emits data as one chunk: "hex-size CRLF data CRLF".
// Zero-length data emits nothing, as an empty chunk would terminate the
// body; use AppendFinalChunk for that.
func AppendChunk(dst, data []byte) []byte {
	if len(data) == 0 {
		return dst
	}

	dst = strconv.AppendInt(dst, int64(len(data)), 16)
	dst = append(dst, '\r', '\n')
	dst = append(dst, data...)

	return append(dst, '\r', '\n')
}

// AppendChunkExt emits one chunk with a chunk extension after the size.
func AppendChunkExt(dst, data []byte, extension string) []byte {
	if len(data) == 0 {
		return dst
	}

	dst = strconv.AppendInt(dst, int64(len(data)), 16)
	if len(extension) > 0 {
		dst = append(dst, ';')
		dst = append(dst, extension...)
	}
	dst = append(dst, '\r', '\n')
	dst = append(dst, data...)

	return append(dst, '\r', '\n')
}

// AppendFinalChunk emits the terminating zero-chunk with optional
// trailers: "0 CRLF trailers CRLF".
func AppendFinalChunk(dst []byte, trailers *Headers) []byte {
	dst = append(dst, '0', '\r', '\n')
	if trailers != nil {
		dst = append(dst, trailers.String()...)
	}

	return append(dst, '\r', '\n')
}
