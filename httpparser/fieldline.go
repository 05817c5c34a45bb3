package httpparser

// fieldLine extracts one header field from the stream. The name is
// lowercased while it is read, the value is kept as received. The parser
// is restartable at any byte boundary, including the boundary between a
// line's CRLF and an obsolete folding continuation.
type fieldLine struct {
	strictCRLF    bool
	maxWhitespace int
	maxLineLength int

	name    []byte
	value   []byte
	length  int
	wsCount int
	state   fieldState
}

func newFieldLine(settings Settings) fieldLine {
	return fieldLine{
		strictCRLF:    settings.StrictCRLF,
		maxWhitespace: settings.MaxWhitespace,
		maxLineLength: settings.MaxLineLength,
		state:         fieldName,
	}
}

// clear resets the parser for the next line without releasing storage.
func (f *fieldLine) clear() {
	f.name = f.name[:0]
	f.value = f.value[:0]
	f.length = 0
	f.wsCount = 0
	f.state = fieldName
}

// parse consumes bytes from data starting at *pos until the field line is
// complete, data is exhausted, or a byte is rejected. A line is complete
// only once the byte after its CRLF is known not to start a folded
// continuation; until then parse reports (false, nil) and expects to be
// called again with more data.
func (f *fieldLine) parse(data []byte, pos *int) (bool, error) {
	for *pos < len(data) {
		if f.state == fieldValid {
			if !IsSpaceOrTab(data[*pos]) {
				return true, nil
			}

			// obsolete line folding: the value continues on the
			// next line, joined by a single space
			f.value = append(f.value, ' ')
			f.state = fieldValueLS
		}

		char := data[*pos]
		*pos++

		f.length++
		if f.length > f.maxLineLength {
			return false, ErrLengthExceeded
		}

		switch f.state {
		case fieldName:
			switch {
			case char == ':':
				f.state = fieldValueLS
			case isFieldNameChar(char):
				f.name = append(f.name, toLower(char))
			default:
				return false, ErrMalformedSyntax
			}
		case fieldValueLS:
			if IsSpaceOrTab(char) {
				f.wsCount++
				if f.wsCount > f.maxWhitespace {
					return false, ErrLengthExceeded
				}

				break
			}

			f.state = fieldValue
			fallthrough
		case fieldValue:
			switch {
			case !IsEndOfLine(char):
				f.value = append(f.value, char)
			case char == '\r':
				f.state = fieldLF
			default: // '\n'
				if f.strictCRLF {
					return false, ErrStrictCRLFViolation
				}

				f.state = fieldValid
			}
		case fieldLF:
			if char != '\n' {
				return false, ErrMalformedSyntax
			}

			f.state = fieldValid
		}
	}

	return false, nil
}

// size is the contribution of this line to the cumulative header length.
func (f *fieldLine) size() int {
	return len(f.name) + len(f.value)
}

func isFieldNameChar(char byte) bool {
	return (char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z') || char == '-'
}
