package httpparser

import (
	"strings"

	"github.com/indigo-web/utils/uf"
)

const (
	cookieHeader   = "cookie"
	identityCoding = "identity"
	closeToken     = "close"
	continueToken  = "100-continue"
)

// Headers is the collection of header fields received with a request,
// response or chunk trailer. Field names are lowercased during parsing,
// repeated fields are merged in arrival order, and iteration follows
// insertion order so that String is deterministic.
type Headers struct {
	strictCRLF      bool
	maxHeaderNumber int
	maxHeaderLength int

	fields  map[string]string
	order   []string
	field   fieldLine
	length  int
	valid   bool
	blankCR bool
}

func NewHeaders(settings Settings) *Headers {
	h := &Headers{}
	h.init(settings)

	return h
}

func (h *Headers) init(settings Settings) {
	h.strictCRLF = settings.StrictCRLF
	h.maxHeaderNumber = settings.MaxHeaderNumber
	h.maxHeaderLength = settings.MaxHeaderLength
	h.fields = make(map[string]string)
	h.field = newFieldLine(settings)
}

// Clear resets the collection for the next message, keeping storage.
func (h *Headers) Clear() {
	clear(h.fields)
	h.order = h.order[:0]
	h.field.clear()
	h.length = 0
	h.valid = false
	h.blankCR = false
}

// Parse repeats field-line parsing until the terminating blank line.
// Reports (false, nil) when more data is required.
func (h *Headers) Parse(data []byte, pos *int) (bool, error) {
	for *pos < len(data) {
		if h.blankCR {
			if data[*pos] != '\n' {
				return false, ErrMalformedSyntax
			}

			*pos++
			h.valid = true

			return true, nil
		}

		// a CR or LF at a line start is the terminating blank line
		if h.field.length == 0 && h.field.state == fieldName && IsEndOfLine(data[*pos]) {
			char := data[*pos]
			*pos++

			if char == '\r' {
				h.blankCR = true
				continue
			}

			if h.strictCRLF {
				return false, ErrStrictCRLFViolation
			}

			h.valid = true

			return true, nil
		}

		done, err := h.field.parse(data, pos)
		if err != nil {
			return false, err
		}
		if !done {
			return false, nil
		}

		h.length += h.field.size()
		h.addField(h.field.name, h.field.value)
		h.field.clear()

		if h.length > h.maxHeaderLength || len(h.order) > h.maxHeaderNumber {
			return false, ErrLengthExceeded
		}
	}

	return false, nil
}

// addField merges a parsed field into the collection without copying
// the name unless it is new. name must already be lowercase.
func (h *Headers) addField(name, value []byte) {
	if existing, ok := h.fields[uf.B2S(name)]; ok {
		separator := ", "
		if uf.B2S(name) == cookieHeader {
			separator = "; "
		}

		h.fields[string(name)] = existing + separator + string(value)

		return
	}

	key := string(name)
	h.fields[key] = string(value)
	h.order = append(h.order, key)
}

// Add merges a field into the collection, lowercasing the name. A
// repeated field is appended to the existing value with a ", "
// separator, or "; " for cookies.
func (h *Headers) Add(name, value string) {
	h.addField([]byte(strings.ToLower(name)), []byte(value))
}

// Find returns the value for name, case-insensitively, or "".
func (h *Headers) Find(name string) string {
	if value, ok := h.fields[name]; ok {
		return value
	}

	return h.fields[strings.ToLower(name)]
}

// Len returns the number of distinct header fields.
func (h *Headers) Len() int {
	return len(h.order)
}

// Names returns the field names in insertion order. The slice is owned
// by the collection.
func (h *Headers) Names() []string {
	return h.order
}

// Valid reports whether the terminating blank line has been consumed.
func (h *Headers) Valid() bool {
	return h.valid
}

// ContentLength returns the decimal value of the content-length field,
// 0 if the field is absent, or -1 if it is present but not a valid
// non-negative integer.
func (h *Headers) ContentLength() int64 {
	value, ok := h.fields["content-length"]
	if !ok {
		return 0
	}

	return FromDecString(value)
}

// IsChunked reports whether chunked transfer coding is applied: a
// transfer-encoding field is present and does not contain "identity".
func (h *Headers) IsChunked() bool {
	value, ok := h.fields["transfer-encoding"]
	if !ok {
		return false
	}

	return !strings.Contains(strings.ToLower(value), identityCoding)
}

// CloseConnection reports whether the connection field asks for the
// connection to be closed after this message.
func (h *Headers) CloseConnection() bool {
	value, ok := h.fields["connection"]
	if !ok {
		return false
	}

	return strings.Contains(strings.ToLower(value), closeToken)
}

// ExpectContinue reports whether the client expects an interim
// 100 Continue response before sending the body.
func (h *Headers) ExpectContinue() bool {
	value, ok := h.fields["expect"]
	if !ok {
		return false
	}

	return strings.Contains(strings.ToLower(value), continueToken)
}

// String emits every field as "name: value\r\n" in insertion order.
// The output is not terminated with an extra CRLF, so it passes
// AreHeadersSplit.
func (h *Headers) String() string {
	var output strings.Builder

	for _, name := range h.order {
		output.WriteString(name)
		output.WriteString(": ")
		output.WriteString(h.fields[name])
		output.WriteString("\r\n")
	}

	return output.String()
}

// AreHeadersSplit scans text for an embedded blank line ("\n\n" or
// "\n\r\n") that would split the message, enabling response-splitting
// attacks through user-supplied header values.
func AreHeadersSplit(text string) bool {
	prev := byte('0')
	pprev := byte('0')

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			if prev == '\n' {
				return true
			}
			if prev == '\r' && pprev == '\n' {
				return true
			}
		}

		pprev = prev
		prev = text[i]
	}

	return false
}
