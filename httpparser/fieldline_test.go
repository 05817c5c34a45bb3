package httpparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// feedFieldLine feeds data in slices of chunkSize bytes, the way a
// transport would deliver it.
func feedFieldLine(f *fieldLine, data []byte, chunkSize int) (bool, error) {
	for i := 0; i < len(data); i += chunkSize {
		end := i + chunkSize
		if end > len(data) {
			end = len(data)
		}

		slice := data[i:end]
		pos := 0

		done, err := f.parse(slice, &pos)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}

	return false, nil
}

func TestFieldLineParse(t *testing.T) {
	settings := PrepareSettings(Settings{})

	for _, chunkSize := range []int{1, 2, 5, 1024} {
		f := newFieldLine(settings)

		done, err := feedFieldLine(&f, []byte("Content-Type: text/html\r\nX"), chunkSize)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "content-type", string(f.name))
		require.Equal(t, "text/html", string(f.value))
	}
}

func TestFieldLineLeadingWhitespaceSkipped(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{}))
	pos := 0

	done, err := f.parse([]byte("Host: \t  example.com\r\n\r"), &pos)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "example.com", string(f.value))
}

func TestFieldLineFolding(t *testing.T) {
	for _, chunkSize := range []int{1, 2, 3, 1024} {
		f := newFieldLine(PrepareSettings(Settings{}))

		done, err := feedFieldLine(&f, []byte("X: a\r\n b\r\n\r"), chunkSize)
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, "x", string(f.name))
		require.Equal(t, "a b", string(f.value))
	}
}

func TestFieldLineBareLFAccepted(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{}))
	pos := 0

	done, err := f.parse([]byte("X: y\nZ"), &pos)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "y", string(f.value))
}

func TestFieldLineBareLFStrict(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{StrictCRLF: true}))
	pos := 0

	_, err := f.parse([]byte("X: y\nZ"), &pos)
	require.ErrorIs(t, err, ErrStrictCRLFViolation)
}

func TestFieldLineRejectsBadNameByte(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{}))
	pos := 0

	_, err := f.parse([]byte("Bad Header: v\r\n"), &pos)
	require.ErrorIs(t, err, ErrMalformedSyntax)
}

func TestFieldLineLengthLimit(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{MaxLineLength: 10}))
	pos := 0

	_, err := f.parse([]byte("X: 123456789012345\r\n"), &pos)
	require.ErrorIs(t, err, ErrLengthExceeded)
}

func TestFieldLineWhitespaceLimit(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{MaxWhitespace: 2}))
	pos := 0

	_, err := f.parse([]byte("X:      y\r\n"), &pos)
	require.ErrorIs(t, err, ErrLengthExceeded)
}

func TestFieldLineClearReuses(t *testing.T) {
	f := newFieldLine(PrepareSettings(Settings{}))
	pos := 0

	done, err := f.parse([]byte("A: 1\r\nB"), &pos)
	require.NoError(t, err)
	require.True(t, done)

	f.clear()
	pos = 0

	done, err = f.parse([]byte("B: 2\r\nC"), &pos)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, "b", string(f.name))
	require.Equal(t, "2", string(f.value))
}
