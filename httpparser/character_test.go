package httpparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiers(t *testing.T) {
	require.True(t, IsCtl(0x00))
	require.True(t, IsCtl(0x1f))
	require.True(t, IsCtl(0x7f))
	require.False(t, IsCtl('a'))

	require.True(t, IsTchar('a'))
	require.True(t, IsTchar('Z'))
	require.True(t, IsTchar('9'))
	require.True(t, IsTchar('!'))
	require.True(t, IsTchar('~'))
	require.False(t, IsTchar(' '))
	require.False(t, IsTchar('('))
	require.False(t, IsTchar('/'))

	require.True(t, IsSpaceOrTab(' '))
	require.True(t, IsSpaceOrTab('\t'))
	require.False(t, IsSpaceOrTab('\n'))

	require.True(t, IsEndOfLine('\r'))
	require.True(t, IsEndOfLine('\n'))
	require.False(t, IsEndOfLine(' '))
}

func TestDigits(t *testing.T) {
	require.Equal(t, 0, DecDigit('0'))
	require.Equal(t, 9, DecDigit('9'))
	require.Equal(t, -1, DecDigit('a'))

	require.Equal(t, 10, HexDigit('a'))
	require.Equal(t, 15, HexDigit('F'))
	require.Equal(t, 7, HexDigit('7'))
	require.Equal(t, -1, HexDigit('g'))
}

func TestFromDecString(t *testing.T) {
	require.Equal(t, int64(0), FromDecString("0"))
	require.Equal(t, int64(1234), FromDecString("1234"))
	require.Equal(t, int64(-1), FromDecString(""))
	require.Equal(t, int64(-1), FromDecString("12a"))
	require.Equal(t, int64(-1), FromDecString("-12"))
	require.Equal(t, int64(-1), FromDecString("99999999999999999999"))
}

func TestFromHexString(t *testing.T) {
	require.Equal(t, int64(0), FromHexString("0"))
	require.Equal(t, int64(255), FromHexString("ff"))
	require.Equal(t, int64(255), FromHexString("FF"))
	require.Equal(t, int64(0xabc), FromHexString("0abc"))
	require.Equal(t, int64(-1), FromHexString(""))
	require.Equal(t, int64(-1), FromHexString("xyz"))
	require.Equal(t, int64(-1), FromHexString("ffffffffffffffffff"))
}
