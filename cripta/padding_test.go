package cripta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad(t *testing.T) {
	type scenario struct {
		name     string
		data     []byte
		expected []byte
	}

	scenarios := []scenario{
		{
			"empty input gets a full block",
			[]byte{},
			bytes.Repeat([]byte{0x08}, 8),
		},
		{
			"seven bytes get one byte",
			[]byte("abcdefg"),
			append([]byte("abcdefg"), 0x01),
		},
		{
			"one byte gets seven bytes",
			[]byte("a"),
			append([]byte("a"), bytes.Repeat([]byte{0x07}, 7)...),
		},
		{
			"aligned input gets a full block",
			[]byte("abcdefgh"),
			append([]byte("abcdefgh"), bytes.Repeat([]byte{0x08}, 8)...),
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			padded := Pad(s.data)
			assert.Equal(t, s.expected, padded)
			assert.Zero(t, len(padded)%BlockSize)
			assert.Greater(t, len(padded), len(s.data))
		})
	}
}

func TestPadDoesNotAliasInput(t *testing.T) {
	data := make([]byte, 3, 16)
	copy(data, "abc")
	padded := Pad(data)
	padded[0] = 'z'
	assert.Equal(t, byte('a'), data[0])
}

func TestUnpad(t *testing.T) {
	type scenario struct {
		name        string
		data        []byte
		expected    []byte
		expectError bool
	}

	scenarios := []scenario{
		{
			"empty data is unchanged",
			[]byte{},
			[]byte{},
			false,
		},
		{
			"single pad byte",
			append([]byte("abcdefg"), 0x01),
			[]byte("abcdefg"),
			false,
		},
		{
			"full block of padding",
			append([]byte("abcdefgh"), bytes.Repeat([]byte{0x08}, 8)...),
			[]byte("abcdefgh"),
			false,
		},
		{
			"only padding",
			bytes.Repeat([]byte{0x08}, 8),
			[]byte{},
			false,
		},
		{
			"zero pad value",
			append([]byte("abcdefg"), 0x00),
			nil,
			true,
		},
		{
			"pad value above block size",
			append([]byte("abcdefg"), 0x09),
			nil,
			true,
		},
		{
			"inconsistent pad bytes",
			[]byte{'a', 'b', 'c', 'd', 'e', 0x02, 0x03, 0x03},
			nil,
			true,
		},
		{
			"pad value longer than data",
			[]byte{0x04, 0x04},
			nil,
			true,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			unpadded, err := Unpad(s.data)
			if s.expectError {
				assert.True(t, HasErrorCode(err, InvalidPadding))
				assert.Equal(t, s.data, UnpadLenient(s.data), "lenient unpad returns data unchanged")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s.expected, unpadded)
			assert.Equal(t, s.expected, UnpadLenient(s.data))
		})
	}
}

func TestPadUnpadRoundTrip(t *testing.T) {
	for n := 0; n <= 3*BlockSize; n++ {
		data := bytes.Repeat([]byte{0xAB}, n)
		unpadded, err := Unpad(Pad(data))
		require.NoError(t, err)
		assert.Equal(t, data, unpadded)
	}
}
