package cipher_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/cipher"
)

// keystream extracts the first n keystream bytes of a freshly keyed Stream
// by processing a zero buffer.
func keystream(t *testing.T, key []byte, n int) []byte {
	t.Helper()
	var s cipher.Stream
	require.NoError(t, s.Initialize(key))
	out := make([]byte, n)
	s.Process(out)
	return out
}

func TestInitializeRejectsEmptyKey(t *testing.T) {
	var s cipher.Stream
	require.Error(t, s.Initialize(nil))
	assert.False(t, s.Ready())
}

func TestDeterminism(t *testing.T) {
	key := []byte("shared session key")
	for _, n := range []int{1, 16, 256, 4096} {
		a := keystream(t, key, n)
		b := keystream(t, key, n)
		require.Equal(t, a, b, "keystreams diverged at length %d", n)
	}
}

func TestKeystreamDependsOnKey(t *testing.T) {
	a := keystream(t, []byte("key one"), 64)
	b := keystream(t, []byte("key two"), 64)
	assert.NotEqual(t, a, b)
}

func TestInvolution(t *testing.T) {
	key := []byte{0x1f, 0x00, 0xa4, 0x33, 0x5e}
	msg := []byte("the quick brown fox jumps over the lazy dog")

	var enc, dec cipher.Stream
	require.NoError(t, enc.Initialize(key))
	require.NoError(t, dec.Initialize(key))

	buf := bytes.Clone(msg)
	enc.Process(buf)
	assert.NotEqual(t, msg, buf, "ciphertext should differ from plaintext")
	dec.Process(buf)
	assert.Equal(t, msg, buf)
}

func TestInvolutionAcrossSplits(t *testing.T) {
	// Decryption must line up byte for byte even when the two sides
	// process differently sized chunks.
	key := []byte("chunk alignment key")
	msg := bytes.Repeat([]byte("0123456789"), 10)

	var enc, dec cipher.Stream
	require.NoError(t, enc.Initialize(key))
	require.NoError(t, dec.Initialize(key))

	buf := bytes.Clone(msg)
	enc.Process(buf[:7])
	enc.Process(buf[7:42])
	enc.Process(buf[42:])

	for i := 0; i < len(buf); i++ {
		dec.Process(buf[i : i+1])
	}
	assert.Equal(t, msg, buf)
}

func TestUninitializedStreamIsPassThrough(t *testing.T) {
	var s cipher.Stream
	msg := []byte("handshake travels in the clear")
	buf := bytes.Clone(msg)
	s.Process(buf)
	assert.Equal(t, msg, buf)
	assert.False(t, s.Ready())
}

func TestRekeyRestartsKeystream(t *testing.T) {
	key := []byte("rewind")

	var s cipher.Stream
	require.NoError(t, s.Initialize(key))
	first := make([]byte, 32)
	s.Process(first)

	require.NoError(t, s.Initialize(key))
	second := make([]byte, 32)
	s.Process(second)

	assert.Equal(t, first, second)
}
