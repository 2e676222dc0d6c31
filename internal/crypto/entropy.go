package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
)

// Charset defines the character set to use for secret generation
type Charset string

const (
	// CharsetAlpha uses only alphabetic characters (a-z, A-Z)
	CharsetAlpha Charset = "alpha"
	// CharsetAlnum uses alphanumeric characters (a-z, A-Z, 0-9)
	CharsetAlnum Charset = "alnum"
	// CharsetAlnumSpecial uses alphanumeric and special characters
	CharsetAlnumSpecial Charset = "alnumspecial"
)

var (
	errInvalidLength   = errors.New("length must be positive")
	errUnknownCharset  = errors.New("unknown charset")
	errInvalidWordSize = errors.New("word count must be positive")
)

var (
	charsetLookup = map[Charset][]rune{
		CharsetAlpha:        []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"),
		CharsetAlnum:        []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"),
		CharsetAlnumSpecial: []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()-_=+[]{}<>?,.:;/'\"|\\~"),
	}
	randSource io.Reader = rand.Reader
	randMux    sync.RWMutex
)

// SetRandomSource sets the random number generator source.
// If r is nil, it resets to the default crypto/rand.Reader.
func SetRandomSource(r io.Reader) {
	randMux.Lock()
	if r == nil {
		randSource = rand.Reader
	} else {
		randSource = r
	}
	randMux.Unlock()
}

// GenerateSecret generates a cryptographically secure random secret with the
// specified length and character set. Selection uses rejection sampling so
// every character is drawn uniformly.
func GenerateSecret(length int, charset Charset) (string, error) {
	if length <= 0 {
		return "", errInvalidLength
	}

	chars, ok := charsetLookup[charset]
	if !ok {
		return "", errUnknownCharset
	}

	randMux.RLock()
	src := randSource
	randMux.RUnlock()

	var b strings.Builder
	b.Grow(length)

	for i := 0; i < length; i++ {
		idx, err := randomIndex(src, len(chars))
		if err != nil {
			return "", err
		}
		b.WriteRune(chars[idx])
	}

	return b.String(), nil
}

// GenerateDiceware generates a list of random words using the diceware
// method. wordCount specifies how many words to generate.
func GenerateDiceware(wordCount int) ([]string, error) {
	if wordCount <= 0 {
		return nil, errInvalidWordSize
	}

	words := dicewareWords()
	randMux.RLock()
	src := randSource
	randMux.RUnlock()

	result := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		idx, err := randomIndex(src, len(words))
		if err != nil {
			return nil, err
		}
		result[i] = words[idx]
	}

	return result, nil
}

// GeneratePassphrase generates a diceware passphrase of wordCount words
// joined by separator.
func GeneratePassphrase(wordCount int, separator string) (string, error) {
	words, err := GenerateDiceware(wordCount)
	if err != nil {
		return "", err
	}
	return strings.Join(words, separator), nil
}

// EntropyBits reports the entropy of a generated secret of the given
// length and charset, in bits.
func EntropyBits(length int, charset Charset) (float64, error) {
	if length <= 0 {
		return 0, errInvalidLength
	}
	chars, ok := charsetLookup[charset]
	if !ok {
		return 0, errUnknownCharset
	}
	return float64(length) * math.Log2(float64(len(chars))), nil
}

// DicewareEntropyBits reports the entropy of a diceware passphrase of
// wordCount words, in bits.
func DicewareEntropyBits(wordCount int) (float64, error) {
	if wordCount <= 0 {
		return 0, errInvalidWordSize
	}
	return float64(wordCount) * math.Log2(float64(len(dicewareWords()))), nil
}

// randomIndex draws a uniform index in [0, max) from r. Values outside the
// largest multiple of max are rejected and redrawn, which removes the
// modulo bias a plain remainder would introduce.
func randomIndex(r io.Reader, max int) (int, error) {
	if max <= 0 {
		return 0, errInvalidLength
	}

	if max <= 256 {
		var buf [1]byte
		usable := 256 - (256 % max)
		for {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return 0, err
			}
			if int(buf[0]) < usable {
				return int(buf[0]) % max, nil
			}
		}
	}

	if max <= 65536 {
		var buf [2]byte
		usable := 65536 - (65536 % max)
		for {
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return 0, err
			}
			val := int(binary.BigEndian.Uint16(buf[:]))
			if val < usable {
				return val % max, nil
			}
		}
	}

	var buf [4]byte
	const maxUint32 = ^uint32(0)
	limit := maxUint32 - (maxUint32 % uint32(max))
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		val := binary.BigEndian.Uint32(buf[:])
		if val < limit {
			return int(val % uint32(max)), nil
		}
	}
}
