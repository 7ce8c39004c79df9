package transaction

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// epoch is subtracted from the wall clock before the time is encoded.
	epoch = 1682924400

	// keyword is mixed into the request digest.
	keyword = "obfiowerehiring"

	// trailer is the fixed final byte of the plaintext.
	trailer = 3

	digestBytes = 16
)

// Generator computes transaction ids for outgoing requests.
type Generator interface {
	// Generate returns the token for a request, or false when the seed is
	// incomplete or unusable. A false result means the header is omitted.
	Generate(method, path, verification, animationKey string) (string, bool)
}

// Keyed is the default Generator.
//
// The plaintext is the decoded verification key, the seconds since epoch
// as a 4-byte little-endian integer, the first 16 bytes of
// sha256("METHOD!path!seconds" + keyword + animationKey), and a trailer
// byte. Every plaintext byte is XORed with one random byte, which is
// prepended, and the whole is base64 encoded without padding.
type Keyed struct {
	// Now returns the current time. nil means time.Now.
	Now func() time.Time

	// Rand supplies the mask byte. nil means crypto/rand.
	Rand io.Reader
}

// Generate implements Generator.
func (g *Keyed) Generate(method, path, verification, animationKey string) (string, bool) {
	if verification == "" || animationKey == "" {
		return "", false
	}

	key, err := decodeKey(verification)
	if err != nil || len(key) == 0 {
		return "", false
	}

	now := time.Now
	if g != nil && g.Now != nil {
		now = g.Now
	}
	seconds := uint32(now().Unix() - epoch)

	var mask [1]byte
	src := io.Reader(rand.Reader)
	if g != nil && g.Rand != nil {
		src = g.Rand
	}
	if _, err := io.ReadFull(src, mask[:]); err != nil {
		return "", false
	}

	plain := make([]byte, 0, len(key)+4+digestBytes+1)
	plain = append(plain, key...)
	plain = binary.LittleEndian.AppendUint32(plain, seconds)
	digest := Digest(method, path, seconds, animationKey)
	plain = append(plain, digest[:digestBytes]...)
	plain = append(plain, trailer)

	out := make([]byte, 0, len(plain)+1)
	out = append(out, mask[0])
	for _, b := range plain {
		out = append(out, b^mask[0])
	}

	return base64.RawStdEncoding.EncodeToString(out), true
}

// Digest returns the request digest mixed into a token.
func Digest(method, path string, seconds uint32, animationKey string) [sha256.Size]byte {
	input := fmt.Sprintf("%s!%s!%d%s%s", strings.ToUpper(method), path, seconds, keyword, animationKey)
	return sha256.Sum256([]byte(input))
}

// decodeKey accepts the verification key with or without padding.
func decodeKey(verification string) ([]byte, error) {
	if key, err := base64.StdEncoding.DecodeString(verification); err == nil {
		return key, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(verification, "="))
}
