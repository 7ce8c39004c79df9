package transaction

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// decoded is the plaintext of a token.
type decoded struct {
	Key     []byte
	Seconds uint32
	Digest  []byte
	Trailer byte
}

// decode reverses Generate given the verification key length.
func decode(token string, keyLen int) (*decoded, error) {
	raw, err := base64.RawStdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token encoding: %w", err)
	}
	if len(raw) != 1+keyLen+4+digestBytes+1 {
		return nil, fmt.Errorf("invalid token length %d", len(raw))
	}

	mask := raw[0]
	plain := make([]byte, len(raw)-1)
	for i, b := range raw[1:] {
		plain[i] = b ^ mask
	}

	return &decoded{
		Key:     plain[:keyLen],
		Seconds: binary.LittleEndian.Uint32(plain[keyLen : keyLen+4]),
		Digest:  plain[keyLen+4 : keyLen+4+digestBytes],
		Trailer: plain[len(plain)-1],
	}, nil
}
