package domain

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the GCM nonce length in bytes used for every blob.
	IVSize = 16
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	blobSeparator = ":"
)

// EncodedBlob is the at-rest representation of a secret.
//
// Its string form is base64(hex(IV) ":" hex(Tag) ":" hex(Ciphertext)). The base64
// payload is the UTF-8 text of the three hex segments, not their raw bytes.
//
// Fields:
//   - IV: the 16-byte nonce drawn fresh for each encryption
//   - Tag: the 16-byte GCM authentication tag
//   - Ciphertext: the encrypted secret, same length as the plaintext
type EncodedBlob struct {
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

// ParseEncodedBlob decodes the string form of an EncodedBlob.
//
// Returns ErrMalformedBlob when:
//   - the input is not valid base64
//   - the decoded text does not split into exactly 3 colon-separated segments
//   - a segment is not valid hex
//   - the IV or tag does not decode to 16 bytes
//
// Example:
//
//	blob, err := ParseEncodedBlob(stored)
//	if err != nil {
//	    return err // errors.Is(err, ErrMalformedBlob)
//	}
func ParseEncodedBlob(content string) (EncodedBlob, error) {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return EncodedBlob{}, fmt.Errorf("%w: invalid base64: %v", ErrMalformedBlob, err)
	}

	parts := strings.Split(string(raw), blobSeparator)
	if len(parts) != 3 {
		return EncodedBlob{}, fmt.Errorf(
			"%w: expected 3 segments, got %d",
			ErrMalformedBlob,
			len(parts),
		)
	}

	iv, err := decodeSegment(parts[0], IVSize, "iv")
	if err != nil {
		return EncodedBlob{}, err
	}

	tag, err := decodeSegment(parts[1], TagSize, "auth tag")
	if err != nil {
		return EncodedBlob{}, err
	}

	ciphertext, err := decodeSegment(parts[2], -1, "ciphertext")
	if err != nil {
		return EncodedBlob{}, err
	}

	return EncodedBlob{IV: iv, Tag: tag, Ciphertext: ciphertext}, nil
}

// decodeSegment hex-decodes one segment. A negative size accepts any length.
func decodeSegment(segment string, size int, name string) ([]byte, error) {
	b, err := hex.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", ErrMalformedBlob, name)
	}
	if size >= 0 && len(b) != size {
		return nil, fmt.Errorf("%w: %s must be %d bytes, got %d", ErrMalformedBlob, name, size, len(b))
	}
	return b, nil
}

// String serializes the blob. It round-trips with ParseEncodedBlob.
func (b EncodedBlob) String() string {
	text := hex.EncodeToString(b.IV) + blobSeparator +
		hex.EncodeToString(b.Tag) + blobSeparator +
		hex.EncodeToString(b.Ciphertext)
	return base64.StdEncoding.EncodeToString([]byte(text))
}
