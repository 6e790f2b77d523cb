// Hex literal codec and JSON form.
//
// The SQL value layer hands over BLOB literals as bare hex digit pairs
// (X'0A1B' arrives as "0A1B"): most significant nibble first, either case,
// no prefix and no separators. The same text is the JSON representation of
// a Blob, so a Blob embedded in a JSON document reads like the literal it
// was decoded from.
package lob

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// FromHex decodes a hex literal into an active Blob.
func FromHex(s string) (*Blob, error) {
	buf, err := decodeHex(s)
	if err != nil {
		return nil, err
	}
	return &Blob{state: stateActive, buf: buf}, nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedHex, "odd length %d", len(s))
	}
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithSecondaryError(ErrMalformedHex, err)
	}
	return buf, nil
}

// Hex encodes the buffer as upper-case digit pairs, the form FromHex
// accepts.
func (b *Blob) Hex() (string, error) {
	if err := b.active(); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b.buf)), nil
}

// String implements fmt.Stringer for logging. A freed Blob prints as
// "<freed>".
func (b *Blob) String() string {
	s, err := b.Hex()
	if err != nil {
		return "<freed>"
	}
	return "X'" + s + "'"
}

// MarshalJSON encodes the Blob as its hex literal string.
func (b *Blob) MarshalJSON() ([]byte, error) {
	s, err := b.Hex()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a hex literal string into b. On an active Blob the
// decoded bytes replace the whole value, length included, as if b had been
// created by FromHex. A freed Blob stays freed and JSON null leaves b as it
// was.
func (b *Blob) UnmarshalJSON(data []byte) error {
	if err := b.active(); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.WithSecondaryError(ErrMalformedHex, err)
	}
	buf, err := decodeHex(s)
	if err != nil {
		return err
	}
	b.buf = buf
	return nil
}
