package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Token is the decoded form of the opaque sync cursor. Consumers treat the
// encoded bytes as opaque; only the issuing sample source interprets them.
type Token struct {
	Offset   uint64    `json:"offset"`
	IssuedAt time.Time `json:"issued_at"`
}

// Encode encodes the token to opaque cursor bytes.
func (t *Token) Encode() []byte {
	data, _ := json.Marshal(t)
	out := make([]byte, base64.URLEncoding.EncodedLen(len(data)))
	base64.URLEncoding.Encode(out, data)
	return out
}

// Decode decodes opaque cursor bytes. Nil or empty input decodes to nil,
// meaning "no prior position".
func Decode(raw []byte) (*Token, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	data := make([]byte, base64.URLEncoding.DecodedLen(len(raw)))
	n, err := base64.URLEncoding.Decode(data, raw)
	if err != nil {
		return nil, err
	}

	var t Token
	if err := json.Unmarshal(data[:n], &t); err != nil {
		return nil, err
	}

	return &t, nil
}
