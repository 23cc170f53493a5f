package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Digest is a single algorithm's hex-encoded hash value
type Digest struct {
	Algorithm string
	Hex       string
}

// DigestSet holds one digest per configured algorithm, in algorithm order.
// It marshals to a JSON object whose keys keep that order.
type DigestSet []Digest

// Get returns the hex digest for an algorithm
func (d DigestSet) Get(algorithm string) (string, bool) {
	for _, dg := range d {
		if dg.Algorithm == algorithm {
			return dg.Hex, true
		}
	}
	return "", false
}

// Map returns the digests keyed by algorithm name
func (d DigestSet) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, dg := range d {
		m[dg.Algorithm] = dg.Hex
	}
	return m
}

// MarshalJSON encodes the set as an object, preserving algorithm order
func (d DigestSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dg := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dg.Algorithm)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(dg.Hex)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of algorithm -> hex, keeping document order.
// A JSON null leaves the set unchanged.
func (d *DigestSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("digest set must be a JSON object")
	}

	set := DigestSet{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected digest key %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("digest %s: %w", key, err)
		}
		set = append(set, Digest{Algorithm: key, Hex: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = set
	return nil
}
