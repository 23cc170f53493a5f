package services

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
	"testing/iotest"
)

var emptyDigests = map[string]string{
	"md5":         "d41d8cd98f00b204e9800998ecf8427e",
	"sha1":        "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	"sha256":      "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	"sha512":      "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
	"sha3-256":    "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
	"blake2b-256": "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
}

func TestHashReader_EmptyInput(t *testing.T) {
	for _, name := range SupportedAlgorithms() {
		t.Run(name, func(t *testing.T) {
			alg, err := LookupAlgorithm(name)
			if err != nil {
				t.Fatalf("LookupAlgorithm() error = %v", err)
			}

			got, err := HashReader(bytes.NewReader(nil), alg, DefaultChunkSize)
			if err != nil {
				t.Fatalf("HashReader() error = %v", err)
			}
			if got != emptyDigests[name] {
				t.Errorf("HashReader(empty) = %s, want %s", got, emptyDigests[name])
			}
		})
	}
}

func TestHashReader_KnownValue(t *testing.T) {
	alg, err := LookupAlgorithm("sha256")
	if err != nil {
		t.Fatalf("LookupAlgorithm() error = %v", err)
	}

	got, err := HashReader(bytes.NewReader([]byte("abc")), alg, 1)
	if err != nil {
		t.Fatalf("HashReader() error = %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("HashReader(abc) = %s, want %s", got, want)
	}
}

func TestHashReader_ChunkSizeInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := []int{0, 1, 63, DefaultChunkSize - 1, DefaultChunkSize, DefaultChunkSize + 1, 3*DefaultChunkSize + 17}
	chunks := []int{1, 7, 512, 4096, DefaultChunkSize, 1 << 20}

	for _, size := range sizes {
		data := make([]byte, size)
		_, _ = rng.Read(data)

		for _, name := range SupportedAlgorithms() {
			alg, err := LookupAlgorithm(name)
			if err != nil {
				t.Fatalf("LookupAlgorithm() error = %v", err)
			}

			want, err := HashReader(bytes.NewReader(data), alg, DefaultChunkSize)
			if err != nil {
				t.Fatalf("HashReader() error = %v", err)
			}

			for _, chunk := range chunks {
				got, err := HashReader(bytes.NewReader(data), alg, chunk)
				if err != nil {
					t.Fatalf("HashReader(chunk=%d) error = %v", chunk, err)
				}
				if got != want {
					t.Errorf("%s size=%d chunk=%d: got %s, want %s", name, size, chunk, got, want)
				}
			}

			// Short reads from the source must not change the digest either
			got, err := HashReader(iotest.OneByteReader(bytes.NewReader(data)), alg, DefaultChunkSize)
			if err != nil {
				t.Fatalf("HashReader(one byte reader) error = %v", err)
			}
			if got != want {
				t.Errorf("%s size=%d one-byte reads: got %s, want %s", name, size, got, want)
			}
		}
	}
}

func TestHashReader_ReadError(t *testing.T) {
	alg, err := LookupAlgorithm("sha1")
	if err != nil {
		t.Fatalf("LookupAlgorithm() error = %v", err)
	}

	r := io.MultiReader(bytes.NewReader([]byte("partial")), iotest.ErrReader(io.ErrUnexpectedEOF))
	if _, err := HashReader(r, alg, 4); err == nil {
		t.Error("HashReader() should return the read error")
	}
}

func TestLookupAlgorithms(t *testing.T) {
	algs, err := LookupAlgorithms(DefaultAlgorithms)
	if err != nil {
		t.Fatalf("LookupAlgorithms() error = %v", err)
	}
	for i, alg := range algs {
		if alg.Name != DefaultAlgorithms[i] {
			t.Errorf("algorithm %d = %s, want %s", i, alg.Name, DefaultAlgorithms[i])
		}
	}

	if _, err := LookupAlgorithms([]string{"sha256", "whirlpool"}); err == nil {
		t.Error("LookupAlgorithms() should reject unknown algorithms")
	}
}
