package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Info describes a vault container without opening it. Everything here is
// readable by anyone holding the file; none of it requires or reveals the
// passphrase.
type Info struct {
	Path             string    `json:"path"`
	Size             int64     `json:"size"`
	ModTime          time.Time `json:"modified"`
	Version          int       `json:"version"`
	Cipher           string    `json:"cipher"`
	Iterations       int       `json:"iterations"`
	SaltLength       int       `json:"salt_length"`
	CiphertextLength int       `json:"ciphertext_length"`
}

// Inspect reads container metadata from the vault file at path. It never
// derives a key and never touches the sealed payload beyond measuring it.
func Inspect(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrVaultNotFound
		}
		return nil, fmt.Errorf("failed to stat vault file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ErrWrongPassphraseOrCorrupt
	}

	return &Info{
		Path:             path,
		Size:             fi.Size(),
		ModTime:          fi.ModTime(),
		Version:          c.Version,
		Cipher:           "AES-256-GCM",
		Iterations:       c.Iterations,
		SaltLength:       len(c.Salt),
		CiphertextLength: len(c.Ciphertext),
	}, nil
}
