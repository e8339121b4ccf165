package engine

import (
	"context"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// FileSource reads a TOML seed catalog:
//
//	[[stories]]
//	id = "1"
//	title = "Lily's Magical Garden"
//	likes = 120
//
//	[[games]]
//	title = "Word Explorer"
//	likes = 180
//
// Items without an id get one when the catalog is built.
type FileSource struct{ Path string }

func (f FileSource) Load(ctx context.Context) (Seed, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Seed{}, errors.Wrap(err, "read seed file")
	}
	return ParseSeed(data)
}

// ParseSeed decodes a TOML seed document.
func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := toml.Unmarshal(data, &s); err != nil {
		return Seed{}, errors.Wrap(err, "decode seed file")
	}
	return s, nil
}
