package carmuseum

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EmbeddedAssets contains the seed dataset shipped with the binary.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

const embeddedDatasetPath = "embedded/dataset.yaml"

// ParseDataset decodes a YAML dataset. Unknown keys are rejected.
func ParseDataset(b []byte) (Dataset, error) {
	var d Dataset
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	return d, nil
}

// EmbeddedDataset returns the dataset compiled into the binary.
func EmbeddedDataset() (Dataset, error) {
	b, err := EmbeddedAssets.ReadFile(embeddedDatasetPath)
	if err != nil {
		return Dataset{}, fmt.Errorf("read embedded dataset: %w", err)
	}
	return ParseDataset(b)
}

// LoadEmbedded builds a ContentStore from the embedded dataset.
func LoadEmbedded() (*ContentStore, error) {
	d, err := EmbeddedDataset()
	if err != nil {
		return nil, err
	}
	return NewContentStore(d)
}
