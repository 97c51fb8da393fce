// Package storage persists named populations.
package storage

import (
	"bytes"
	"context"
	"errors"

	"github.com/pthm-cable/bodyplan/body"
)

// ErrNotInitialized is returned by stores used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Store defines persistence operations for populations.
type Store interface {
	Init(ctx context.Context) error
	SavePopulation(ctx context.Context, name string, pop body.Population) error
	GetPopulation(ctx context.Context, name string) (body.Population, bool, error)
	ListPopulations(ctx context.Context) ([]string, error)
}

func encode(pop body.Population) ([]byte, error) {
	var buf bytes.Buffer
	if err := body.EncodePopulation(&buf, pop); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(payload []byte) (body.Population, error) {
	return body.DecodePopulation(bytes.NewReader(payload))
}
