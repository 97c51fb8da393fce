// Package main prints the realization order of every tree in a population
// file, one indented line per segment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pthm-cable/bodyplan/body"
	"github.com/pthm-cable/bodyplan/storage"
)

func main() {
	inPath := flag.String("in", "", "Population JSON file")
	storeKind := flag.String("store", "", "Read from a store instead: sqlite")
	storePath := flag.String("store-path", "", "SQLite database path")
	name := flag.String("name", "default", "Population name within the store")
	flag.Parse()

	pop, err := load(*inPath, *storeKind, *storePath, *name)
	if err != nil {
		log.Fatal(err)
	}

	for i, t := range pop {
		var rec body.Recorder
		if err := body.Realize[int](t, &rec); err != nil {
			log.Fatalf("tree %d: %v", i, err)
		}
		fmt.Fprintf(os.Stdout, "tree %d: %d segments, height %d\n", i, t.Len(), t.Height())
		fmt.Fprint(os.Stdout, rec.String())
	}
}

func load(path, kind, dbPath, name string) (body.Population, error) {
	if kind == "" {
		if path == "" {
			return nil, fmt.Errorf("-in or -store is required")
		}
		return body.LoadPopulation(path)
	}

	store, err := storage.NewStore(kind, dbPath)
	if err != nil {
		return nil, err
	}
	defer storage.CloseIfSupported(store)

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	pop, ok, err := store.GetPopulation(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no population %q in %s store", name, kind)
	}
	return pop, nil
}
