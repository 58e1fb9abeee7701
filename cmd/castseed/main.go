package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"moviecast/cast"
	"moviecast/cmd/internal/bootstrap"
	"moviecast/movie"
	"moviecast/pkg/config"
)

// seedFile is the layout of the seed document. Records are stored as
// written:
//
//	{"movies": [{"movieId": 1, "title": "...", "genreIds": [18], "overview": "..."}],
//	 "cast":   [{"movieId": 1, "actorName": "...", "roleName": "...", "roleDescription": "..."}]}
type seedFile struct {
	Movies []movie.Movie `json:"movies"`
	Cast   []cast.Member `json:"cast"`
}

func main() {
	var path string
	flag.StringVar(&path, "file", "seed.json", "Path to the seed document")
	flag.Parse()

	logger := bootstrap.Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	seed, err := readSeed(path)
	if err != nil {
		logger.Error("cannot read seed file", "path", path, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		logger.Error("cannot open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	if err := stores.Movies.Save(ctx, seed.Movies); err != nil {
		logger.Error("seed movies failed", "error", err)
		os.Exit(1)
	}
	if err := stores.Cast.Save(ctx, seed.Cast); err != nil {
		logger.Error("seed cast failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seed completed", "movies", len(seed.Movies), "cast", len(seed.Cast), "driver", cfg.StoreDriver)
}

func readSeed(path string) (seedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return seedFile{}, err
	}
	defer f.Close()

	var seed seedFile
	if err := json.NewDecoder(f).Decode(&seed); err != nil {
		return seedFile{}, fmt.Errorf("decode %s: %w", path, err)
	}

	for i, m := range seed.Cast {
		if _, ok := m.MovieID(); !ok || m.ActorName() == "" {
			return seedFile{}, fmt.Errorf("cast entry %d: movieId and actorName are required", i)
		}
	}
	for i, m := range seed.Movies {
		if _, ok := m.MovieID(); !ok {
			return seedFile{}, fmt.Errorf("movie entry %d: movieId is required", i)
		}
	}

	return seed, nil
}
