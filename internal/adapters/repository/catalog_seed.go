package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// CatalogSeeder is implemented by the catalog repositories.
type CatalogSeeder interface {
	AddModuleContents(ctx context.Context, moduleID string, contentIDs ...string) error
	AddTrackModules(ctx context.Context, trackID string, moduleIDs ...string) error
}

// CatalogFile is the JSON layout accepted by LoadCatalogFile:
//
//	{"modules": {"m1": ["c1", "c2"]}, "tracks": {"t1": ["m1"]}}
type CatalogFile struct {
	Modules map[string][]string `json:"modules"`
	Tracks  map[string][]string `json:"tracks"`
}

func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("repository: read catalog: %w", err)
	}

	var catalog CatalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("repository: decode catalog: %w", err)
	}
	return &catalog, nil
}

// SeedCatalog writes every module and track of the file into seeder.
func SeedCatalog(ctx context.Context, seeder CatalogSeeder, catalog *CatalogFile) error {
	for moduleID, contents := range catalog.Modules {
		if err := seeder.AddModuleContents(ctx, moduleID, contents...); err != nil {
			return fmt.Errorf("repository: seed module %s: %w", moduleID, err)
		}
	}
	for trackID, modules := range catalog.Tracks {
		if err := seeder.AddTrackModules(ctx, trackID, modules...); err != nil {
			return fmt.Errorf("repository: seed track %s: %w", trackID, err)
		}
	}
	return nil
}
