package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleet/internal/repository"
)

// AdminService performs file-level housekeeping across all entity
// collections.
type AdminService struct {
	collections map[string]repository.Maintenance
	backupDir   string
}

// NewAdminService creates an AdminService backing up into backupDir.
func NewAdminService(
	backupDir string,
	buses repository.BusRepository,
	drivers repository.DriverRepository,
	routes repository.RouteRepository,
	trips repository.TripRepository,
) *AdminService {
	return &AdminService{
		backupDir: backupDir,
		collections: map[string]repository.Maintenance{
			"buses":   buses,
			"drivers": drivers,
			"routes":  routes,
			"trips":   trips,
		},
	}
}

// BackupAll copies every present collection file into the backup
// directory and returns the created paths keyed by collection name.
// Collections without a backing file yet are skipped.
func (s *AdminService) BackupAll(ctx context.Context) (map[string]string, error) {
	created := make(map[string]string, len(s.collections))
	for name, coll := range s.collections {
		path, err := coll.Backup(ctx, s.backupDir)
		if err != nil {
			return nil, wrapStorage("backing up "+name, err)
		}
		if path == "" {
			continue
		}
		created[name] = path
	}
	logrus.WithField("files", len(created)).Info("backup completed")
	return created, nil
}

// CollectionSizes returns the byte size of every collection file.
func (s *AdminService) CollectionSizes(ctx context.Context) (map[string]int64, error) {
	sizes := make(map[string]int64, len(s.collections))
	for name, coll := range s.collections {
		size, err := coll.FileSize(ctx)
		if err != nil {
			return nil, wrapStorage("sizing "+name, err)
		}
		sizes[name] = size
	}
	return sizes, nil
}
