package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/smartlocker/internal/pkg/models"
	"gopkg.in/yaml.v3"
)

// lockerNamespace derives stable locker ids from their numbers
var lockerNamespace = uuid.MustParse("6f1c2b9e-3d4a-4c8e-9a6b-5e7d8f9a0b1c")

// LoadLockerRegistry reads the installed lockers from a YAML file
func LoadLockerRegistry(path string) (*models.LockerRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locker registry: %w", err)
	}
	return ParseLockerRegistry(data)
}

// ParseLockerRegistry validates registry YAML and fills defaults
func ParseLockerRegistry(data []byte) (*models.LockerRegistry, error) {
	var registry models.LockerRegistry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse locker registry: %w", err)
	}

	seen := make(map[string]struct{}, len(registry.Lockers))
	for i := range registry.Lockers {
		l := &registry.Lockers[i]
		l.Number = strings.TrimSpace(l.Number)
		if l.Number == "" {
			return nil, fmt.Errorf("locker %d: number is required", i)
		}
		if _, dup := seen[l.Number]; dup {
			return nil, fmt.Errorf("locker %s: duplicate number", l.Number)
		}
		seen[l.Number] = struct{}{}

		l.Type = models.LockerType(strings.ToUpper(string(l.Type)))
		switch l.Type {
		case models.LockerTypeInbound, models.LockerTypeStorage, models.LockerTypeMarketplace:
		case "":
			l.Type = models.LockerTypeMarketplace
		default:
			return nil, fmt.Errorf("locker %s: unknown type %q", l.Number, l.Type)
		}

		l.Status = models.LockerStatus(strings.ToUpper(string(l.Status)))
		switch l.Status {
		case models.LockerStatusAvailable, models.LockerStatusOccupied, models.LockerStatusMaintenance:
		case "":
			l.Status = models.LockerStatusAvailable
		default:
			return nil, fmt.Errorf("locker %s: unknown status %q", l.Number, l.Status)
		}

		if l.ID == uuid.Nil {
			l.ID = uuid.NewSHA1(lockerNamespace, []byte(l.Number))
		}
	}

	return &registry, nil
}
