package models

import (
	"time"

	"github.com/google/uuid"
)

// LockerType partitions lockers by the flow they serve
type LockerType string

const (
	LockerTypeInbound     LockerType = "INBOUND"
	LockerTypeStorage     LockerType = "STORAGE"
	LockerTypeMarketplace LockerType = "MARKETPLACE"
)

// LockerStatus is the occupancy state of a locker
type LockerStatus string

const (
	LockerStatusAvailable   LockerStatus = "AVAILABLE"
	LockerStatusOccupied    LockerStatus = "OCCUPIED"
	LockerStatusMaintenance LockerStatus = "MAINTENANCE"
)

// Locker is a physical compartment bound to a controllable device
type Locker struct {
	ID           uuid.UUID    `json:"id" db:"id" yaml:"id"`
	Number       string       `json:"number" db:"number" yaml:"number"`
	Type         LockerType   `json:"type" db:"type" yaml:"type"`
	Status       LockerStatus `json:"status" db:"status" yaml:"status"`
	DeviceToken  string       `json:"-" db:"device_token" yaml:"device_token"`
	ControlPin   string       `json:"-" db:"control_pin" yaml:"control_pin"`
	LastOpenedBy *uuid.UUID   `json:"last_opened_by,omitempty" db:"last_opened_by" yaml:"-"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at" yaml:"-"`
}

// LockerRegistry is the seed file describing installed lockers
type LockerRegistry struct {
	Lockers []Locker `yaml:"lockers"`
}
