// internal/core/services/device.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// DeviceService handles device registration and status changes
type DeviceService struct {
	repo   ports.DeviceRepository
	cache  *ListingCache
	logger *slog.Logger
}

var _ ports.DeviceService = (*DeviceService)(nil)

// NewDeviceService creates a new device service
func NewDeviceService(repo ports.DeviceRepository, cache *ListingCache, logger *slog.Logger) *DeviceService {
	return &DeviceService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "device")),
	}
}

// AddDevice registers an available device
func (s *DeviceService) AddDevice(ctx context.Context, name, model string) (*domain.Device, error) {
	device := &domain.Device{Name: name, Model: model}
	if err := device.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to save device: %w", err)
	}

	s.cache.invalidate(ctx, KeyDevices, KeyDashboard)
	s.logger.InfoContext(ctx, "device added",
		slog.Int64("id", device.ID),
		slog.String("name", device.Name))

	return device, nil
}

// UpdateDeviceStatus overwrites the status of the first device with the
// given name. Any known status may follow any other.
func (s *DeviceService) UpdateDeviceStatus(ctx context.Context, name, status string) (*domain.Device, error) {
	next, err := domain.ParseDeviceStatus(status)
	if err != nil {
		return nil, err
	}

	device, err := s.repo.FindFirstByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find device: %w", err)
	}
	if device == nil {
		return nil, domain.NewNotFoundError(domain.MsgDeviceNotFound)
	}

	if err := s.repo.UpdateStatus(ctx, device.ID, next); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError(domain.MsgDeviceNotFound)
		}
		return nil, fmt.Errorf("failed to update device status: %w", err)
	}

	previous := device.Status
	device.Status = next

	s.cache.invalidate(ctx, KeyDevices, KeyDashboard)
	s.logger.InfoContext(ctx, "device status updated",
		slog.Int64("id", device.ID),
		slog.String("from", previous.String()),
		slog.String("to", next.String()))

	return device, nil
}

// ListDevices returns every device by id
func (s *DeviceService) ListDevices(ctx context.Context) ([]domain.Device, error) {
	devices, err := cachedList(ctx, s.cache, KeyDevices, s.repo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}
