package service

import (
	"context"
	"errors"

	"github.com/medikita/platform/internal/cache"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/repository"
)

const directoryCachePrefix = "directory:"

// DirectoryService coordinates the doctor and partner listings.
type DirectoryService struct {
	doctors  repository.DoctorRepository
	partners repository.PartnerRepository
	cache    *cache.Store
}

// DirectoryDependencies bundles repositories for the directory service.
type DirectoryDependencies struct {
	DoctorRepo  repository.DoctorRepository
	PartnerRepo repository.PartnerRepository
	Cache       *cache.Store
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		doctors:  deps.DoctorRepo,
		partners: deps.PartnerRepo,
		cache:    deps.Cache,
	}
}

// ListActiveDoctors returns the public doctor directory.
func (s *DirectoryService) ListActiveDoctors(ctx context.Context) ([]domain.Doctor, error) {
	key := directoryCachePrefix + "doctors"
	var cached []domain.Doctor
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	doctors, err := s.doctors.List(ctx, true)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, doctors)
	return doctors, nil
}

// GetDoctor returns one doctor.
func (s *DirectoryService) GetDoctor(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// ListAllDoctors returns every doctor for the admin panel.
func (s *DirectoryService) ListAllDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return s.doctors.List(ctx, false)
}

// CreateDoctor validates and persists a new doctor.
func (s *DirectoryService) CreateDoctor(ctx context.Context, doctor *domain.Doctor) error {
	if doctor.Name == "" {
		return errors.New("name required")
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

// UpdateDoctor persists doctor changes.
func (s *DirectoryService) UpdateDoctor(ctx context.Context, doctor *domain.Doctor) error {
	if doctor.Name == "" {
		return errors.New("name required")
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

// DeleteDoctor removes a doctor.
func (s *DirectoryService) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.doctors.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

// ListActivePartners returns the public partner listing, tier-ordered.
func (s *DirectoryService) ListActivePartners(ctx context.Context) ([]domain.Partner, error) {
	key := directoryCachePrefix + "partners"
	var cached []domain.Partner
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	partners, err := s.partners.List(ctx, true)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, key, partners)
	return partners, nil
}

// ListAllPartners returns every partner for the admin panel.
func (s *DirectoryService) ListAllPartners(ctx context.Context) ([]domain.Partner, error) {
	return s.partners.List(ctx, false)
}

// CreatePartner validates and persists a new partner.
func (s *DirectoryService) CreatePartner(ctx context.Context, partner *domain.Partner) error {
	if err := validatePartner(partner); err != nil {
		return err
	}
	if err := s.partners.Create(ctx, partner); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

// UpdatePartner persists partner changes.
func (s *DirectoryService) UpdatePartner(ctx context.Context, partner *domain.Partner) error {
	if err := validatePartner(partner); err != nil {
		return err
	}
	if err := s.partners.Update(ctx, partner); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

// DeletePartner removes a partner.
func (s *DirectoryService) DeletePartner(ctx context.Context, id string) error {
	if err := s.partners.Delete(ctx, id); err != nil {
		return err
	}
	return s.cache.InvalidatePrefix(ctx, directoryCachePrefix)
}

func validatePartner(partner *domain.Partner) error {
	if partner.Name == "" {
		return errors.New("name required")
	}
	switch partner.Tier {
	case domain.PartnerTierPlatinum, domain.PartnerTierGold, domain.PartnerTierSilver:
		return nil
	default:
		return errors.New("unknown partner tier")
	}
}
