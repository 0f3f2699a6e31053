package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medikita/platform/internal/api/dto"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/service"
	apperrors "github.com/medikita/platform/pkg/util"
)

// DirectoryHandler exposes doctor and partner listings.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// ListDoctors GET /api/doctors.
func (h *DirectoryHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.directory.ListActiveDoctors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doctorResponses(doctors)})
}

// ListPartners GET /api/partners.
func (h *DirectoryHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := h.directory.ListActivePartners(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": partnerResponses(partners)})
}

// AdminListDoctors GET /admin/doctors.
func (h *DirectoryHandler) AdminListDoctors(c *fiber.Ctx) error {
	doctors, err := h.directory.ListAllDoctors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doctorResponses(doctors)})
}

// AdminCreateDoctor POST /admin/doctors.
func (h *DirectoryHandler) AdminCreateDoctor(c *fiber.Ctx) error {
	var req dto.DoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	doctor := doctorFromRequest(&req)
	if err := h.directory.CreateDoctor(c.UserContext(), doctor); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": doctorResponse(doctor)})
}

// AdminUpdateDoctor PUT /admin/doctors/:id.
func (h *DirectoryHandler) AdminUpdateDoctor(c *fiber.Ctx) error {
	var req dto.DoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	doctor := doctorFromRequest(&req)
	doctor.ID = c.Params("id")
	if err := h.directory.UpdateDoctor(c.UserContext(), doctor); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": doctorResponse(doctor)})
}

// AdminDeleteDoctor DELETE /admin/doctors/:id.
func (h *DirectoryHandler) AdminDeleteDoctor(c *fiber.Ctx) error {
	if err := h.directory.DeleteDoctor(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminListPartners GET /admin/partners.
func (h *DirectoryHandler) AdminListPartners(c *fiber.Ctx) error {
	partners, err := h.directory.ListAllPartners(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": partnerResponses(partners)})
}

// AdminCreatePartner POST /admin/partners.
func (h *DirectoryHandler) AdminCreatePartner(c *fiber.Ctx) error {
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	partner := partnerFromRequest(&req)
	if err := h.directory.CreatePartner(c.UserContext(), partner); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": partnerResponse(partner)})
}

// AdminUpdatePartner PUT /admin/partners/:id.
func (h *DirectoryHandler) AdminUpdatePartner(c *fiber.Ctx) error {
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	partner := partnerFromRequest(&req)
	partner.ID = c.Params("id")
	if err := h.directory.UpdatePartner(c.UserContext(), partner); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": partnerResponse(partner)})
}

// AdminDeletePartner DELETE /admin/partners/:id.
func (h *DirectoryHandler) AdminDeletePartner(c *fiber.Ctx) error {
	if err := h.directory.DeletePartner(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func doctorFromRequest(req *dto.DoctorRequest) *domain.Doctor {
	return &domain.Doctor{
		Name:        req.Name,
		SpecialtyID: req.SpecialtyID,
		SpecialtyEN: req.SpecialtyEN,
		Hospital:    req.Hospital,
		Schedule:    req.Schedule,
		PhotoURL:    req.PhotoURL,
		Active:      req.Active,
	}
}

func doctorResponse(d *domain.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		SpecialtyID: d.SpecialtyID,
		SpecialtyEN: d.SpecialtyEN,
		Hospital:    d.Hospital,
		Schedule:    d.Schedule,
		PhotoURL:    d.PhotoURL,
		Active:      d.Active,
	}
}

func doctorResponses(doctors []domain.Doctor) []dto.DoctorResponse {
	items := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		items = append(items, doctorResponse(&doctors[i]))
	}
	return items
}

func partnerFromRequest(req *dto.PartnerRequest) *domain.Partner {
	return &domain.Partner{
		Name:    req.Name,
		Tier:    domain.PartnerTier(req.Tier),
		LogoURL: req.LogoURL,
		SiteURL: req.SiteURL,
		Active:  req.Active,
	}
}

func partnerResponse(p *domain.Partner) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:      p.ID,
		Name:    p.Name,
		Tier:    string(p.Tier),
		LogoURL: p.LogoURL,
		SiteURL: p.SiteURL,
		Active:  p.Active,
	}
}

func partnerResponses(partners []domain.Partner) []dto.PartnerResponse {
	items := make([]dto.PartnerResponse, 0, len(partners))
	for i := range partners {
		items = append(items, partnerResponse(&partners[i]))
	}
	return items
}
