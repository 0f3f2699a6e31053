package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medikita/platform/internal/api/dto"
	"github.com/medikita/platform/internal/auth"
	"github.com/medikita/platform/internal/domain"
	"github.com/medikita/platform/internal/repository"
	"github.com/medikita/platform/internal/service"
	apperrors "github.com/medikita/platform/pkg/util"
)

// OrdersHandler exposes checkout and order tracking endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// CreateOrder POST /api/orders.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign-in required")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("order requires at least one item", nil)
	}

	lines := make([]service.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(c.UserContext(), user, lines)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return apperrors.NewConflict("insufficient stock", nil)
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}

// ListOrders GET /api/orders.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign-in required")
	}

	limit, offset := parsePaging(c)
	orders, err := h.orders.ListForUser(c.UserContext(), user, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// GetOrder GET /api/orders/:ref.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign-in required")
	}

	order, err := h.orders.GetForUser(c.UserContext(), user, c.Params("ref"))
	if err != nil {
		// Another user's order looks the same as a missing one.
		if errors.Is(err, service.ErrNotOwner) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// SyncOrder POST /api/orders/:ref/sync pulls invoice status from the
// payment provider and applies any transition.
func (h *OrdersHandler) SyncOrder(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("sign-in required")
	}

	// Ownership check before sync; admins use the /admin route instead.
	if _, err := h.orders.GetForUser(c.UserContext(), user, c.Params("ref")); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			return apperrors.NewNotFound("order", nil)
		}
		return err
	}

	order, err := h.orders.SyncInvoice(c.UserContext(), c.Params("ref"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// AdminListOrders GET /admin/orders.
func (h *OrdersHandler) AdminListOrders(c *fiber.Ctx) error {
	limit, offset := parsePaging(c)
	orders, err := h.orders.ListAll(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// AdminSyncOrder POST /admin/orders/:ref/invoice/sync.
func (h *OrdersHandler) AdminSyncOrder(c *fiber.Ctx) error {
	order, err := h.orders.SyncInvoice(c.UserContext(), c.Params("ref"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

func orderResponse(o *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.NameEN,
			PriceIDR:  item.PriceIDR,
			Quantity:  item.Quantity,
		})
	}
	return dto.OrderResponse{
		Ref:        o.Ref,
		Status:     string(o.Status),
		TotalIDR:   o.TotalIDR,
		InvoiceURL: o.InvoiceURL,
		CreatedAt:  o.CreatedAt,
		Items:      items,
	}
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orderResponse(&orders[i]))
	}
	return items
}
