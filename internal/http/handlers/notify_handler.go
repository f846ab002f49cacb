package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"brocante/internal/domain"
	applog "brocante/internal/log"
	"brocante/internal/mail"
)

type NotifyHandler struct {
	Mail mail.Mailer
}

type notifyRequest struct {
	OrderNumber   string             `json:"orderNumber"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []domain.OrderItem `json:"items"`
	Total         decimal.Decimal    `json:"total"`
}

// SendOrderEmail is the inbound notification endpoint. Both emails are
// sent concurrently; either failure is reported as one aggregate 500.
func (h *NotifyHandler) SendOrderEmail(c *fiber.Ctx) error {
	var req notifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.OrderNumber == "" || req.CustomerEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing order fields"})
	}
	if h.Mail == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "email service not configured"})
	}

	n := mail.Notification{
		OrderNumber:   req.OrderNumber,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
		Total:         req.Total,
	}
	if err := h.Mail.SendOrderEmails(c.Context(), n); err != nil {
		applog.Error(c, "notify.send.fail", err, map[string]any{"order": req.OrderNumber})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send email"})
	}
	return c.JSON(fiber.Map{"success": true})
}
