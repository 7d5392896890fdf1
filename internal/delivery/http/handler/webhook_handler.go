package handler

import (
	"log"

	"mkononi/internal/delivery/http/dto"
	"mkononi/internal/delivery/http/middleware"
	"mkononi/internal/pkg/response"
	"mkononi/internal/pkg/validation"
	"mkononi/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// WebhookHandler terminates the WhatsApp and USSD gateway callbacks.
// Both channels answer in-band: the reply text rides back on the HTTP
// response rather than through an outbound API call.
type WebhookHandler struct {
	whatsapp usecase.WhatsAppUsecase
	ussd     usecase.USSDUsecase
	logger   *log.Logger
}

func NewWebhookHandler(whatsapp usecase.WhatsAppUsecase, ussd usecase.USSDUsecase, logger *log.Logger) *WebhookHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &WebhookHandler{whatsapp: whatsapp, ussd: ussd, logger: logger}
}

func (h *WebhookHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/whatsapp", h.WhatsApp)
	r.Post("/ussd", h.USSD)
}

func (h *WebhookHandler) WhatsApp(c fiber.Ctx) error {
	var req dto.WhatsAppInboundRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	phone := usecase.PhoneFromSender(req.From)
	reply, err := h.whatsapp.Handle(c.Context(), phone, req.Body)
	if err != nil {
		// The sender sees a generic retry message; the fault stays in
		// the logs.
		h.logger.Printf("WhatsApp webhook failed | from=%s err=%v", phone, err)
		reply = "Service unavailable. Please try again later."
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.WhatsAppReplyResponse{Message: reply})
}

// USSD always answers 200 with a rendered CON/END text: the gateway
// treats any other shape as a dead session.
func (h *WebhookHandler) USSD(c fiber.Ctx) error {
	var req dto.USSDInboundRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reply := h.ussd.Handle(c.Context(), req.SessionID, req.PhoneNumber, req.Text)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.USSDReplyResponse{Response: reply.Render()})
}
