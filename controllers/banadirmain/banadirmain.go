package banadirmain

import (
	"errors"

	"auto-repair-site/logger"
	apptModel "auto-repair-site/models/appointment"
	banadirMain "auto-repair-site/services/banadirmain"
	"auto-repair-site/storage"
	"auto-repair-site/types"
	banadirTypes "auto-repair-site/types/banadirmain"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// IntegrationController exposes the Banadir Main trigger endpoints used by
// the admin dashboard.
type IntegrationController struct {
	Service *banadirMain.Service
	Store   storage.Storage
	Logger  *logger.AsyncLogger
}

// NewIntegrationController creates a new integration controller
func NewIntegrationController(service *banadirMain.Service, store storage.Storage, asyncLogger *logger.AsyncLogger) *IntegrationController {
	return &IntegrationController{
		Service: service,
		Store:   store,
		Logger:  asyncLogger,
	}
}

// Init seeds the default integration configuration
func (ic *IntegrationController) Init(c *fiber.Ctx) error {
	if err := ic.Service.Initialize(); err != nil {
		logger.Error("Failed to initialize Banadir Main integration", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "Failed to initialize Banadir Main integration",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: "Banadir Main integration initialized successfully",
	})
}

// SyncContacts triggers a contact submission push
func (ic *IntegrationController) SyncContacts(c *fiber.Ctx) error {
	count, err := ic.Service.SyncContactSubmissions()
	if err != nil {
		logger.Error("Contact submission sync failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "Failed to sync contact submissions",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.SyncResponse{
		Success: true,
		Message: "Contact submissions synced with Banadir Main",
		Count:   count,
	})
}

// SyncAppointments triggers an appointment pull
func (ic *IntegrationController) SyncAppointments(c *fiber.Ctx) error {
	count, err := ic.Service.FetchAppointments()
	if err != nil {
		logger.Error("Appointment sync failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "Failed to fetch appointments from Banadir Main",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.SyncResponse{
		Success: true,
		Message: "Appointments synced from Banadir Main",
		Count:   count,
	})
}

// SyncAll runs the contact push followed by the appointment pull
func (ic *IntegrationController) SyncAll(c *fiber.Ctx) error {
	result, err := ic.Service.RunCompleteSync()
	if err != nil {
		logger.Error("Complete sync failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "Complete sync with Banadir Main failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: "Complete sync finished",
		Data:    result,
	})
}

// ListAppointments returns cached appointments for the admin dashboard.
// Passing ?date=today narrows the listing to the current day.
func (ic *IntegrationController) ListAppointments(c *fiber.Ctx) error {
	appointments, err := ic.Store.ListMainAppointments()
	if err != nil {
		logger.Error("Failed to list cached appointments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while retrieving appointments",
		})
	}

	if c.Query("date") == "today" {
		from := now.BeginningOfDay()
		to := now.EndOfDay()
		var todays []apptModel.MainAppointment
		for _, appt := range appointments {
			if appt.AppointmentDate.Before(from) || appt.AppointmentDate.After(to) {
				continue
			}
			todays = append(todays, appt)
		}
		appointments = todays
	}

	if appointments == nil {
		appointments = []apptModel.MainAppointment{}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Data:    appointments,
	})
}

// GetConfig returns the integration settings with the API key masked
func (ic *IntegrationController) GetConfig(c *fiber.Ctx) error {
	settings, err := ic.Service.Settings()
	if err != nil {
		logger.Error("Failed to read integration settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while reading integration settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Data:    settings,
	})
}

// UpdateConfig writes one integration setting
func (ic *IntegrationController) UpdateConfig(c *fiber.Ctx) error {
	var req banadirTypes.ConfigUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse config update body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Validation error",
			Errors:  validationErr,
		})
	}

	if err := ic.Service.UpdateSetting(req.Key, req.Value); err != nil {
		logger.Error("Failed to update integration setting", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "Failed to update integration setting",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: "Integration setting updated",
	})
}

// LinkAccount links a local user to its Banadir Main account
func (ic *IntegrationController) LinkAccount(c *fiber.Ctx) error {
	var req banadirTypes.LinkAccountRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse link account body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Validation error",
			Errors:  validationErr,
		})
	}

	linked, err := ic.Service.LinkAccount(req.UserID, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, banadirMain.ErrIntegrationDisabled):
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Success: false,
				Message: "Banadir Main integration is disabled",
			})
		case errors.Is(err, storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Success: false,
				Message: "User not found",
			})
		default:
			logger.Error("Failed to link account with Banadir Main", err)
			return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
				Success: false,
				Message: "Failed to authenticate with Banadir Main",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: "Account linked with Banadir Main",
		Data:    linked,
	})
}
