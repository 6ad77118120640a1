package contact

import (
	"errors"
	"fmt"

	"auto-repair-site/logger"
	contactModel "auto-repair-site/models/contact"
	"auto-repair-site/storage"
	"auto-repair-site/types"
	contactTypes "auto-repair-site/types/contact"

	"github.com/gofiber/fiber/v2"
)

// ContactController handles contact form submissions and admin reads.
type ContactController struct {
	Storage storage.Storage
	Logger  *logger.AsyncLogger
}

// NewContactController creates a new contact controller
func NewContactController(store storage.Storage, asyncLogger *logger.AsyncLogger) *ContactController {
	return &ContactController{
		Storage: store,
		Logger:  asyncLogger,
	}
}

// Store validates and persists a contact form submission
func (cc *ContactController) Store(c *fiber.Ctx) error {
	var req contactTypes.ContactCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse contact request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Validation error",
			Errors:  "request body must be valid JSON",
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Validation error",
			Errors:  validationErr,
		})
	}

	submission := contactModel.ContactSubmission{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Service:       req.Service,
		Vehicle:       req.Vehicle,
		InsuranceHelp: req.InsuranceHelp,
	}
	if req.Message != "" {
		submission.Message = &req.Message
	}

	stored, err := cc.Storage.CreateContactSubmission(&submission)
	if err != nil {
		logger.Error("Failed to store contact submission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while processing your request",
		})
	}

	logger.Success(fmt.Sprintf("Contact submission created with ID: %d", stored.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Success: true,
		Message: "Contact form submitted successfully",
		Data:    stored,
	})
}

// Index returns all contact submissions ordered by creation time
func (cc *ContactController) Index(c *fiber.Ctx) error {
	submissions, err := cc.Storage.GetContactSubmissions()
	if err != nil {
		logger.Error("Failed to list contact submissions", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while retrieving contact submissions",
		})
	}
	if submissions == nil {
		submissions = []contactModel.ContactSubmission{}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Data:    submissions,
	})
}

// Show returns a single contact submission by id
func (cc *ContactController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Message: "Invalid ID format",
		})
	}
	// A negative id parses fine but can never match a record.
	if id < 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Success: false,
			Message: "Contact submission not found",
		})
	}

	submission, err := cc.Storage.GetContactSubmissionByID(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Success: false,
				Message: "Contact submission not found",
			})
		}
		logger.Error("Failed to load contact submission", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while retrieving the contact submission",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Data:    submission,
	})
}
