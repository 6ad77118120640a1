package auth

import (
	"errors"
	"fmt"

	"auto-repair-site/logger"
	userModel "auto-repair-site/models/user"
	"auto-repair-site/storage"
	"auto-repair-site/types"
	authTypes "auto-repair-site/types/auth"
	"auto-repair-site/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthController handles local admin accounts. Credentials are checked
// against the users table and a bearer token is issued for the protected
// integration endpoints.
type AuthController struct {
	Store  storage.Storage
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(store storage.Storage, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{
		Store:  store,
		Logger: asyncLogger,
	}
}

// Register creates a local user account
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse register body", err)
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

	created, err := ac.Store.CreateUser(&userModel.User{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Success: false,
				Message: "Username already exists",
			})
		}
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while creating the user",
		})
	}

	logger.Success(fmt.Sprintf("User created with ID: %d", created.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Success: true,
		Message: "User registered successfully",
		Data:    created,
	})
}

// Login checks credentials and issues a bearer token
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse login body", err)
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

	found, err := ac.Store.GetUserByUsername(req.Username)
	if err != nil || found.Password != req.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Success: false,
			Message: "Invalid username or password",
		})
	}

	token, err := utils.GenerateToken(found)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Message: "An error occurred while logging in",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Success: true,
		Message: "Logged in successfully",
		Token:   token,
		Data:    found,
	})
}
