package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muhammad-Abrar2010/HomeHub-Backend/models"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/services"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/store"
	"github.com/Muhammad-Abrar2010/HomeHub-Backend/utils"
)

type UserController struct {
	users           store.Collection
	accounts        *services.AccountService
	invalidateCache func(context.Context)
}

func NewUserController(s store.Store, accounts *services.AccountService) *UserController {
	return &UserController{
		users:    s.Users(),
		accounts: accounts,
		invalidateCache: func(ctx context.Context) {
			utils.InvalidateCache(ctx, utils.EstateListCacheKey)
		},
	}
}

// estatesMutated reports whether an account cascade may have deleted estates:
// either it succeeded, or it failed partway with some steps already applied.
func estatesMutated(err error) bool {
	if err == nil {
		return true
	}
	var cascade *services.PartialCascadeError
	return errors.As(err, &cascade)
}

func (uc *UserController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var existing models.User
	err := uc.users.FindOne(c.Request().Context(), bson.M{"email": req.Email}, &existing)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "User with this email already exists"})
	}
	if err != store.ErrNoDocuments {
		// Inserting on an inconclusive lookup could duplicate the email.
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check existing user"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		Name:      req.Name,
		Photo:     req.Photo,
		Role:      models.RoleBuyer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	id, err := uc.users.InsertOne(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}
	user.ID = id

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

func (uc *UserController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	if err := uc.users.FindOne(c.Request().Context(), bson.M{"email": req.Email}, &user); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}
	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// UpsertUser records a user on first sign-in. A duplicate email is a no-op
// that signals the existing account rather than an error.
func (uc *UserController) UpsertUser(c echo.Context) error {
	var user models.User
	if err := c.Bind(&user); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if user.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is required"})
	}

	var existing models.User
	err := uc.users.FindOne(c.Request().Context(), bson.M{"email": user.Email}, &existing)
	if err == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"message":    "user already exists",
			"insertedId": nil,
		})
	}
	if err != store.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check existing user"})
	}

	if user.Role == "" {
		user.Role = models.RoleBuyer
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	id, err := uc.users.InsertOne(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"insertedId": id.Hex()})
}

func (uc *UserController) ListUsers(c echo.Context) error {
	var users []models.User
	if err := uc.users.Find(c.Request().Context(), bson.M{}, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve users"})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(http.StatusOK, users)
}

func (uc *UserController) MakeAdmin(c echo.Context) error {
	return uc.setRole(c, models.RoleAdmin)
}

func (uc *UserController) MakeAgent(c echo.Context) error {
	return uc.setRole(c, models.RoleAgent)
}

func (uc *UserController) setRole(c echo.Context, role string) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}
	matched, err := uc.users.UpdateOne(c.Request().Context(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update user role"})
	}
	if matched == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User role updated to " + role})
}

func (uc *UserController) MarkFraud(c echo.Context) error {
	deleted, err := uc.accounts.MarkFraudulent(c.Request().Context(), c.Param("id"))
	if estatesMutated(err) {
		uc.invalidateCache(c.Request().Context())
	}
	if err != nil {
		return serviceError(c, err, "Failed to mark user as fraud and delete data")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":                "User marked as fraud and associated data deleted successfully",
		"deletedPropertiesCount": deleted,
	})
}

func (uc *UserController) DeleteUserByID(c echo.Context) error {
	err := uc.accounts.PurgeUser(c.Request().Context(), c.Param("id"))
	if estatesMutated(err) {
		uc.invalidateCache(c.Request().Context())
	}
	if err != nil {
		return serviceError(c, err, "Failed to delete user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User and associated properties deleted successfully"})
}

func (uc *UserController) DeleteUserByEmail(c echo.Context) error {
	err := uc.accounts.PurgeUser(c.Request().Context(), c.Param("email"))
	if estatesMutated(err) {
		uc.invalidateCache(c.Request().Context())
	}
	if err != nil {
		return serviceError(c, err, "Failed to delete user and properties")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User and associated properties deleted successfully"})
}
