package pawsitserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/pawsit/pawsit-server/internal/domains/users/application"
	"github.com/pawsit/pawsit-server/internal/domains/users/domain"
	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
	"github.com/pawsit/pawsit-server/internal/shared/projection"
)

// UserAPI handles account endpoints.
type UserAPI struct {
	service ports.Service
}

// NewUserAPI wires the account endpoints to the user service.
func NewUserAPI(service ports.Service) UserAPI {
	return UserAPI{service: service}
}

// CreateUser registers a new account.
func (api UserAPI) CreateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := domain.NewUser(payload.ID, payload.Email, payload.Name, domain.Role(payload.Role))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Password != "" {
		if err := user.SetPassword(payload.Password); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
	}
	created, err := api.service.Create(c.Request.Context(), user)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserModel(created))
}

// GetUser returns a single account by id.
func (api UserAPI) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserModel(user))
}

// UpdateUser replaces the mutable fields of an account.
func (api UserAPI) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated := &domain.User{
		Email: payload.Email,
		Name:  payload.Name,
		Role:  domain.Role(payload.Role),
	}
	user, err := api.service.Update(c.Request.Context(), id, updated)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserModel(user))
}

// DeleteUser removes an account.
func (api UserAPI) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "userId")
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers returns all accounts, optionally filtered by role.
func (api UserAPI) ListUsers(c *gin.Context) {
	var (
		users []*projection.Projection[*domain.User]
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = api.service.FindByRole(c.Request.Context(), domain.Role(role))
	} else {
		users, err = api.service.List(c.Request.Context())
	}
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserModels(users))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser authenticates an account and issues a session token.
func (api UserAPI) LoginUser(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err)
			return
		}
		respondUserServiceError(c, err)
		return
	}
	c.Header("Set-Cookie", "api_key="+token)
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token})
}

type logoutRequest struct {
	Email string `json:"email"`
}

// LogoutUser revokes the sessions of an account.
func (api UserAPI) LogoutUser(c *gin.Context) {
	var payload logoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	api.service.Logout(c.Request.Context(), payload.Email)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

func respondUserServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ports.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, app.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

func toUserModel(user *projection.Projection[*domain.User]) User {
	if user == nil || user.Entity == nil {
		return User{}
	}
	entity := user.Entity
	return User{
		ID:          entity.ID,
		Email:       entity.Email,
		Name:        entity.Name,
		Role:        string(entity.Role),
		Rating:      entity.Rating,
		ReviewCount: entity.ReviewCount,
	}
}

func toUserModels(users []*projection.Projection[*domain.User]) []User {
	models := make([]User, 0, len(users))
	for _, user := range users {
		models = append(models, toUserModel(user))
	}
	return models
}
