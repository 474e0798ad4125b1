package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
)

// MaxUploadBytes bounds avatar and room image uploads.
const MaxUploadBytes = 5 << 20

type UserHandler struct {
	Auth   *app.AuthService
	Users  *app.UserService
	Logger *logrus.Logger
}

func NewUserHandler(auth *app.AuthService, users *app.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Logger: logger}
}

type updateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=120"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type listUsersQuery struct {
	Q      string `form:"q"`
	Role   string `form:"role" binding:"omitempty,role"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

type permissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required,dive,permission"`
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Auth.Profile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Auth.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), app.ProfileInput{Name: req.Name, AvatarURL: req.AvatarURL})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	name, ctype, data, ok := readUpload(c)
	if !ok {
		return
	}
	u, err := h.Auth.UploadAvatar(c.Request.Context(), middleware.ActorFrom(c), name, ctype, data)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "avatar updated", nil)
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	users, total, err := h.Users.List(c.Request.Context(), repo.UserFilter{Query: q.Q, Role: entity.Role(q.Role), Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	response.Success(c, http.StatusOK, out, "users", response.PageMeta{Total: total, Limit: q.Limit, Offset: q.Offset})
}

// Search GET /api/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	hits, err := h.Users.Search(c.Request.Context(), c.Query("q"), 20)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "users", nil)
}

// UpdateRole PATCH /api/users/:id/role (superadmin)
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Users.UpdateRole(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), entity.Role(req.Role))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "role updated", nil)
}

// UpdatePermissions PATCH /api/users/:id/permissions (superadmin)
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	var req permissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Users.UpdatePermissions(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Permissions)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUser(u), "permissions updated", nil)
}

// readUpload reads the multipart "file" field, answering the request itself
// on failure.
func readUpload(c *gin.Context) (name, contentType string, data []byte, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return "", "", nil, false
	}
	if fh.Size > MaxUploadBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", gin.H{"max_bytes": MaxUploadBytes})
		return "", "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return "", "", nil, false
	}
	defer f.Close()
	data, err = io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil || len(data) > MaxUploadBytes {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return "", "", nil, false
	}
	contentType = fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return fh.Filename, contentType, data, true
}
