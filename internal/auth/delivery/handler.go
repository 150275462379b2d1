package delivery

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"clipstream-backend/internal/auth/domain"
	"clipstream-backend/internal/auth/dto"
	"clipstream-backend/internal/auth/usecase"
	"clipstream-backend/pkg/config"
	"clipstream-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	avatar, closeAvatar, err := fileFromForm(c, "avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read avatar upload"})
		return
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}

	coverImage, closeCover, err := fileFromForm(c, "cover_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read cover image upload"})
		return
	}
	if closeCover != nil {
		defer closeCover()
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req, avatar, coverImage)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setAuthCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookie)
	if refreshToken == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	resp, err := h.authUsecase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setAuthCookies(c, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), user.ID); err != nil {
		h.writeError(c, err)
		return
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, resp *dto.TokenResponse) {
	secure := h.config.SecureCookies
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, resp.AccessToken, int(h.config.AccessTokenExpiry.Seconds()), "/", "", secure, true)
	c.SetCookie(refreshCookie, resp.RefreshToken, int(h.config.RefreshTokenExpiry.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	secure := h.config.SecureCookies
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", secure, true)
}

func (h *AuthHandler) writeError(c *gin.Context, err error) {
	var authErr *domain.Error
	if errors.As(err, &authErr) {
		status := authErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, gin.H{"error": authErr.Message})
		return
	}
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// fileFromForm turns an optional multipart file field into a storage.File.
// A missing field is (nil, nil, nil); whether the field is required is the
// usecase's call.
func fileFromForm(c *gin.Context, field string) (*storage.File, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	return &storage.File{
		Reader:      f,
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType(header),
	}, func() { f.Close() }, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
