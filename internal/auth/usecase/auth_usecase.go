package usecase

import (
	"context"
	"errors"
	"strings"

	"clipstream-backend/internal/auth/domain"
	"clipstream-backend/internal/auth/dto"
	"clipstream-backend/internal/auth/repository"
	"clipstream-backend/pkg/hash"
	"clipstream-backend/pkg/storage"
	"clipstream-backend/pkg/token"
)

// authUsecase implements AuthUsecase over the credential store, the password
// hasher, the token issuer and the media uploader.
type authUsecase struct {
	userRepo repository.UserRepository
	hasher   *hash.Hasher
	issuer   *token.Issuer
	uploader storage.Uploader
}

func NewAuthUsecase(userRepo repository.UserRepository, hasher *hash.Hasher, issuer *token.Issuer, uploader storage.Uploader) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		uploader: uploader,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest, avatar, coverImage *storage.File) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	password := strings.TrimSpace(req.Password)

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if fullName == "" {
		missing = append(missing, "full_name")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.E(domain.KindValidation, "missing or blank fields: "+strings.Join(missing, ", "))
	}

	username = strings.ToLower(username)
	email = strings.ToLower(email)

	existing, err := u.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}
	if existing != nil {
		return nil, domain.E(domain.KindConflict, "user already exists")
	}

	if avatar == nil {
		return nil, domain.E(domain.KindValidation, "avatar is required")
	}

	avatarURL, err := u.uploader.Upload(ctx, *avatar)
	if err != nil {
		return nil, domain.Wrap(domain.KindUploadFailed, "avatar upload failed", err)
	}

	var coverURL string
	if coverImage != nil {
		coverURL, err = u.uploader.Upload(ctx, *coverImage)
		if err != nil {
			return nil, domain.Wrap(domain.KindUploadFailed, "cover image upload failed", err)
		}
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, domain.Wrap(domain.KindCreationFailed, "could not register user", err)
	}

	user := &domain.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashed,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentifier) { // lost the race after the pre-check
			return nil, domain.Wrap(domain.KindConflict, "user already exists", err)
		}
		return nil, domain.Wrap(domain.KindCreationFailed, "could not register user", err)
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" && email == "" {
		return nil, domain.E(domain.KindValidation, "username or email is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.E(domain.KindValidation, "password is required")
	}

	identifier := strings.ToLower(username)
	if identifier == "" {
		identifier = strings.ToLower(email)
	}

	user, err := u.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}
	if user == nil {
		return nil, domain.E(domain.KindNotFound, "user does not exist")
	}

	ok, err := u.hasher.Verify(req.Password, user.Password)
	if err != nil {
		return nil, domain.Wrap(domain.KindHashFormat, "stored credentials are unreadable", err)
	}
	if !ok {
		return nil, domain.E(domain.KindInvalidCredentials, "invalid credentials")
	}

	return u.issueSession(ctx, user)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if refreshToken == "" {
		return nil, domain.E(domain.KindUnauthenticated, "refresh token required")
	}

	claims, err := u.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnauthenticated, "invalid refresh token", err)
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}
	if user == nil {
		return nil, domain.E(domain.KindUnauthenticated, "invalid refresh token")
	}

	accessToken, err := u.issuer.IssueAccess(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, domain.Wrap(domain.KindTokenInvalid, "could not issue access token", err)
	}
	newRefresh, err := u.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, domain.Wrap(domain.KindTokenInvalid, "could not issue refresh token", err)
	}

	// The conditional rotation is the only check against the stored value:
	// it compares and swaps in one statement, so of two refreshes racing on
	// the same token at most one can win.
	if err := u.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, newRefresh); err != nil {
		if errors.Is(err, repository.ErrStaleRefreshToken) {
			return nil, domain.Wrap(domain.KindUnauthenticated, "refresh token is no longer valid", err)
		}
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.userRepo.SetRefreshToken(ctx, userID, ""); err != nil {
		return domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}
	return nil
}

func (u *authUsecase) ValidateAccess(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := u.issuer.ParseAccess(tokenString)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnauthenticated, "invalid or expired token", err)
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}
	if user == nil {
		return nil, domain.E(domain.KindUnauthenticated, "invalid or expired token")
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (u *authUsecase) issueSession(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := u.issuer.IssueAccess(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, domain.Wrap(domain.KindTokenInvalid, "could not issue access token", err)
	}
	refreshToken, err := u.issuer.IssueRefresh(user.ID)
	if err != nil {
		return nil, domain.Wrap(domain.KindTokenInvalid, "could not issue refresh token", err)
	}

	if err := u.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, domain.Wrap(domain.KindUnavailable, "user store unavailable", err)
	}

	sanitized := user.Sanitized()
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &sanitized,
	}, nil
}
