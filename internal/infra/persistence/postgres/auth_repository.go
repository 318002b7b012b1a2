package postgres

import (
	"context"

	"lifeline/internal/domain/entity"
	domainerrors "lifeline/internal/domain/errors"
	"lifeline/internal/domain/repository"
	"lifeline/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// authRepository implements the repository.AuthRepository interface.
type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository is the constructor for authRepository.
func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{
		db: db,
	}
}

// Create persists a new credential.
func (repo *authRepository) Create(ctx context.Context, auth *entity.Authentication) error {
	authM := fromAuthDomain(auth)

	if err := repo.db.WithContext(ctx).Create(authM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WithCause(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidInput.WithMessage("missing required credential information").WithCause(err)
		}

		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to create authentication"))
	}

	auth.ID = authM.ID
	auth.CreatedAt = authM.CreatedAt
	auth.UpdatedAt = authM.UpdatedAt

	return nil
}

// FindByEmail retrieves the password credential registered for an email.
func (repo *authRepository) FindByEmail(ctx context.Context, email string) (*entity.Authentication, error) {
	var authM model.AuthenticationModel

	if err := repo.db.WithContext(ctx).
		Where("email = ? AND provider = ?", email, string(entity.ProviderPassword)).
		First(&authM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, errors.Wrap(err, "failed to find authentication by email")
	}

	return toAuthDomain(&authM), nil
}

// FindByUID retrieves the credential bound to an identifier.
func (repo *authRepository) FindByUID(ctx context.Context, uid string) (*entity.Authentication, error) {
	var authM model.AuthenticationModel

	if err := repo.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&authM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, errors.Wrap(err, "failed to find authentication by uid")
	}

	return toAuthDomain(&authM), nil
}

// UpdatePasswordHash replaces the stored hash for an identifier.
func (repo *authRepository) UpdatePasswordHash(ctx context.Context, uid, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AuthenticationModel{}).
		Where("uid = ? AND provider = ?", uid, string(entity.ProviderPassword)).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(result.Error, "failed to update password hash"))
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthNotFound
	}

	return nil
}

// DeleteByUID removes every credential bound to an identifier.
func (repo *authRepository) DeleteByUID(ctx context.Context, uid string) error {
	if err := repo.db.WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&model.AuthenticationModel{}).Error; err != nil {
		return domainerrors.DatabaseExecuteError(errors.Wrap(err, "failed to delete authentications"))
	}

	return nil
}

// --- Mapper Functions ---

func toAuthDomain(data *model.AuthenticationModel) *entity.Authentication {
	if data == nil {
		return nil
	}

	return &entity.Authentication{
		ID:           data.ID,
		UID:          data.UID,
		Provider:     entity.AuthProvider(data.Provider),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromAuthDomain(data *entity.Authentication) *model.AuthenticationModel {
	if data == nil {
		return nil
	}

	return &model.AuthenticationModel{
		ID:           data.ID,
		UID:          data.UID,
		Provider:     string(data.Provider),
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
