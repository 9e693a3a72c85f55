package interfaces

import (
	"context"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, updates map[string]interface{}) error

	// Registration checks
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Voucher bookkeeping
	SetWelcomeVouchersAssigned(ctx context.Context, username string) error
	ListUsernames(ctx context.Context) ([]string, error)

	// Login bookkeeping
	TouchLastLogin(ctx context.Context, username string) error

	// Analytics
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}
