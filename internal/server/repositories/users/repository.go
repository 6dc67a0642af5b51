package users

import (
	"context"

	"github.com/dmitrijs2005/pickgate/internal/server/models"
)

// Repository persists user records. Create returns common.ErrUserAlreadyExists
// when the email is taken; the Find methods return common.ErrorNotFound when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}
