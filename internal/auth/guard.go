package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"socialhub/internal/common"
)

// AccountGuard loads the live user behind a session token. A deleted account
// loses its session and a suspended one is refused until the suspension ends.
type AccountGuard struct {
	repo AccountRepository
	now  func() time.Time
}

func NewAccountGuard(repo AccountRepository) *AccountGuard {
	return &AccountGuard{repo: repo, now: time.Now}
}

// CheckAccount implements common.AccountChecker. Moderator accounts are
// managed offline and pass through.
func (g *AccountGuard) CheckAccount(ctx context.Context, p common.Principal) error {
	if p.Kind != common.KindUser {
		return nil
	}
	user, err := g.repo.GetUserByID(ctx, p.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: account no longer exists", common.ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if user.IsDisabled(g.now()) {
		return fmt.Errorf("%w until %s", common.ErrAccountDisabled, user.DisabledUntil.UTC().Format(time.RFC3339))
	}
	return nil
}
