package service

import (
	"fmt"

	"github.com/nurpe/bill-studio/internal/model"
)

// Authorize checks that p may modify the workspace.
func Authorize(p model.Principal) error {
	if !p.CanOperate() {
		return fmt.Errorf("%w: %s has role %q", ErrPermissionDenied, p.Subject, p.Role)
	}
	return nil
}
