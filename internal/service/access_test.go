package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nurpe/bill-studio/internal/model"
)

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(model.Anonymous))
	assert.NoError(t, Authorize(model.Principal{Subject: "op", Role: model.RoleOperator}))
	assert.ErrorIs(t, Authorize(model.Principal{Subject: "v", Role: model.RoleViewer}), ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(model.Principal{Subject: "x"}), ErrPermissionDenied)
}
