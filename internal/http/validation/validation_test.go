package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

type quantityForm struct {
	Quantity int    `json:"quantity" validate:"gte=1,lte=99"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Note     string `validate:"max=3"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()
	dst := &quantityForm{Quantity: 0, Email: "nope", Note: "toolong"}
	err := v.Struct(dst)
	require.Error(t, err)

	fields := FromBindError(err, dst)
	assert.Equal(t, "Must be 1 or more.", fields["quantity"])
	assert.Equal(t, "Enter a valid email address.", fields["email"])
	assert.Equal(t, "Must be at most 3.", fields["note"])
}

func TestFromBindErrorNonValidation(t *testing.T) {
	fields := FromBindError(errors.New("unexpected EOF"), &quantityForm{})
	assert.Equal(t, "The request body is invalid.", fields["_"])
}

func TestInvalid(t *testing.T) {
	err := Invalid(errors.New("bad json"), nil)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, ae.Fields, "_")
}
