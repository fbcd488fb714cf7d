package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("missing"), http.StatusNotFound},
		{UnauthorizedErr("login"), http.StatusUnauthorized},
		{ForbiddenErr("admin"), http.StatusForbidden},
		{ConflictErr("dup"), http.StatusConflict},
		{UnavailableErr("down", errors.New("dial")), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFoundErr("x")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Product not found.", PublicMessage(NotFoundErr("Product not found.")))
	assert.Equal(t, defaultPublicMsg, PublicMessage(errors.New("db down")))
	assert.Equal(t, defaultPublicMsg, PublicMessage(Wrap(errors.New("db down"))))
}

func TestWrapKeepsAppError(t *testing.T) {
	orig := ConflictErr("already there")
	assert.Same(t, orig, Wrap(fmt.Errorf("ctx: %w", orig)))
	assert.Nil(t, Wrap(nil))
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, Invalid, KindForStatus(http.StatusBadRequest))
	assert.Equal(t, Unauthorized, KindForStatus(http.StatusUnauthorized))
	assert.Equal(t, NotFound, KindForStatus(http.StatusNotFound))
	assert.Equal(t, Unavailable, KindForStatus(http.StatusServiceUnavailable))
	assert.Equal(t, Internal, KindForStatus(http.StatusTeapot))
}
