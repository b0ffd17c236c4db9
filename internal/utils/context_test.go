// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "user", UserCtxKey.String())
	assert.Equal(t, "token", TokenCtxKey.String())
}

func TestGetUserFromContext_Success(t *testing.T) {
	want := models.User{ID: 7, Email: "alice@example.com", Role: models.RoleAdmin}
	ctx := WithUser(context.Background(), want)

	got, ok := GetUserFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGetUserFromContext_Missing(t *testing.T) {
	got, ok := GetUserFromContext(context.Background())

	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "alice")

	_, ok := GetUserFromContext(ctx)

	assert.False(t, ok)
}

func TestGetUserFromContext_PlainStringKeyDoesNotCollide(t *testing.T) {
	//nolint:staticcheck // checks isolation from plain string keys
	ctx := context.WithValue(context.Background(), "user", models.User{ID: 1})

	_, ok := GetUserFromContext(ctx)

	assert.False(t, ok)
}

func TestGetTokenFromContext(t *testing.T) {
	ctx := WithToken(context.Background(), "abc")

	token, ok := GetTokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = GetTokenFromContext(WithToken(context.Background(), ""))
	assert.False(t, ok)

	_, ok = GetTokenFromContext(context.Background())
	assert.False(t, ok)
}
