package utils

import (
	"context"

	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserNotFoundInContext
	}
	return id, nil
}

// GetUserNameFromCtx — имя текущего пользователя для поля created_by.
func GetUserNameFromCtx(ctx context.Context) (string, error) {
	name, ok := ctx.Value(contextkeys.UserNameKey).(string)
	if !ok || name == "" {
		return "", apperrors.ErrUserNotFoundInContext
	}
	return name, nil
}
