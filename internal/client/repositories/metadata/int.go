package metadata

import (
	"context"
	"fmt"
	"strconv"
)

// GetInt64 reads a decimal value. ok is false when the key is absent.
func GetInt64(ctx context.Context, r Repository, key string) (v int64, ok bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil || raw == nil {
		return 0, false, err
	}
	v, err = strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("metadata[%s] is not an integer: %w", key, err)
	}
	return v, true, nil
}

// SetInt64 stores v in decimal form.
func SetInt64(ctx context.Context, r Repository, key string, v int64) error {
	return r.Set(ctx, key, []byte(strconv.FormatInt(v, 10)))
}
