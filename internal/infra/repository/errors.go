package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrEmptyKey        = errors.New("dedup key is empty")
)
