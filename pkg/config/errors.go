package config

import "github.com/cockroachdb/errors"

var (
	// ErrConfigFileNotFound 配置文件未找到
	ErrConfigFileNotFound = errors.New("config file not found")

	// ErrInvalidConfigFormat 配置格式无效
	ErrInvalidConfigFormat = errors.New("invalid config format")

	// ErrNilConfig 配置为 nil
	ErrNilConfig = errors.New("config cannot be nil")
)
