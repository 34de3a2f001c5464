// pkg/config/loader.go
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Loader 配置加载器
type Loader struct {
	viper *viper.Viper
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		viper: viper.New(),
	}
}

// LoadFile 加载配置文件
// configType: "yaml" 或 "json"
func (l *Loader) LoadFile(configPath string, configType string) error {
	l.viper.SetConfigFile(configPath)
	l.viper.SetConfigType(configType)

	// 环境变量覆盖（仅 YAML 配置支持）
	if configType == "yaml" {
		l.viper.SetEnvPrefix("VALENCE")
		l.viper.AutomaticEnv()
		l.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	return nil
}

// Unmarshal 解析整个配置到结构体
func (l *Loader) Unmarshal(target interface{}) error {
	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Wrap(err, "failed to unmarshal config")
	}
	return nil
}

// UnmarshalKey 解析配置中的某个 key 到结构体
func (l *Loader) UnmarshalKey(key string, target interface{}) error {
	if err := l.viper.UnmarshalKey(key, target); err != nil {
		return errors.Wrapf(err, "failed to unmarshal key %s", key)
	}
	return nil
}
