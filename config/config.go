// Package config 加载网关的 TOML 配置并监控变更。
// 基于 viper + fsnotify：配置文件变更后去抖重载，并通知注册的回调；
// 重载失败时保留旧配置并记录日志，网关继续用上一份可用的设置运行。
package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const reloadDebounce = 100 * time.Millisecond

// Config 配置管理器，T 是配置文件的反序列化目标
type Config[T any] struct {
	v      *viper.Viper
	logger *slog.Logger

	mu       sync.RWMutex
	value    *T
	watchers []func(old, new T)

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
}

// Option 配置选项
type Option[T any] func(*Config[T])

// WithDefaults 设置默认值
func WithDefaults[T any](defaults map[string]any) Option[T] {
	return func(c *Config[T]) {
		for k, v := range defaults {
			c.v.SetDefault(k, v)
		}
	}
}

// WithEnv 绑定环境变量
func WithEnv[T any](prefix string) Option[T] {
	return func(c *Config[T]) {
		c.v.SetEnvPrefix(prefix)
		c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		c.v.AutomaticEnv()
	}
}

// WithConfigType 显式指定配置格式（toml/yaml/json），用于无扩展名的路径
func WithConfigType[T any](typ string) Option[T] {
	return func(c *Config[T]) {
		c.v.SetConfigType(typ)
	}
}

// WithLogger 指定重载日志的输出
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Config[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Load 加载配置文件并自动监控变更
func Load[T any](path string, opts ...Option[T]) (*Config[T], error) {
	v := viper.New()
	v.SetConfigFile(path)

	c := &Config[T]{v: v, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	for _, opt := range opts {
		opt(c)
	}

	val, err := read[T](v)
	if err != nil {
		return nil, err
	}
	c.value = val

	c.v.OnConfigChange(func(_ fsnotify.Event) { c.scheduleReload() })
	c.v.WatchConfig()
	return c, nil
}

func read[T any](v *viper.Viper) (*T, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var val T
	if err := v.Unmarshal(&val); err != nil {
		return nil, err
	}
	return &val, nil
}

// Get 获取当前配置（并发安全，返回深拷贝）
func (c *Config[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(*c.value)
}

// OnChange 注册配置变更回调
func (c *Config[T]) OnChange(callback func(old, new T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, callback)
}

// Changed 比较两个值是否不同
func Changed[T any](old, new T) bool {
	return !reflect.DeepEqual(old, new)
}

// scheduleReload 去抖：编辑器保存常触发多个 fsnotify 事件
func (c *Config[T]) scheduleReload() {
	c.debounceMu.Lock()
	defer c.debounceMu.Unlock()
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(reloadDebounce, c.reload)
}

func (c *Config[T]) reload() {
	old := c.Get()

	c.mu.Lock()
	val, err := read[T](c.v)
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("config reload failed, keeping previous value", "err", err)
		return
	}
	c.value = val
	watchers := make([]func(old, new T), len(c.watchers))
	copy(watchers, c.watchers)
	newVal := deepCopy(*val)
	c.mu.Unlock()

	if reflect.DeepEqual(old, newVal) {
		return
	}
	for _, cb := range watchers {
		func() {
			defer func() { _ = recover() }()
			cb(old, newVal)
		}()
	}
}

// deepCopy 通过 JSON 序列化实现深拷贝
func deepCopy[T any](src T) T {
	var dst T
	data, _ := json.Marshal(src)
	_ = json.Unmarshal(data, &dst)
	return dst
}
