package config

import (
	"fmt"

	"github.com/lgc202/modelgate/llm"
)

// Settings 是网关的顶层配置：后端服务器列表和路径到服务器的端点映射。
// 服务器的 secret 字段只是凭证名称，凭证本身由调用方解析后传给适配器。
type Settings struct {
	Servers   []llm.ServerConfig `mapstructure:"servers"`
	Endpoints []Endpoint         `mapstructure:"endpoints"`
}

// Endpoint 把一个请求路径映射到某个后端服务器和它的提示词模板
type Endpoint struct {
	Path         string `mapstructure:"path"`
	Template     string `mapstructure:"template"`
	Server       string `mapstructure:"server"`
	SystemPrompt string `mapstructure:"system_prompt"`
	UserPrompt   string `mapstructure:"user_prompt"`
}

// ServerByName 按名称查找服务器配置
func (s Settings) ServerByName(name string) (llm.ServerConfig, error) {
	for _, server := range s.Servers {
		if server.Name == name {
			return server, nil
		}
	}
	return llm.ServerConfig{}, fmt.Errorf("server %q not found", name)
}

// EndpointByPath 按路径查找端点配置
func (s Settings) EndpointByPath(path string) (Endpoint, error) {
	for _, ep := range s.Endpoints {
		if ep.Path == path {
			return ep, nil
		}
	}
	return Endpoint{}, fmt.Errorf("endpoint %q not found", path)
}

// Validate 启动时检查端点引用的服务器都存在
func (s Settings) Validate() error {
	for _, ep := range s.Endpoints {
		if _, err := s.ServerByName(ep.Server); err != nil {
			return fmt.Errorf("endpoint %q: %w", ep.Path, err)
		}
	}
	return nil
}

// LoadSettings 从 TOML 文件加载网关配置
func LoadSettings(path string, opts ...Option[Settings]) (*Config[Settings], error) {
	cfg, err := Load(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Get().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
