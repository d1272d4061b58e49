package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// 环境变量覆盖
const (
	EnvGatewayURL = "MATERIALITY_GATEWAY_URL"
	EnvDataDir    = "MATERIALITY_DATA_DIR"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Gateway GatewayConfig `toml:"gateway"`
	Upload  UploadConfig  `toml:"upload"`
	Survey  SurveyConfig  `toml:"survey"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// GatewayConfig 远端网关配置
type GatewayConfig struct {
	URL                      string `toml:"url"`
	TimeoutSeconds           int    `toml:"timeout_seconds"`
	AssessmentTimeoutSeconds int    `toml:"assessment_timeout_seconds"`
}

// Timeout 普通接口超时
func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// AssessmentTimeout 评估接口超时
func (g GatewayConfig) AssessmentTimeout() time.Duration {
	return time.Duration(g.AssessmentTimeoutSeconds) * time.Second
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxBytes int64 `toml:"max_bytes"`
}

// SurveyConfig 问卷/汇总展示
type SurveyConfig struct {
	DefaultTopN int `toml:"default_top_n"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Gateway: GatewayConfig{
			URL:                      "http://localhost:8080",
			TimeoutSeconds:           30,
			AssessmentTimeoutSeconds: 120,
		},
		Upload: UploadConfig{
			MaxBytes: 10 << 20,
		},
		Survey: SurveyConfig{
			DefaultTopN: 10,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadFileWithInfo(filepath.Join(exeDir, "config.toml"))
}

// LoadFileWithInfo 从指定路径加载配置；文件不存在时使用默认配置
func LoadFileWithInfo(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, info, err
		}
		// 配置文件不存在，使用默认配置
	} else {
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	}

	applyEnv(config)
	normalize(config)
	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// applyEnv 环境变量覆盖（也可来自 .env）
func applyEnv(config *AppConfig) {
	if v := os.Getenv(EnvGatewayURL); v != "" {
		config.Gateway.URL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}
}

// normalize 非法数值回落到默认值
func normalize(config *AppConfig) {
	def := DefaultConfig()
	if config.Gateway.TimeoutSeconds <= 0 {
		config.Gateway.TimeoutSeconds = def.Gateway.TimeoutSeconds
	}
	if config.Gateway.AssessmentTimeoutSeconds <= 0 {
		config.Gateway.AssessmentTimeoutSeconds = def.Gateway.AssessmentTimeoutSeconds
	}
	if config.Upload.MaxBytes <= 0 {
		config.Upload.MaxBytes = def.Upload.MaxBytes
	}
	if config.Survey.DefaultTopN <= 0 {
		config.Survey.DefaultTopN = def.Survey.DefaultTopN
	}
	if config.Data.DataDir == "" {
		config.Data.DataDir = def.Data.DataDir
	}
}

// ResolveDataDir 数据目录绝对路径；相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及 uploads 子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)

	if err := os.MkdirAll(filepath.Join(dataDir, "uploads"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
