package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"

	"github.com/hbjs97/condact/internal/shell"
)

// ErrConfig는 설정 파일을 읽거나 해석할 수 없을 때 반환된다.
var ErrConfig = errors.New("invalid configuration")

// EnvPrefix는 설정을 덮어쓰는 환경 변수의 접두어다.
const EnvPrefix = "CONDACT_"

// Config는 condact 설정이다.
type Config struct {
	RootPrefix string   `koanf:"root_prefix" toml:"root_prefix,omitempty"`
	EnvsDirs   []string `koanf:"envs_dirs" toml:"envs_dirs,omitempty"`
	ChangePS1  *bool    `koanf:"changeps1" toml:"changeps1,omitempty"`
	Shell      string   `koanf:"shell" toml:"shell,omitempty"`

	// Path는 실제로 읽은 설정 파일 경로다. 파일이 없었으면 빈 문자열이다.
	Path string `koanf:"-" toml:"-"`
}

var executable = os.Executable

// DefaultPath는 $CONDARC, 없으면 ~/.config/condact/config.toml을 반환한다.
func DefaultPath() string {
	if p := os.Getenv("CONDARC"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "condact", "config.toml")
}

// Load는 기본값, 설정 파일, CONDACT_* 환경 변수 순으로 겹쳐 Config를 만든다.
// 파일이 없으면 기본값과 환경 변수만 쓴다. 확장자가 .toml이면 TOML, 그 외에는 YAML로 읽는다.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	var loadedFrom string
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
		default:
			if err := k.Load(rawbytes.Provider(data), parserFor(path)); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
			}
			loadedFrom = path
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrConfig, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg.Path = loadedFrom
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOMLParser{}
	}
	return yaml.Parser()
}

// envKey는 CONDACT_ENVS_DIRS 같은 변수를 설정 키로 바꾼다. 모르는 변수는 무시한다.
func envKey(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	switch name {
	case "envs_dirs":
		return name, filepath.SplitList(value)
	case "root_prefix", "changeps1", "shell":
		return name, value
	default:
		return "", nil
	}
}

// IsChangePS1는 changeps1 설정값을 반환한다.
func (c *Config) IsChangePS1() bool {
	if c.ChangePS1 == nil {
		return true
	}
	return *c.ChangePS1
}

func (c *Config) applyDefaults() {
	if c.ChangePS1 == nil {
		t := true
		c.ChangePS1 = &t
	}
	if c.Shell == "" {
		c.Shell = "bash"
	}
	if c.RootPrefix == "" {
		if exe, err := executable(); err == nil {
			c.RootPrefix = filepath.Dir(filepath.Dir(exe))
		}
	}
	c.RootPrefix = expand(c.RootPrefix)
	if len(c.EnvsDirs) == 0 {
		c.EnvsDirs = []string{filepath.Join(c.RootPrefix, "envs")}
		if home, err := homedir.Dir(); err == nil {
			c.EnvsDirs = append(c.EnvsDirs, filepath.Join(home, ".conda", "envs"))
		}
	}
	dirs := c.EnvsDirs[:0]
	for _, d := range c.EnvsDirs {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, expand(d))
		}
	}
	c.EnvsDirs = dirs
}

func (c *Config) validate() error {
	if _, err := shell.Lookup(c.Shell); err != nil {
		return fmt.Errorf("%w: shell: %v", ErrConfig, err)
	}
	if c.RootPrefix == "" {
		return fmt.Errorf("%w: root_prefix could not be determined", ErrConfig)
	}
	return nil
}

func expand(p string) string {
	if out, err := homedir.Expand(p); err == nil {
		return out
	}
	return p
}

// Save는 설정을 TOML로 저장한다 (0600 권한, 상위 디렉토리 생성).
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0600)
}

// ValidateFilePermissions는 파일 권한이 0600보다 넓으면 에러를 반환한다.
func ValidateFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config.ValidateFilePermissions: %w", err)
	}
	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		return fmt.Errorf("config.ValidateFilePermissions: %s 권한이 %o (0600 권장)", path, perm)
	}
	return nil
}
