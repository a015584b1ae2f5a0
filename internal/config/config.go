package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hbjs97/promptline/internal/directory"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("config error")

// KnownModules는 설정에서 참조할 수 있는 모듈 이름 목록이다. 순서가 기본 프롬프트 순서다.
var KnownModules = []string{"directory", "git_branch", "nodejs", "golang", "rust", "python"}

// Config는 promptline 설정 파일의 최상위 구조체다.
type Config struct {
	Order     []string        `toml:"order" yaml:"order"`
	LogLevel  string          `toml:"log_level" yaml:"log_level"`
	LogFile   string          `toml:"log_file" yaml:"log_file"`
	Directory DirectoryConfig `toml:"directory" yaml:"directory"`
	GitBranch ModuleConfig    `toml:"git_branch" yaml:"git_branch"`
	Nodejs    ModuleConfig    `toml:"nodejs" yaml:"nodejs"`
	Golang    ModuleConfig    `toml:"golang" yaml:"golang"`
	Rust      ModuleConfig    `toml:"rust" yaml:"rust"`
	Python    ModuleConfig    `toml:"python" yaml:"python"`

	// Undecoded는 파일에 있지만 어떤 필드에도 매핑되지 않은 키 목록이다.
	Undecoded []string `toml:"-" yaml:"-"`
}

// DirectoryConfig는 directory 모듈 설정이다.
type DirectoryConfig struct {
	TruncationLength      *int    `toml:"truncation_length" yaml:"truncation_length"`
	TruncateToRepo        *bool   `toml:"truncate_to_repo" yaml:"truncate_to_repo"`
	FishStylePwdDirLength int     `toml:"fish_style_pwd_dir_length" yaml:"fish_style_pwd_dir_length"`
	Prefix                *string `toml:"prefix" yaml:"prefix"`
	Disabled              bool    `toml:"disabled" yaml:"disabled"`

	// Substitutions keeps declaration order. TOML tables decode into
	// RawSubstitutions first and are ordered from the decoder metadata.
	Substitutions    Substitutions     `toml:"-" yaml:"substitutions"`
	RawSubstitutions map[string]string `toml:"substitutions" yaml:"-"`
}

// ModuleConfig는 단순 모듈의 공통 설정이다.
type ModuleConfig struct {
	Symbol   string  `toml:"symbol" yaml:"symbol"`
	Prefix   *string `toml:"prefix" yaml:"prefix"`
	Disabled bool    `toml:"disabled" yaml:"disabled"`
}

// Substitutions는 선언 순서를 유지하는 경로 치환 목록이다.
type Substitutions []directory.Substitution

// UnmarshalYAML은 키 순서를 유지하며 매핑을 읽는다.
func (s *Substitutions) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		*s = nil
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("substitutions: line %d: expected a mapping", n.Line)
	}
	out := make(Substitutions, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var from, to string
		if err := n.Content[i].Decode(&from); err != nil {
			return err
		}
		if err := n.Content[i+1].Decode(&to); err != nil {
			return err
		}
		out = append(out, directory.Substitution{From: from, To: to})
	}
	*s = out
	return nil
}

// Default는 설정 파일이 없을 때 쓰는 기본 설정을 반환한다.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load는 설정 파일을 파싱하여 Config를 반환한다. .yaml/.yml은 YAML, 나머지는 TOML로 읽는다.
func Load(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := decodeYAML(path, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := decodeTOML(path, &cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault는 Load와 같지만 파일이 없으면 Default()를 반환한다.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	raw := cfg.Directory.RawSubstitutions
	seen := make(map[string]bool, len(raw))
	for _, key := range md.Keys() {
		if len(key) == 3 && key[0] == "directory" && key[1] == "substitutions" && !seen[key[2]] {
			seen[key[2]] = true
			cfg.Directory.Substitutions = append(cfg.Directory.Substitutions,
				directory.Substitution{From: key[2], To: raw[key[2]]})
		}
	}
	// keys the metadata did not order (inline tables) follow in sorted order
	rest := make([]string, 0, len(raw))
	for from := range raw {
		if !seen[from] {
			rest = append(rest, from)
		}
	}
	sort.Strings(rest)
	for _, from := range rest {
		cfg.Directory.Substitutions = append(cfg.Directory.Substitutions,
			directory.Substitution{From: from, To: raw[from]})
	}
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	if len(doc.Content) == 0 {
		return nil
	}
	if err := doc.Decode(cfg); err != nil {
		return fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	cfg.Undecoded = undecodedYAML(doc.Content[0])
	return nil
}

// undecodedYAML reports top-level keys no field is tagged with.
func undecodedYAML(root *yaml.Node) []string {
	if root.Kind != yaml.MappingNode {
		return nil
	}
	known := map[string]bool{"order": true, "log_level": true, "log_file": true, "directory": true}
	for _, name := range KnownModules {
		known[name] = true
	}
	var out []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		if key := root.Content[i].Value; !known[key] {
			out = append(out, key)
		}
	}
	return out
}

// Truncation은 directory 렌더러 설정을 반환한다.
func (d DirectoryConfig) Truncation() directory.Config {
	c := directory.DefaultConfig()
	if d.TruncationLength != nil {
		c.TruncationLength = *d.TruncationLength
	}
	if d.TruncateToRepo != nil {
		c.TruncateToRepo = *d.TruncateToRepo
	}
	if d.Prefix != nil {
		c.Prefix = *d.Prefix
	}
	c.FishStyleLength = d.FishStylePwdDirLength
	return c
}

// PrefixOr는 설정된 prefix를, 없으면 def를 반환한다.
func (m ModuleConfig) PrefixOr(def string) string {
	if m.Prefix == nil {
		return def
	}
	return *m.Prefix
}

// Module은 이름으로 모듈 설정을 조회한다.
func (c *Config) Module(name string) (ModuleConfig, bool) {
	switch name {
	case "git_branch":
		return c.GitBranch, true
	case "nodejs":
		return c.Nodejs, true
	case "golang":
		return c.Golang, true
	case "rust":
		return c.Rust, true
	case "python":
		return c.Python, true
	case "directory":
		return ModuleConfig{Prefix: c.Directory.Prefix, Disabled: c.Directory.Disabled}, true
	default:
		return ModuleConfig{}, false
	}
}

// IsDisabled는 모듈이 비활성화되었는지 확인한다.
func (c *Config) IsDisabled(name string) bool {
	m, ok := c.Module(name)
	return ok && m.Disabled
}

func (c *Config) applyDefaults() {
	if len(c.Order) == 0 {
		c.Order = append([]string(nil), KnownModules...)
	}
	if c.Directory.TruncationLength == nil {
		n := directory.DefaultConfig().TruncationLength
		c.Directory.TruncationLength = &n
	}
	if c.Directory.TruncateToRepo == nil {
		t := true
		c.Directory.TruncateToRepo = &t
	}
	if c.Directory.Prefix == nil {
		p := directory.DefaultConfig().Prefix
		c.Directory.Prefix = &p
	}
}

func (c *Config) validate() error {
	if *c.Directory.TruncationLength < 0 {
		return fmt.Errorf("config.Load: %w: directory.truncation_length must not be negative", ErrConfig)
	}
	if c.Directory.FishStylePwdDirLength < 0 {
		return fmt.Errorf("config.Load: %w: directory.fish_style_pwd_dir_length must not be negative", ErrConfig)
	}
	seen := make(map[string]bool, len(c.Order))
	for _, name := range c.Order {
		if _, ok := c.Module(name); !ok {
			return fmt.Errorf("config.Load: %w: order: unknown module %q", ErrConfig, name)
		}
		if seen[name] {
			return fmt.Errorf("config.Load: %w: order: module %q listed twice", ErrConfig, name)
		}
		seen[name] = true
	}
	return nil
}
