package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Lua schema names.
const (
	luaGlobal       = "rclonewrap"
	luaFieldInstall = "install_dir"
	luaFieldCache   = "cache_dir"
	luaFieldBaseURL = "base_url"
	luaFieldVersion = "version"
	luaFieldVerify  = "verify"
	luaFieldKeyring = "keyring"
	luaFieldEnv     = "env"
)

// Parser evaluates Lua config files with the platform table injected.
type Parser struct {
	info *platform.Info
}

// NewParser creates a parser. A nil info leaves the platform table undefined.
func NewParser(info *platform.Info) *Parser {
	return &Parser{info: info}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseFile reads and evaluates a config file. Fields the file does not
// set keep their defaults.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// ParseString evaluates Lua source.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.info != nil {
		if err := platform.InjectPlatformTable(L, p.info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig reads the global rclonewrap table on top of the defaults.
func extractConfig(L *lua.LState) (*Config, error) {
	cfg := Default()

	global := L.GetGlobal(luaGlobal)
	if global == lua.LNil {
		return cfg, nil
	}
	table, ok := global.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid '%s' table", luaGlobal),
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	stringFields := []struct {
		name string
		dst  *string
	}{
		{luaFieldInstall, &cfg.InstallDir},
		{luaFieldCache, &cfg.CacheDir},
		{luaFieldBaseURL, &cfg.BaseURL},
		{luaFieldVersion, &cfg.Version},
		{luaFieldKeyring, &cfg.Keyring},
	}
	for _, f := range stringFields {
		v := table.RawGetString(f.name)
		switch v.Type() {
		case lua.LTNil:
		case lua.LTString:
			*f.dst = v.String()
		default:
			return nil, fieldTypeError(f.name, "string", v)
		}
	}

	switch v := table.RawGetString(luaFieldVerify); v.Type() {
	case lua.LTNil:
	case lua.LTBool:
		cfg.Verify = lua.LVAsBool(v)
	default:
		return nil, fieldTypeError(luaFieldVerify, "boolean", v)
	}

	switch v := table.RawGetString(luaFieldEnv); v.Type() {
	case lua.LTNil:
	case lua.LTTable:
		env, err := extractEnv(v.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		cfg.Env = env
	default:
		return nil, fieldTypeError(luaFieldEnv, "table", v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

func extractEnv(table *lua.LTable) (map[string]string, error) {
	env := make(map[string]string)
	var err error

	table.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		if k.Type() != lua.LTString {
			err = fieldTypeError(luaFieldEnv+" key", "string", k)
			return
		}
		switch v.Type() {
		case lua.LTString, lua.LTNumber, lua.LTBool:
			env[k.String()] = v.String()
		default:
			err = fieldTypeError(luaFieldEnv+"."+k.String(), "string", v)
		}
	})

	if err != nil {
		return nil, err
	}
	return env, nil
}

func fieldTypeError(field, want string, got lua.LValue) error {
	return &ParseError{
		Message: fmt.Sprintf("invalid field '%s'", field),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}
