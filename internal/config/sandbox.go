package config

import (
	lua "github.com/yuin/gopher-lua"
)

// newSandboxedVM creates a Lua VM without the os, io, module loading and
// debug facilities. Config files stay declarative: string, table and math
// remain available.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()

	for _, name := range []string{
		"os", "io", "debug",
		"require", "dofile", "loadfile", "load", "loadstring",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}
