package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for combat formulas.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm     *lua.LState
	log    *zap.Logger
	warned map[string]bool
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, warned: make(map[string]bool)}

	// Load core helpers first, then combat formulas
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromSource builds an engine from an in-memory chunk.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return &Engine{vm: vm, log: log, warned: make(map[string]bool)}, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// call invokes the global fn with a context table and returns its numeric
// result. ok is false when the function is missing or fails; the caller
// falls back to its base value.
func (e *Engine) call(fn string, ctx *lua.LTable) (float64, bool) {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		if !e.warned[fn] {
			e.warned[fn] = true
			e.log.Warn("lua function not found, using base value", zap.String("fn", fn))
		}
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua call error", zap.String("fn", fn), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("fn", fn), zap.String("type", result.Type().String()))
		return 0, false
	}
	return float64(n), true
}
