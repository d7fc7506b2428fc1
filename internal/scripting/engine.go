// Package scripting wraps a single gopher-lua VM for tunable economy
// formulas. Every exposed formula has a Go fallback so a missing or broken
// script degrades to the built-in behavior instead of failing the tick.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine owns the Lua VM. Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory tree. A missing directory is not an error.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"economy", "progression"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

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

// fn returns the named global if it is a Lua function.
func (e *Engine) fn(name string) (*lua.LFunction, bool) {
	if e == nil || e.vm == nil {
		return nil, false
	}
	v := e.vm.GetGlobal(name)
	f, ok := v.(*lua.LFunction)
	return f, ok
}

// DemolitionStateModifier returns the state-dependent demolition cost
// factor: 0.5 while Materializing, 1.0 Active, 0.1 Abandoned, 0.0
// Derelict. Lua: demolition_state_modifier(state_name).
func (e *Engine) DemolitionStateModifier(stateName string) float64 {
	if f, ok := e.fn("demolition_state_modifier"); ok {
		if v, err := e.call1(f, lua.LString(stateName)); err == nil {
			if n, ok := v.(lua.LNumber); ok {
				return float64(n)
			}
		} else {
			e.log.Warn("demolition_state_modifier failed", zap.Error(err))
		}
	}
	switch stateName {
	case "Materializing":
		return 0.5
	case "Active":
		return 1.0
	case "Abandoned":
		return 0.1
	case "Derelict":
		return 0.0
	}
	return 1.0
}

// CalcDemolitionCost computes the credits charged for a player demolition.
// Lua: calc_demolition_cost(construction_cost, base_ratio, modifier).
func (e *Engine) CalcDemolitionCost(constructionCost int64, baseRatio, modifier float64) int64 {
	if f, ok := e.fn("calc_demolition_cost"); ok {
		v, err := e.call1(f,
			lua.LNumber(constructionCost), lua.LNumber(baseRatio), lua.LNumber(modifier))
		if err == nil {
			if n, ok := v.(lua.LNumber); ok {
				return int64(n)
			}
		} else {
			e.log.Warn("calc_demolition_cost failed", zap.Error(err))
		}
	}
	return int64(float64(constructionCost) * baseRatio * modifier)
}

// UpgradeDesirabilityThreshold returns the minimum desirability the next
// level requires. Lua: upgrade_desirability_threshold(next_level).
func (e *Engine) UpgradeDesirabilityThreshold(nextLevel int16) int32 {
	if f, ok := e.fn("upgrade_desirability_threshold"); ok {
		if v, err := e.call1(f, lua.LNumber(nextLevel)); err == nil {
			if n, ok := v.(lua.LNumber); ok {
				return int32(n)
			}
		} else {
			e.log.Warn("upgrade_desirability_threshold failed", zap.Error(err))
		}
	}
	return int32(nextLevel) * 50
}

// DowngradeLandValueFloor returns the land value below which a building of
// the given level downgrades. Lua: downgrade_land_value_floor(level).
func (e *Engine) DowngradeLandValueFloor(level int16) int32 {
	if f, ok := e.fn("downgrade_land_value_floor"); ok {
		if v, err := e.call1(f, lua.LNumber(level)); err == nil {
			if n, ok := v.(lua.LNumber); ok {
				return int32(n)
			}
		} else {
			e.log.Warn("downgrade_land_value_floor failed", zap.Error(err))
		}
	}
	return int32(level) * 50
}

func (e *Engine) call1(f *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	if err := e.vm.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, err
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, nil
}
