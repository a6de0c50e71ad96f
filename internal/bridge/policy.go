package bridge

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/nbshadow/internal/logging"
	"github.com/dshills/nbshadow/internal/rewrite"
)

// ErrNoPolicyFunction is returned when a policy script defines no
// target_mode function.
var ErrNoPolicyFunction = errors.New("policy script does not define target_mode")

// LuaPolicy consults a user Lua script for per-method rewrite targets.
//
// The script defines a single function:
//
//	function target_mode(method)
//	  if method == "textDocument/documentHighlight" then
//	    return "native"
//	  end
//	  return nil -- fall through to the built-in table
//	end
//
// Script errors and unknown return values fall through to the built-in
// table, so a broken policy degrades rather than breaking rewrites.
type LuaPolicy struct {
	mu    sync.Mutex
	state *lua.LState
	fn    lua.LValue
	log   *logging.Logger
}

// LoadPolicyFile compiles a policy script from a file.
func LoadPolicyFile(path string, log *logging.Logger) (*LuaPolicy, error) {
	state := lua.NewState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load policy script: %w", err)
	}
	return newLuaPolicy(state, log)
}

// LoadPolicyScript compiles a policy script from source text.
func LoadPolicyScript(src string, log *logging.Logger) (*LuaPolicy, error) {
	state := lua.NewState()
	if err := state.DoString(src); err != nil {
		state.Close()
		return nil, fmt.Errorf("load policy script: %w", err)
	}
	return newLuaPolicy(state, log)
}

func newLuaPolicy(state *lua.LState, log *logging.Logger) (*LuaPolicy, error) {
	fn := state.GetGlobal("target_mode")
	if fn == lua.LNil {
		state.Close()
		return nil, ErrNoPolicyFunction
	}
	if log == nil {
		log = logging.Null
	}
	return &LuaPolicy{
		state: state,
		fn:    fn,
		log:   log.WithComponent("policy"),
	}, nil
}

// Policy adapts the script to the rewriter's policy hook.
func (p *LuaPolicy) Policy() rewrite.Policy {
	return func(method string) (rewrite.TargetMode, bool) {
		return p.targetMode(method)
	}
}

// Close releases the Lua state.
func (p *LuaPolicy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != nil {
		p.state.Close()
		p.state = nil
	}
}

func (p *LuaPolicy) targetMode(method string) (rewrite.TargetMode, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == nil {
		return 0, false
	}

	err := p.state.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(method))
	if err != nil {
		p.log.Warn("target_mode(%q): %v", method, err)
		return 0, false
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	name, ok := ret.(lua.LString)
	if !ok {
		return 0, false
	}

	mode, ok := rewrite.ParseTargetMode(string(name))
	if !ok {
		p.log.Warn("target_mode(%q) returned unknown mode %q", method, string(name))
		return 0, false
	}
	return mode, true
}
