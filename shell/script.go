package shell

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

const shellGlobal = "crapette_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(shellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand makes a Lua function that runs a shell command with the
// function's string arguments. It returns the command's output, or the
// error prefixed with "ERROR: ".
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		cmd := &shellcmd{cmd: name, options: map[string]string{}}
		for i := 1; i <= L.GetTop(); i++ {
			fields, err := shellquote.Split(L.ToString(i))
			if err != nil {
				L.Push(lua.LString("ERROR: " + err.Error()))
				return 1
			}
			cmd.args = append(cmd.args, fields...)
		}
		r, err := getShell(L).dispatch(context.Background(), cmd)
		if err != nil {
			log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		// return number of results pushed to stack.
		L.Push(lua.LString(r.message))
		return 1
	}
}

var luaCommands = []string{"new", "layout", "load", "show", "solve", "play", "move", "moves", "set", "history"}

// newLuaState also preloads the json and http modules, so a script can
// post what it found somewhere.
func (sc *ShellController) newLuaState() *lua.LState {
	L := lua.NewState()
	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: 30 * time.Second}).Loader)
	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(shellGlobal, lsc)
	for _, name := range luaCommands {
		L.SetGlobal("crapette_"+name, L.NewFunction(luaCommand(name)))
	}
	return L
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("script takes one Lua file")
	}
	L := sc.newLuaState()
	defer L.Close()
	if err := L.DoFile(cmd.args[0]); err != nil {
		return nil, err
	}
	return nil, nil
}
