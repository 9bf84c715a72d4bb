package shell

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("remolino_shell")
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

// pushResult pushes a command result (or its error) onto the Lua
// stack. Every wrapper returns one string.
func pushResult(L *lua.LState, what string, r *Response, err error) int {
	if err != nil {
		log.Err(err).Msgf("error-executing-%v", what)
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

func New(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields(strings.TrimSpace("new " + lv))
	if err != nil {
		return pushResult(L, "new", nil, err)
	}
	r, err := sc.newRound(cmd)
	return pushResult(L, "new", r, err)
}

func Guess(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	r, err := sc.guess(&shellcmd{
		cmd:  "guess",
		args: []string{lv},
	})
	return pushResult(L, "guess", r, err)
}

func Solve(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.solve(&shellcmd{cmd: "solve"})
	return pushResult(L, "solve", r, err)
}

func Show(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.show(&shellcmd{cmd: "show"})
	return pushResult(L, "show", r, err)
}

func Set(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	r, err := sc.set(&shellcmd{
		cmd:  "set",
		args: strings.Split(lv, " "),
	})
	return pushResult(L, "set", r, err)
}

func AnagramLua(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields("anagram " + lv)
	if err != nil {
		return pushResult(L, "anagram", nil, err)
	}
	r, err := sc.anagram(cmd)
	return pushResult(L, "anagram", r, err)
}

func Autoplay(L *lua.LState) int {
	lv := L.ToString(1)
	sc := getShell(L)
	cmd, err := extractFields(strings.TrimSpace("autoplay " + lv))
	if err != nil {
		return pushResult(L, "autoplay", nil, err)
	}
	r, err := sc.autoplay(cmd)
	return pushResult(L, "autoplay", r, err)
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	// Scripts are batch jobs; run autoplay synchronously inside them.
	prevOneShot := sc.oneShot
	sc.oneShot = true
	defer func() { sc.oneShot = prevOneShot }()

	L := lua.NewState()
	defer L.Close()

	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("remolino_shell", lsc)
	L.SetGlobal("remolino_new", L.NewFunction(New))
	L.SetGlobal("remolino_guess", L.NewFunction(Guess))
	L.SetGlobal("remolino_solve", L.NewFunction(Solve))
	L.SetGlobal("remolino_show", L.NewFunction(Show))
	L.SetGlobal("remolino_set", L.NewFunction(Set))
	L.SetGlobal("remolino_anagram", L.NewFunction(AnagramLua))
	L.SetGlobal("remolino_autoplay", L.NewFunction(Autoplay))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
