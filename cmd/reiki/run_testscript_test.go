package main

import (
	"testing"

	"github.com/bensonlsp/reiki-timer/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestRunScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/run",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"historycount": testsupport.CmdHistoryCount,
			"historyid":    testsupport.CmdHistoryID,
		},
	})
}
