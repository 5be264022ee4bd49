package main

import (
	"testing"

	"github.com/bensonlsp/reiki-timer/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestPositionsScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/positions",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
