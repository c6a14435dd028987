package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/executor"
)

const openContent = `<qibuild>
  <defaults config="mingw32" ide="vim"/>
  <ide name="QtCreator" path="/usr/bin/qtcreator"/>
  <ide name="vim" path="/usr/bin/gvim"/>
  <ide name="Visual Studio"/>
  <config name="mingw32" ide="QtCreator"/>
  <config name="linux64"/>
  <config name="vs2010" ide="Visual Studio"/>
  <config name="eclipse" ide="Eclipse"/>
</qibuild>`

func TestRunOpen(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPath string
		wantCode apperrors.ErrorCode
	}{
		{name: "default config", args: []string{"qibuild.xml"}, wantPath: "/usr/bin/qtcreator"},
		{name: "config ide", args: []string{"qibuild.xml", "mingw32"}, wantPath: "/usr/bin/qtcreator"},
		{name: "falls back to default ide", args: []string{"qibuild.xml", "linux64"}, wantPath: "/usr/bin/gvim"},
		{name: "ide without path", args: []string{"qibuild.xml", "vs2010"}, wantCode: apperrors.ErrCodeValidation},
		{name: "unregistered ide", args: []string{"qibuild.xml", "eclipse"}, wantCode: apperrors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			mockExec := &executor.MockExecutor{}
			useDeps(t, NewMockDeps().WithContent(openContent).WithExecutor(mockExec).Build())

			err := runOpen(nil, tt.args)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err), "err = %v", err)
				assert.Empty(t, mockExec.Calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, mockExec.Calls, 1)
			assert.Equal(t, "start", mockExec.Calls[0].Mode)
			assert.Equal(t, tt.wantPath, mockExec.Calls[0].Name)
			assert.Contains(t, buf.String(), "started")
		})
	}
}

func TestRunOpenNoDefaults(t *testing.T) {
	captureOutput(t)
	useDeps(t, NewMockDeps().WithContent(`<qibuild><ide name="vim" path="/usr/bin/vim"/></qibuild>`).Build())

	err := runOpen(nil, []string{"qibuild.xml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registered IDE")
}

func TestRunOpenStartFails(t *testing.T) {
	captureOutput(t)
	mockExec := &executor.MockExecutor{
		RunFunc: func(name string, args ...string) error {
			return errors.New("permission denied")
		},
	}
	useDeps(t, NewMockDeps().WithContent(openContent).WithExecutor(mockExec).Build())

	err := runOpen(nil, []string{"qibuild.xml", "mingw32"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch QtCreator")
}
