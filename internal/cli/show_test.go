package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmerejkowsky/qibuild/internal/config"
)

const showContent = `<qibuild>
  <build build_dir="/path/to/build" incredibuild="1"/>
  <defaults config="mingw32" ide="QtCreator"><cmake generator="Unix Makefiles"/></defaults>
  <ide name="QtCreator" path="/usr/bin/qtcreator"/>
  <config name="mingw32" ide="QtCreator">
    <cmake generator="MinGW Makefiles"/>
    <env path="c:\MinGW\bin" bat_file=""/>
  </config>
</qibuild>`

func TestRunShow(t *testing.T) {
	t.Run("human readable", func(t *testing.T) {
		buf := captureOutput(t)
		useDeps(t, NewMockDeps().WithContent(showContent).Build())

		require.NoError(t, runShow(nil, []string{"qibuild.xml"}))

		out := buf.String()
		assert.Contains(t, out, "Configuration: qibuild.xml")
		assert.Regexp(t, `Build dir:\s+/path/to/build`, out)
		assert.Regexp(t, `SDK dir:\s+\(none\)`, out)
		assert.Regexp(t, `IncrediBuild:\s+true`, out)
		assert.Regexp(t, `CMake generator:\s+Unix Makefiles`, out)
		assert.Contains(t, out, "/usr/bin/qtcreator")
		assert.Contains(t, out, "mingw32 *", "default configuration is marked")
		assert.Contains(t, out, "MinGW Makefiles")
	})

	t.Run("json", func(t *testing.T) {
		buf := captureOutput(t)
		useDeps(t, NewMockDeps().WithContent(showContent).Build())
		jsonOutput = true

		require.NoError(t, runShow(nil, []string{"qibuild.xml"}))

		var got configView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "/path/to/build", got.BuildDir)
		assert.True(t, got.Incredibuild)
		assert.Equal(t, "mingw32", got.Defaults.Config)
		assert.Equal(t, []config.IDE{{Name: "QtCreator", Path: "/usr/bin/qtcreator"}}, got.IDEs)
		require.Len(t, got.Configs, 1)
		assert.Equal(t, `c:\MinGW\bin`, got.Configs[0].Env.Path)
	})

	t.Run("yaml", func(t *testing.T) {
		buf := captureOutput(t)
		useDeps(t, NewMockDeps().WithContent(showContent).Build())
		yamlOutput = true

		require.NoError(t, runShow(nil, []string{"qibuild.xml"}))

		var got configView
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "QtCreator", got.Defaults.IDE)
		assert.Equal(t, "MinGW Makefiles", got.Configs[0].CMake.Generator)
	})

	t.Run("empty configuration", func(t *testing.T) {
		buf := captureOutput(t)
		useDeps(t, NewMockDeps().Build())

		require.NoError(t, runShow(nil, []string{"qibuild.xml"}))

		assert.Contains(t, buf.String(), "No IDEs configured")
		assert.Contains(t, buf.String(), "No build configurations")
	})

	t.Run("load error", func(t *testing.T) {
		captureOutput(t)
		useDeps(t, NewMockDeps().WithStore(&MockConfigStore{LoadErr: errors.New("permission denied")}).Build())

		err := runShow(nil, []string{"qibuild.xml"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load qibuild.xml")
		assert.Contains(t, err.Error(), "permission denied")
	})
}
