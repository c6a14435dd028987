package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
)

// reparse serializes s and parses the result into a fresh store.
func reparse(t *testing.T, s *Store) *Store {
	t.Helper()
	fresh := New()
	require.NoError(t, fresh.SetContent(s.String()), "output must stay well-formed:\n%s", s.String())
	return fresh
}

func fromString(t *testing.T, content string) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.SetContent(content))
	return s
}

func TestDefaultValues(t *testing.T) {
	for name, content := range map[string]string{
		"empty root":   "<qibuild/>",
		"empty build":  "<qibuild><build/><defaults/></qibuild>",
		"other root":   "<config_root/>",
		"empty string": "",
	} {
		t.Run(name, func(t *testing.T) {
			s := fromString(t, content)

			assert.False(t, s.Incredibuild())
			assert.Empty(t, s.BuildDir())
			assert.Empty(t, s.SDKDir())
			assert.Empty(t, s.DefaultsEnvPath())
			assert.Empty(t, s.IDEs())
			assert.Empty(t, s.Configs())
			assert.True(t, s.ParsedCleanly())
		})
	}
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()

	assert.Empty(t, s.String())
	assert.Empty(t, s.BuildDir())
	assert.Empty(t, s.IDEs())
	assert.True(t, s.ParsedCleanly())
}

func TestSettersBuildTreeFromScratch(t *testing.T) {
	s := New()
	s.SetBuildDir("/path/to/build")

	assert.Equal(t, `<qibuild><build build_dir="/path/to/build"/></qibuild>`, s.String())

	s.SetDefaultsEnvPath("/usr/local/bin")
	assert.Equal(t,
		`<qibuild><build build_dir="/path/to/build"/><defaults><env path="/usr/local/bin"/></defaults></qibuild>`,
		s.String())
}

func TestIncredibuildSetting(t *testing.T) {
	s := fromString(t, "<qibuild />")
	require.False(t, s.Incredibuild())

	s.SetIncredibuild(true)
	s2 := reparse(t, s)
	assert.True(t, s2.Incredibuild(), s.String())

	s2.SetIncredibuild(false)
	s3 := reparse(t, s2)
	assert.False(t, s3.Incredibuild())
	assert.Contains(t, s2.String(), `incredibuild="false"`)
}

func TestIncredibuildParsing(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{`incredibuild="true"`, true},
		{`incredibuild="1"`, true},
		{`incredibuild="false"`, false},
		{`incredibuild="0"`, false},
		{`incredibuild="yes"`, false},
		{`incredibuild="True"`, false},
		{``, false},
	}

	for _, tt := range tests {
		name := tt.value
		if name == "" {
			name = "absent"
		}
		t.Run(name, func(t *testing.T) {
			s := fromString(t, "<qibuild><build "+tt.value+"/></qibuild>")
			assert.Equal(t, tt.want, s.Incredibuild())
		})
	}
}

func TestDefaultsEnvPathSetting(t *testing.T) {
	s := fromString(t, "<qibuild />")
	require.Empty(t, s.DefaultsEnvPath())

	s.SetDefaultsEnvPath("/usr/local/bin")
	assert.Equal(t, "/usr/local/bin", reparse(t, s).DefaultsEnvPath())
}

func TestChangeBuildDir(t *testing.T) {
	s := fromString(t, `<qibuild> <build build_dir="/path/to/build" /> </qibuild>`)
	require.Equal(t, "/path/to/build", s.BuildDir())

	s.SetBuildDir("/path/to/build2")

	assert.Equal(t, "/path/to/build2", reparse(t, s).BuildDir())
	assert.Equal(t, 1, strings.Count(s.String(), "<build"), "existing <build> is reused")
}

func TestSDKDirSetting(t *testing.T) {
	s := fromString(t, "<qibuild />")
	require.Empty(t, s.SDKDir())

	s.SetSDKDir("/path/to/sdk")
	s2 := reparse(t, s)
	assert.Equal(t, "/path/to/sdk", s2.SDKDir())

	s2.SetSDKDir("/path/to/sdk2")
	assert.Equal(t, "/path/to/sdk2", reparse(t, s2).SDKDir())
}

func TestMutationsPreserveUnknownContent(t *testing.T) {
	input := "<qibuild version=\"1\">\n" +
		"  <!-- managed by hand -->\n" +
		"  <manifest url=\"git://example.com/manifest.git\"/>\n" +
		"  <build build_dir=\"/b\" custom=\"x\"/>\n" +
		"</qibuild>"
	s := fromString(t, input)

	s.SetSDKDir("/sdk")
	out := s.String()

	assert.Contains(t, out, `<qibuild version="1">`)
	assert.Contains(t, out, "<!-- managed by hand -->")
	assert.Contains(t, out, `<manifest url="git://example.com/manifest.git"/>`)
	assert.Contains(t, out, `<build build_dir="/b" custom="x" sdk_dir="/sdk"/>`)
}

func TestIDESettings(t *testing.T) {
	s := fromString(t, "<qibuild />")
	require.Empty(t, s.IDEs())

	require.NoError(t, s.AddIDE(IDE{Name: "QtCreator", Path: "/path/to/qtsdk/bin/qtcreator"}))
	s2 := reparse(t, s)
	ide, ok := s2.IDEs()["QtCreator"]
	require.True(t, ok, s.String())
	assert.Equal(t, "/path/to/qtsdk/bin/qtcreator", ide.Path)

	s2.ClearIDEs()
	assert.Empty(t, s2.IDEs())
	assert.Empty(t, reparse(t, s2).IDEs())
}

func TestAddIDEMergesByName(t *testing.T) {
	s := fromString(t, "<qibuild/>")

	require.NoError(t, s.AddIDE(IDE{Name: "QtCreator", Path: "/a"}))
	require.NoError(t, s.AddIDE(IDE{Name: "QtCreator", Path: "/b"}))

	want := map[string]IDE{"QtCreator": {Name: "QtCreator", Path: "/b"}}
	if diff := cmp.Diff(want, s.IDEs()); diff != "" {
		t.Errorf("IDEs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, reparse(t, s).IDEs()); diff != "" {
		t.Errorf("reparsed IDEs() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, strings.Count(s.String(), "<ide "))
}

func TestAddIDEIsCaseSensitive(t *testing.T) {
	s := fromString(t, `<qibuild><ide name="qtcreator" path="/lower"/></qibuild>`)

	require.NoError(t, s.AddIDE(IDE{Name: "QtCreator", Path: "/upper"}))

	assert.Len(t, reparse(t, s).IDEs(), 2)
}

func TestAddIDEUpdatesExistingElement(t *testing.T) {
	s := fromString(t, `<qibuild><ide name="qtcreator" /></qibuild>`)

	require.NoError(t, s.AddIDE(IDE{Name: "qtcreator", Path: "/path/to/qtcreator"}))

	assert.Equal(t, `<qibuild><ide name="qtcreator" path="/path/to/qtcreator"/></qibuild>`, s.String())
}

func TestAddIDERejectsEmptyName(t *testing.T) {
	s := fromString(t, "<qibuild/>")

	err := s.AddIDE(IDE{Path: "/usr/bin/vim"})

	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidName))
	assert.Equal(t, "<qibuild/>", s.String())
	assert.Empty(t, s.IDEs())
}

func TestIDEsReturnsCopy(t *testing.T) {
	s := fromString(t, `<qibuild><ide name="QtCreator" path="/a"/></qibuild>`)

	ides := s.IDEs()
	ides["QtCreator"] = IDE{Name: "QtCreator", Path: "/changed"}
	ides["Other"] = IDE{Name: "Other"}

	assert.Len(t, s.IDEs(), 1)
	assert.Equal(t, "/a", s.IDEs()["QtCreator"].Path)
}

func TestDuplicateNamesLastSeenWins(t *testing.T) {
	s := fromString(t, `<qibuild><ide name="vim" path="/1"/><ide name="vim" path="/2"/></qibuild>`)
	require.Equal(t, "/2", s.IDEs()["vim"].Path)

	require.NoError(t, s.AddIDE(IDE{Name: "vim", Path: "/3"}))

	assert.Equal(t, "/3", reparse(t, s).IDEs()["vim"].Path)
}

func TestIndexScansDescendants(t *testing.T) {
	s := fromString(t, `<qibuild>
  <group>
    <ide name="nested" path="/n"/>
    <config name="deep"><cmake generator="Ninja"/></config>
  </group>
</qibuild>`)

	assert.Equal(t, "/n", s.IDEs()["nested"].Path)
	assert.Equal(t, "Ninja", s.Configs()["deep"].CMake.Generator)

	s.ClearIDEs()
	assert.NotContains(t, s.String(), "<ide")
}

func TestRemoveIDE(t *testing.T) {
	s := fromString(t, `<qibuild><ide name="a"/><ide name="b"/><ide name="a" path="/dup"/></qibuild>`)

	require.NoError(t, s.RemoveIDE("a"))

	assert.Equal(t, `<qibuild><ide name="b"/></qibuild>`, s.String())
	assert.Len(t, reparse(t, s).IDEs(), 1)

	err := s.RemoveIDE("a")
	assert.True(t, apperrors.Is(err, apperrors.ErrIdeNotFound))
}

func TestConfigSettings(t *testing.T) {
	s := fromString(t, "<qibuild />")
	require.Empty(t, s.Configs())

	mingw := NamedConfiguration{Name: "mingw32", CMake: CMakeSettings{Generator: "MinGW Makefiles"}}
	require.NoError(t, s.AddConfig(mingw))
	s2 := reparse(t, s)
	got, ok := s2.Configs()["mingw32"]
	require.True(t, ok, s.String())
	assert.Equal(t, "mingw32", got.Name)
	assert.Equal(t, "MinGW Makefiles", got.CMake.Generator)

	mingw.Env.Path = `c:\MinGW\bin`
	require.NoError(t, s2.AddConfig(mingw))
	s3 := reparse(t, s2)
	got = s3.Configs()["mingw32"]
	assert.Equal(t, "MinGW Makefiles", got.CMake.Generator)
	assert.Equal(t, `c:\MinGW\bin`, got.Env.Path)

	mingw.Env.Path = `c:\QtSDK\mingw\bin`
	require.NoError(t, s3.AddConfig(mingw))
	s4 := reparse(t, s3)
	assert.Len(t, s4.Configs(), 1)
	assert.Equal(t, `c:\QtSDK\mingw\bin`, s4.Configs()["mingw32"].Env.Path)
}

func TestAddConfigBuildsNestedElements(t *testing.T) {
	s := New()

	require.NoError(t, s.AddConfig(NamedConfiguration{
		Name:  "mingw32",
		CMake: CMakeSettings{Generator: "MinGW Makefiles"},
	}))

	assert.Equal(t,
		`<qibuild><config name="mingw32" ide=""><cmake generator="MinGW Makefiles"/><env path="" bat_file=""/></config></qibuild>`,
		s.String())
}

func TestIDEConfigs(t *testing.T) {
	s := fromString(t, `<qibuild><config name="mingw32" ide="Visual Studio 10" /></qibuild>`)
	require.Equal(t, "Visual Studio 10", s.Configs()["mingw32"].IDE)

	require.NoError(t, s.AddConfig(NamedConfiguration{Name: "mingw32", IDE: "QtCreator"}))

	s2 := reparse(t, s)
	assert.Len(t, s2.Configs(), 1)
	assert.Equal(t, "QtCreator", s2.Configs()["mingw32"].IDE)
}

func TestBatFileRoundTrip(t *testing.T) {
	const batFile = `C:\Program Files (x86)\Microsoft Visual Studio 10.0\VC\vcvarsall.bat`
	s := New()

	require.NoError(t, s.AddConfig(NamedConfiguration{
		Name: "win32-vs2010",
		Env:  Env{Path: `C:\swig`, BatFile: batFile},
	}))

	assert.Contains(t, s.String(), `bat_file="`)
	assert.NotContains(t, s.String(), "batFile")

	want := NamedConfiguration{
		Name: "win32-vs2010",
		Env:  Env{Path: `C:\swig`, BatFile: batFile},
	}
	if diff := cmp.Diff(want, reparse(t, s).Configs()["win32-vs2010"]); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestBatFileReadFromExistingDocument(t *testing.T) {
	s := fromString(t, `<qibuild><config name="vs"><env path="p" bat_file="c:\vcvars.bat"/></config></qibuild>`)

	assert.Equal(t, `c:\vcvars.bat`, s.Configs()["vs"].Env.BatFile)
}

func TestRemoveAndClearConfigs(t *testing.T) {
	s := fromString(t, `<qibuild><config name="a"/><config name="b"/></qibuild>`)

	require.NoError(t, s.RemoveConfig("a"))
	assert.Equal(t, []string{"b"}, configNames(reparse(t, s)))

	err := s.RemoveConfig("missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrConfigNotFound))

	s.ClearConfigs()
	assert.Empty(t, reparse(t, s).Configs())
}

func TestAddConfigRejectsEmptyName(t *testing.T) {
	s := New()

	err := s.AddConfig(NamedConfiguration{IDE: "QtCreator"})

	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	assert.Empty(t, s.String())
}

func TestMalformedContent(t *testing.T) {
	s := fromString(t, `<qibuild><build build_dir="/b"/><ide name="vim"/></qibuild>`)

	err := s.SetContent(`<qibuild><build build_dir="/b"`)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
	assert.False(t, s.ParsedCleanly())
	assert.Empty(t, s.BuildDir())
	assert.Empty(t, s.IDEs())
	assert.Empty(t, s.String())

	require.NoError(t, s.SetContent("<qibuild/>"))
	assert.True(t, s.ParsedCleanly())

	for _, content := range []string{
		"this is not xml\n",
		"<a/><b/>",
		"<qibuild/>trailing text",
		"<!-- no root -->",
	} {
		t.Run(content, func(t *testing.T) {
			s := fromString(t, `<qibuild><ide name="vim"/></qibuild>`)

			err := s.SetContent(content)

			assert.True(t, apperrors.Is(err, apperrors.ErrParse))
			assert.False(t, s.ParsedCleanly())
			assert.Empty(t, s.IDEs())
			assert.Empty(t, s.String())
		})
	}
}

func TestSetContentReplacesState(t *testing.T) {
	s := New()
	require.NoError(t, s.AddIDE(IDE{Name: "vim"}))
	require.NoError(t, s.AddConfig(NamedConfiguration{Name: "linux64"}))

	require.NoError(t, s.SetContent("<qibuild/>"))

	assert.Empty(t, s.IDEs())
	assert.Empty(t, s.Configs())
	assert.Equal(t, "<qibuild/>", s.String())
}

func TestEndToEnd(t *testing.T) {
	s := fromString(t, "<qibuild/>")
	s.SetBuildDir("/path/to/build")
	s.SetSDKDir("/path/to/sdk")
	s.SetIncredibuild(true)
	require.NoError(t, s.AddIDE(IDE{Name: "QtCreator", Path: "/usr/bin/qtcreator"}))
	require.NoError(t, s.AddConfig(NamedConfiguration{
		Name:  "mingw32",
		CMake: CMakeSettings{Generator: "MinGW Makefiles"},
		Env:   Env{Path: `c:\MinGW\bin`},
	}))

	got := reparse(t, s)

	assert.Equal(t, "/path/to/build", got.BuildDir())
	assert.Equal(t, "/path/to/sdk", got.SDKDir())
	assert.True(t, got.Incredibuild())
	if diff := cmp.Diff(map[string]IDE{
		"QtCreator": {Name: "QtCreator", Path: "/usr/bin/qtcreator"},
	}, got.IDEs()); diff != "" {
		t.Errorf("IDEs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]NamedConfiguration{
		"mingw32": {
			Name:  "mingw32",
			CMake: CMakeSettings{Generator: "MinGW Makefiles"},
			Env:   Env{Path: `c:\MinGW\bin`},
		},
	}, got.Configs()); diff != "" {
		t.Errorf("Configs() mismatch (-want +got):\n%s", diff)
	}
}

func configNames(s *Store) []string {
	var names []string
	for name := range s.Configs() {
		names = append(names, name)
	}
	return names
}
