package config

// IDE is a named path to an interactive development environment executable.
type IDE struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Env references an environment-setup script and extra search paths.
type Env struct {
	Path    string `json:"path" yaml:"path"`
	BatFile string `json:"bat_file" yaml:"bat_file"`
}

// CMakeSettings holds the CMake generator of a build configuration.
type CMakeSettings struct {
	Generator string `json:"generator" yaml:"generator"`
}

// NamedConfiguration is a build flavor: a generator, an environment, and the
// name of the IDE used with it. IDE is a soft reference and may name an IDE
// that is not registered.
type NamedConfiguration struct {
	Name  string        `json:"name" yaml:"name"`
	CMake CMakeSettings `json:"cmake" yaml:"cmake"`
	Env   Env           `json:"env" yaml:"env"`
	IDE   string        `json:"ide" yaml:"ide"`
}

// Element and attribute names of the qibuild.xml schema.
const (
	RootTag = "qibuild"

	tagBuild    = "build"
	tagDefaults = "defaults"
	tagEnv      = "env"
	tagCMake    = "cmake"
	tagIDE      = "ide"
	tagConfig   = "config"

	attrName         = "name"
	attrPath         = "path"
	attrBatFile      = "bat_file"
	attrIDE          = "ide"
	attrConfig       = "config"
	attrGenerator    = "generator"
	attrBuildDir     = "build_dir"
	attrSDKDir       = "sdk_dir"
	attrIncredibuild = "incredibuild"
)
