package config

import (
	"github.com/beevik/etree"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/logger"
	"github.com/dmerejkowsky/qibuild/internal/xmldoc"
)

type ideEntry struct {
	ide  IDE
	elem *etree.Element
}

type configEntry struct {
	config NamedConfiguration
	elem   *etree.Element
}

// Store owns a parsed qibuild.xml document and the name-keyed indexes of its
// <ide> and <config> elements. Mutators update the index first and then
// reflect the change into the tree, so String always matches the indexes.
//
// A Store is not safe for concurrent use.
type Store struct {
	doc      *etree.Document
	ides     map[string]ideEntry
	configs  map[string]configEntry
	parseErr error
}

// New returns an empty store with no backing document.
func New() *Store {
	s := &Store{}
	s.reset(etree.NewDocument())
	return s
}

func (s *Store) reset(doc *etree.Document) {
	s.doc = doc
	s.ides = make(map[string]ideEntry)
	s.configs = make(map[string]configEntry)
}

// SetContent replaces the whole state with the parsed content. Malformed XML
// leaves the store holding an empty document and returns a PARSE error.
func (s *Store) SetContent(content string) error {
	doc, err := xmldoc.Parse(content)
	if err != nil {
		logger.Warn("discarding malformed configuration: %v", err)
		s.reset(etree.NewDocument())
		s.parseErr = apperrors.Wrap(apperrors.ErrCodeParse, "malformed configuration", err)
		return s.parseErr
	}

	s.reset(doc)
	s.parseErr = nil
	s.rebuildIndexes()
	logger.DebugFields("parsed configuration", map[string]interface{}{
		"ides":    len(s.ides),
		"configs": len(s.configs),
	})
	return nil
}

// ParsedCleanly reports whether the last SetContent or Read parsed without
// error. A new store counts as clean.
func (s *Store) ParsedCleanly() bool {
	return s.parseErr == nil
}

// String renders the document as it currently stands.
func (s *Store) String() string {
	return xmldoc.Render(s.doc)
}

// Later elements win when two share a name.
func (s *Store) rebuildIndexes() {
	for _, e := range xmldoc.Descendants(s.doc, tagIDE) {
		ide := ideFromElement(e)
		s.ides[ide.Name] = ideEntry{ide: ide, elem: e}
	}
	for _, e := range xmldoc.Descendants(s.doc, tagConfig) {
		cfg := configFromElement(e)
		s.configs[cfg.Name] = configEntry{config: cfg, elem: e}
	}
}

func ideFromElement(e *etree.Element) IDE {
	return IDE{
		Name: xmldoc.Attr(e, attrName),
		Path: xmldoc.Attr(e, attrPath),
	}
}

func configFromElement(e *etree.Element) NamedConfiguration {
	env := xmldoc.FindChild(e, tagEnv)
	return NamedConfiguration{
		Name: xmldoc.Attr(e, attrName),
		IDE:  xmldoc.Attr(e, attrIDE),
		CMake: CMakeSettings{
			Generator: xmldoc.Attr(xmldoc.FindChild(e, tagCMake), attrGenerator),
		},
		Env: Env{
			Path:    xmldoc.Attr(env, attrPath),
			BatFile: xmldoc.Attr(env, attrBatFile),
		},
	}
}

// root returns the document element, or nil for an empty document.
func (s *Store) root() *etree.Element {
	return s.doc.Root()
}

func (s *Store) rootOrCreate() *etree.Element {
	if root := s.doc.Root(); root != nil {
		return root
	}
	return s.doc.CreateElement(RootTag)
}

func (s *Store) build() *etree.Element {
	return xmldoc.FindChild(s.root(), tagBuild)
}

func (s *Store) buildOrCreate() *etree.Element {
	return xmldoc.FindOrCreateChild(s.rootOrCreate(), tagBuild)
}

// BuildDir returns the build_dir attribute of <build>.
func (s *Store) BuildDir() string {
	return xmldoc.Attr(s.build(), attrBuildDir)
}

// SetBuildDir sets the build_dir attribute of <build>.
func (s *Store) SetBuildDir(path string) {
	s.buildOrCreate().CreateAttr(attrBuildDir, path)
}

// SDKDir returns the sdk_dir attribute of <build>.
func (s *Store) SDKDir() string {
	return xmldoc.Attr(s.build(), attrSDKDir)
}

// SetSDKDir sets the sdk_dir attribute of <build>.
func (s *Store) SetSDKDir(path string) {
	s.buildOrCreate().CreateAttr(attrSDKDir, path)
}

// Incredibuild reports whether <build incredibuild> is "true" or "1".
func (s *Store) Incredibuild() bool {
	return xmldoc.BoolAttr(s.build(), attrIncredibuild)
}

// SetIncredibuild writes "true" or "false" to <build incredibuild>.
func (s *Store) SetIncredibuild(on bool) {
	xmldoc.SetBoolAttr(s.buildOrCreate(), attrIncredibuild, on)
}

// DefaultsEnvPath returns the path attribute of <defaults><env>.
func (s *Store) DefaultsEnvPath() string {
	env := xmldoc.FindChild(s.defaults(), tagEnv)
	return xmldoc.Attr(env, attrPath)
}

// SetDefaultsEnvPath sets the path attribute of <defaults><env>.
func (s *Store) SetDefaultsEnvPath(path string) {
	env := xmldoc.FindOrCreateChild(s.defaultsOrCreate(), tagEnv)
	env.CreateAttr(attrPath, path)
}

// AddIDE registers ide, updating the existing entry of the same name in
// place or appending a new <ide> element to the document root.
func (s *Store) AddIDE(ide IDE) error {
	if ide.Name == "" {
		return apperrors.Validation("ide name cannot be empty")
	}

	entry, exists := s.ides[ide.Name]
	if !exists {
		entry.elem = s.rootOrCreate().CreateElement(tagIDE)
	}
	entry.elem.CreateAttr(attrName, ide.Name)
	entry.elem.CreateAttr(attrPath, ide.Path)
	entry.ide = ide
	s.ides[ide.Name] = entry

	logger.DebugFields("ide registered", map[string]interface{}{
		"name":    ide.Name,
		"updated": exists,
	})
	return nil
}

// IDEs returns a copy of the IDE index.
func (s *Store) IDEs() map[string]IDE {
	out := make(map[string]IDE, len(s.ides))
	for name, entry := range s.ides {
		out[name] = entry.ide
	}
	return out
}

// IDE returns the IDE registered under name.
func (s *Store) IDE(name string) (IDE, bool) {
	entry, ok := s.ides[name]
	return entry.ide, ok
}

// ClearIDEs removes every <ide> element and empties the index.
func (s *Store) ClearIDEs() {
	removed := xmldoc.RemoveAll(s.doc, tagIDE)
	s.ides = make(map[string]ideEntry)
	logger.Debug("removed %d ide elements", removed)
}

// RemoveIDE removes every <ide> element named name.
func (s *Store) RemoveIDE(name string) error {
	if _, ok := s.ides[name]; !ok {
		return apperrors.NotFound("ide", name)
	}
	xmldoc.RemoveMatching(s.doc, tagIDE, hasName(name))
	delete(s.ides, name)
	return nil
}

// AddConfig registers cfg with the same merge rule as AddIDE. The ide
// attribute and the nested <cmake> and <env> elements are always rewritten.
func (s *Store) AddConfig(cfg NamedConfiguration) error {
	if cfg.Name == "" {
		return apperrors.Validation("config name cannot be empty")
	}

	entry, exists := s.configs[cfg.Name]
	if !exists {
		entry.elem = s.rootOrCreate().CreateElement(tagConfig)
	}
	entry.elem.CreateAttr(attrName, cfg.Name)
	entry.elem.CreateAttr(attrIDE, cfg.IDE)

	cmake := xmldoc.FindOrCreateChild(entry.elem, tagCMake)
	cmake.CreateAttr(attrGenerator, cfg.CMake.Generator)

	env := xmldoc.FindOrCreateChild(entry.elem, tagEnv)
	env.CreateAttr(attrPath, cfg.Env.Path)
	env.CreateAttr(attrBatFile, cfg.Env.BatFile)

	entry.config = cfg
	s.configs[cfg.Name] = entry

	logger.DebugFields("config registered", map[string]interface{}{
		"name":    cfg.Name,
		"updated": exists,
	})
	return nil
}

// Configs returns a copy of the build configuration index.
func (s *Store) Configs() map[string]NamedConfiguration {
	out := make(map[string]NamedConfiguration, len(s.configs))
	for name, entry := range s.configs {
		out[name] = entry.config
	}
	return out
}

// Config returns the build configuration registered under name.
func (s *Store) Config(name string) (NamedConfiguration, bool) {
	entry, ok := s.configs[name]
	return entry.config, ok
}

// ClearConfigs removes every <config> element and empties the index.
func (s *Store) ClearConfigs() {
	removed := xmldoc.RemoveAll(s.doc, tagConfig)
	s.configs = make(map[string]configEntry)
	logger.Debug("removed %d config elements", removed)
}

// RemoveConfig removes every <config> element named name.
func (s *Store) RemoveConfig(name string) error {
	if _, ok := s.configs[name]; !ok {
		return apperrors.NotFound("config", name)
	}
	xmldoc.RemoveMatching(s.doc, tagConfig, hasName(name))
	delete(s.configs, name)
	return nil
}

func hasName(name string) func(*etree.Element) bool {
	return func(e *etree.Element) bool {
		return xmldoc.Attr(e, attrName) == name
	}
}
