package config

import (
	"github.com/beevik/etree"

	"github.com/dmerejkowsky/qibuild/internal/xmldoc"
)

func (s *Store) defaults() *etree.Element {
	return xmldoc.FindChild(s.root(), tagDefaults)
}

func (s *Store) defaultsOrCreate() *etree.Element {
	return xmldoc.FindOrCreateChild(s.rootOrCreate(), tagDefaults)
}

// DefaultConfig returns the config attribute of <defaults>: the build
// configuration used when none is given explicitly.
func (s *Store) DefaultConfig() string {
	return xmldoc.Attr(s.defaults(), attrConfig)
}

// SetDefaultConfig sets the config attribute of <defaults>.
func (s *Store) SetDefaultConfig(name string) {
	s.defaultsOrCreate().CreateAttr(attrConfig, name)
}

// DefaultIDE returns the ide attribute of <defaults>.
func (s *Store) DefaultIDE() string {
	return xmldoc.Attr(s.defaults(), attrIDE)
}

// SetDefaultIDE sets the ide attribute of <defaults>.
func (s *Store) SetDefaultIDE(name string) {
	s.defaultsOrCreate().CreateAttr(attrIDE, name)
}

// DefaultCMakeGenerator returns the generator attribute of
// <defaults><cmake>.
func (s *Store) DefaultCMakeGenerator() string {
	cmake := xmldoc.FindChild(s.defaults(), tagCMake)
	return xmldoc.Attr(cmake, attrGenerator)
}

// SetDefaultCMakeGenerator sets the generator attribute of
// <defaults><cmake>.
func (s *Store) SetDefaultCMakeGenerator(generator string) {
	cmake := xmldoc.FindOrCreateChild(s.defaultsOrCreate(), tagCMake)
	cmake.CreateAttr(attrGenerator, generator)
}

// ResolveIDE returns the IDE to use with the named build configuration.
// An empty configName selects the default configuration. The configuration's
// ide attribute is used when set, else the default IDE. The second result is
// false when no registered IDE matches.
func (s *Store) ResolveIDE(configName string) (IDE, bool) {
	if configName == "" {
		configName = s.DefaultConfig()
	}

	var name string
	if cfg, ok := s.Config(configName); ok {
		name = cfg.IDE
	}
	if name == "" {
		name = s.DefaultIDE()
	}
	if name == "" {
		return IDE{}, false
	}
	return s.IDE(name)
}
