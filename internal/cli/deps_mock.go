package cli

import (
	"context"

	"github.com/dmerejkowsky/qibuild/internal/config"
	"github.com/dmerejkowsky/qibuild/internal/executor"
	"github.com/dmerejkowsky/qibuild/internal/input"
	"github.com/dmerejkowsky/qibuild/internal/platform"
)

// MockConfigStore is an in-memory ConfigStore. Update works on a copy and
// only keeps it when fn succeeds, like the file-backed store.
type MockConfigStore struct {
	Content   string
	Missing   bool
	LoadErr   error
	UpdateErr error

	LoadCalls   []string
	UpdateCalls []string
}

func (m *MockConfigStore) Load(path string) (*config.Store, error) {
	m.LoadCalls = append(m.LoadCalls, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.parse()
}

func (m *MockConfigStore) Update(_ context.Context, path string, fn func(*config.Store) error) error {
	m.UpdateCalls = append(m.UpdateCalls, path)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	s, err := m.parse()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	m.Content = s.String()
	return nil
}

// Exists reports the file as present unless Missing is set
func (m *MockConfigStore) Exists(string) (bool, error) {
	return !m.Missing, nil
}

func (m *MockConfigStore) parse() (*config.Store, error) {
	s := config.New()
	if err := s.SetContent(m.Content); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the stored document parsed into a fresh store
func (m *MockConfigStore) Current() *config.Store {
	s, err := m.parse()
	if err != nil {
		return config.New()
	}
	return s
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Paths *platform.Paths
	Err   error
}

func (m *MockPlatformDetector) DetectPaths() (*platform.Paths, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Paths != nil {
		return m.Paths, nil
	}
	return &platform.Paths{
		ConfigDir:  "/home/user/.config/qi",
		UserConfig: "/home/user/.config/qi/qibuild.xml",
	}, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			Store:            &MockConfigStore{},
			PlatformDetector: &MockPlatformDetector{},
			Executor:         &executor.MockExecutor{},
			StdinReader:      input.NewStringReader("y\n"),
		},
	}
}

// WithContent sets the document held by the mock store
func (b *MockDependenciesBuilder) WithContent(content string) *MockDependenciesBuilder {
	b.deps.Store = &MockConfigStore{Content: content}
	return b
}

// WithStore sets a custom config store
func (b *MockDependenciesBuilder) WithStore(store ConfigStore) *MockDependenciesBuilder {
	b.deps.Store = store
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithStdinInput sets the stdin lines for the mock
func (b *MockDependenciesBuilder) WithStdinInput(lines ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(lines...)
	return b
}

// WithPlatformPaths sets the paths returned by the platform detector
func (b *MockDependenciesBuilder) WithPlatformPaths(paths *platform.Paths) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Paths: paths}
	return b
}

// WithPlatformError makes platform detection fail
func (b *MockDependenciesBuilder) WithPlatformError(err error) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Err: err}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}
