package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmerejkowsky/qibuild/internal/config"
	"github.com/dmerejkowsky/qibuild/internal/executor"
	"github.com/dmerejkowsky/qibuild/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor XML_CONFIG",
	Short: "Check a configuration for broken references",
	Long: `Run diagnostic checks on a qibuild configuration file.

Checks:
  - The file parses
  - Build and SDK directories exist
  - Defaults name a registered configuration and IDE
  - Every IDE has a path that can be executed
  - Every build configuration names a registered IDE, an existing setup
    script, and a generator the local cmake provides

Exits with status 1 when an error is found.

Examples:
  qibuild-config doctor qibuild.xml
  qibuild-config doctor qibuild.xml --json`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Check statuses
const (
	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status" yaml:"status"` // "success", "warning", "error"
	Message string `json:"message" yaml:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	File          string        `json:"file" yaml:"file"`
	Configuration []CheckResult `json:"configuration" yaml:"configuration"`
	IDEs          []CheckResult `json:"ides" yaml:"ides"`
	Configs       []CheckResult `json:"configs" yaml:"configs"`
}

// Errors counts the checks that failed
func (r *DoctorReport) Errors() int {
	n := 0
	for _, group := range [][]CheckResult{r.Configuration, r.IDEs, r.Configs} {
		for _, check := range group {
			if check.Status == statusError {
				n++
			}
		}
	}
	return n
}

func runDoctor(cmd *cobra.Command, args []string) error {
	path := args[0]
	report := &DoctorReport{File: path}

	exists, err := deps.Store.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	s, err := deps.Store.Load(path)
	if err != nil {
		report.Configuration = []CheckResult{{statusError, fmt.Sprintf("Cannot load %s: %v", path, err)}}
	} else {
		report.Configuration = checkConfiguration(path, exists, s)
		report.IDEs = checkIDEs(deps.Executor, s)
		generators, check := detectGenerators(deps.Executor)
		report.Configuration = append(report.Configuration, check)
		report.Configs = checkConfigs(s, generators)
	}

	if ok, err := structured(report); ok {
		if err != nil {
			return err
		}
	} else {
		displayDoctorResults(report)
	}

	if n := report.Errors(); n > 0 {
		return fmt.Errorf("%d problem(s) found in %s", n, path)
	}
	return nil
}

func checkConfiguration(path string, exists bool, s *config.Store) []CheckResult {
	results := []CheckResult{{statusSuccess, fmt.Sprintf("%s parses", path)}}
	if !exists {
		results[0] = CheckResult{statusWarning, fmt.Sprintf("%s does not exist, checking an empty configuration", path)}
	}

	results = append(results, checkDir("Build dir", s.BuildDir()))
	if s.SDKDir() != "" {
		results = append(results, checkDir("SDK dir", s.SDKDir()))
	}

	if name := s.DefaultConfig(); name != "" {
		if _, ok := s.Config(name); ok {
			results = append(results, CheckResult{statusSuccess, fmt.Sprintf("Default configuration %s is registered", name)})
		} else {
			results = append(results, CheckResult{statusError, fmt.Sprintf("Default configuration %s is not registered", name)})
		}
	}

	if name := s.DefaultIDE(); name != "" {
		if _, ok := s.IDE(name); ok {
			results = append(results, CheckResult{statusSuccess, fmt.Sprintf("Default IDE %s is registered", name)})
		} else {
			results = append(results, CheckResult{statusError, fmt.Sprintf("Default IDE %s is not registered", name)})
		}
	}

	return results
}

func checkDir(label, dir string) CheckResult {
	if dir == "" {
		return CheckResult{statusWarning, fmt.Sprintf("%s is not set", label)}
	}
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		return CheckResult{statusWarning, fmt.Sprintf("%s %s does not exist", label, dir)}
	case !info.IsDir():
		return CheckResult{statusError, fmt.Sprintf("%s %s is not a directory", label, dir)}
	default:
		return CheckResult{statusSuccess, fmt.Sprintf("%s %s exists", label, dir)}
	}
}

func checkIDEs(exec executor.CommandExecutor, s *config.Store) []CheckResult {
	results := []CheckResult{}
	for _, ide := range sortedIDEs(s) {
		if ide.Path == "" {
			results = append(results, CheckResult{statusWarning, fmt.Sprintf("%s has no path", ide.Name)})
			continue
		}
		if _, err := exec.LookPath(ide.Path); err != nil {
			results = append(results, CheckResult{statusError, fmt.Sprintf("%s: %s not found", ide.Name, ide.Path)})
			continue
		}
		results = append(results, CheckResult{statusSuccess, fmt.Sprintf("%s: %s", ide.Name, ide.Path)})
	}
	return results
}

// cmakeGenerators holds the generator names listed by cmake --help. Names
// that take a platform suffix map to true.
type cmakeGenerators map[string]bool

// Supports reports whether cmake accepts name, either exactly or as a
// generator followed by its platform.
func (g cmakeGenerators) Supports(name string) bool {
	if _, ok := g[name]; ok {
		return true
	}
	for gen, arch := range g {
		if arch && strings.HasPrefix(name, gen+" ") {
			return true
		}
	}
	return false
}

// detectGenerators asks cmake which generators it provides. A nil result
// means the list is unknown and generators are not checked.
func detectGenerators(exec executor.CommandExecutor) (cmakeGenerators, CheckResult) {
	cmake, err := exec.LookPath("cmake")
	if err != nil {
		return nil, CheckResult{statusWarning, "cmake not found, generators not checked"}
	}
	out, err := exec.Execute(cmake, "--help")
	if err != nil {
		return nil, CheckResult{statusWarning, fmt.Sprintf("%s --help failed: %v", cmake, err)}
	}
	generators := parseGenerators(string(out))
	if len(generators) == 0 {
		return nil, CheckResult{statusWarning, fmt.Sprintf("No generators listed by %s --help", cmake)}
	}
	return generators, CheckResult{statusSuccess, fmt.Sprintf("%s provides %d generators", cmake, len(generators))}
}

// parseGenerators reads the "Generators" section of cmake --help. Entries
// are indented by two columns, optionally marked "*" as the default, and
// "NAME = description"; long names put the description on the next line,
// and description continuations are indented further.
func parseGenerators(help string) cmakeGenerators {
	generators := cmakeGenerators{}
	inSection := false
	scanner := bufio.NewScanner(strings.NewReader(help))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "Generators" {
			inSection = true
			continue
		}
		if !inSection || len(line) < 3 || strings.HasPrefix(strings.TrimSpace(line), "The following") {
			continue
		}
		if line[0] != ' ' && line[0] != '*' {
			continue
		}
		if strings.TrimLeft(line[2:], " ") != line[2:] {
			continue
		}

		name := line[2:]
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		arch := strings.HasSuffix(name, "[arch]")
		name = strings.TrimSpace(strings.TrimSuffix(name, "[arch]"))
		if name != "" {
			generators[name] = arch
		}
	}
	return generators
}

func checkConfigs(s *config.Store, generators cmakeGenerators) []CheckResult {
	results := []CheckResult{}
	for _, cfg := range sortedConfigs(s) {
		if cfg.IDE != "" {
			if _, ok := s.IDE(cfg.IDE); !ok {
				results = append(results, CheckResult{statusError, fmt.Sprintf("%s uses unregistered IDE %s", cfg.Name, cfg.IDE)})
				continue
			}
		}
		if cfg.Env.BatFile != "" {
			if _, err := os.Stat(cfg.Env.BatFile); err != nil {
				results = append(results, CheckResult{statusWarning, fmt.Sprintf("%s: setup script %s not found", cfg.Name, cfg.Env.BatFile)})
				continue
			}
		}
		if cfg.CMake.Generator == "" {
			results = append(results, CheckResult{statusWarning, fmt.Sprintf("%s has no CMake generator", cfg.Name)})
			continue
		}
		if generators != nil && !generators.Supports(cfg.CMake.Generator) {
			results = append(results, CheckResult{statusWarning, fmt.Sprintf("%s: cmake does not provide generator %s", cfg.Name, cfg.CMake.Generator)})
			continue
		}
		results = append(results, CheckResult{statusSuccess, fmt.Sprintf("%s (%s)", cfg.Name, cfg.CMake.Generator)})
	}
	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	if len(report.IDEs) > 0 {
		output.Print("Checking IDEs...")
		for _, check := range report.IDEs {
			displayCheck(check)
		}
		output.Print("")
	}

	if len(report.Configs) > 0 {
		output.Print("Checking build configurations...")
		for _, check := range report.Configs {
			displayCheck(check)
		}
	} else {
		output.Print("No build configurations")
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case statusSuccess:
		output.Success("%s", check.Message)
	case statusWarning:
		output.Warn("%s", check.Message)
	case statusError:
		output.Error("%s", check.Message)
	}
}
