// Package shader holds the rules that map GLSL source files to
// glslangValidator arguments.
package shader

import (
	"path/filepath"
	"strings"
)

// Stage is a shader stage identified by its file suffix.
type Stage string

const (
	StageVertex         Stage = ".vert"
	StageFragment       Stage = ".frag"
	StageCompute        Stage = ".comp"
	StageGeometry       Stage = ".geom"
	StageTessControl    Stage = ".tesc"
	StageTessEvaluation Stage = ".tese"
	StageRayGen         Stage = ".rgen"
	StageRayClosestHit  Stage = ".rchit"
	StageRayMiss        Stage = ".rmiss"
	StageMesh           Stage = ".mesh"
	StageTask           Stage = ".task"
)

// Stages lists every recognized suffix.
var Stages = []Stage{
	StageVertex,
	StageFragment,
	StageCompute,
	StageGeometry,
	StageTessControl,
	StageTessEvaluation,
	StageRayGen,
	StageRayClosestHit,
	StageRayMiss,
	StageMesh,
	StageTask,
}

const (
	// OutputSuffix is appended to a source path to name its SPIR-V binary.
	OutputSuffix = ".spv"
	// RayQueryDir marks fragment shaders that use ray queries.
	RayQueryDir = "rayquery"

	// TargetEnvRayTracing is the environment required by ray tracing stages.
	TargetEnvRayTracing = "vulkan1.2"
	// TargetEnvMesh is the environment required by mesh and task stages.
	TargetEnvMesh = "spirv1.4"

	flagDebug     = "-g"
	flagTargetEnv = "--target-env"
	flagVulkan    = "-V"
	flagOutput    = "-o"
)

// Entry is a discovered source file.
type Entry struct {
	Input  string
	Output string
	Stage  Stage
}

// Match returns the stage for path when its name ends with a recognized
// suffix. Matching is case-sensitive.
func Match(path string) (Stage, bool) {
	name := filepath.Base(path)
	for _, st := range Stages {
		if strings.HasSuffix(name, string(st)) {
			return st, true
		}
	}
	return "", false
}

// NewEntry builds the entry for a source path, or false if the path is not a
// shader source.
func NewEntry(path string) (Entry, bool) {
	st, ok := Match(path)
	if !ok {
		return Entry{}, false
	}
	return Entry{Input: path, Output: OutputPath(path), Stage: st}, true
}

// OutputPath returns the artifact path for a source path.
func OutputPath(input string) string {
	return input + OutputSuffix
}

// TargetEnv returns the --target-env value an entry needs, or "" when the
// compiler default applies. The checks run in order and at most one matches.
func TargetEnv(e Entry) string {
	switch {
	case e.Stage == StageRayGen || e.Stage == StageRayClosestHit || e.Stage == StageRayMiss:
		return TargetEnvRayTracing
	case e.Stage == StageFragment && filepath.Base(filepath.Dir(e.Input)) == RayQueryDir:
		return TargetEnvRayTracing
	case e.Stage == StageMesh || e.Stage == StageTask:
		return TargetEnvMesh
	default:
		return ""
	}
}

// Flags returns the extra compiler flags for an entry.
func Flags(e Entry, debug bool) []string {
	var flags []string
	if debug {
		flags = append(flags, flagDebug)
	}
	if env := TargetEnv(e); env != "" {
		flags = append(flags, flagTargetEnv, env)
	}
	return flags
}

// Args returns the full argument vector passed to the compiler:
// -V <input> -o <output> followed by Flags.
func Args(e Entry, debug bool) []string {
	args := []string{flagVulkan, e.Input, flagOutput, e.Output}
	return append(args, Flags(e, debug)...)
}

// Describe returns a short human label for why a target environment was
// chosen, or "" when none applies.
func Describe(e Entry) string {
	switch TargetEnv(e) {
	case TargetEnvRayTracing:
		if e.Stage == StageFragment {
			return "ray query shader, target env " + TargetEnvRayTracing
		}
		return "ray tracing shader, target env " + TargetEnvRayTracing
	case TargetEnvMesh:
		return "mesh/task shader, target env " + TargetEnvMesh
	default:
		return ""
	}
}
