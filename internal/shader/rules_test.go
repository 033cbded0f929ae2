package shader

import (
	"path/filepath"
	"reflect"
	"testing"
)

func countEnv(flags []string) int {
	n := 0
	for _, f := range flags {
		if f == flagTargetEnv {
			n++
		}
	}
	return n
}

func TestMatch(t *testing.T) {
	cases := []struct {
		path string
		want Stage
		ok   bool
	}{
		{"a.vert", StageVertex, true},
		{"dir/b.frag", StageFragment, true},
		{"x/y/z.comp", StageCompute, true},
		{"g.geom", StageGeometry, true},
		{"t.tesc", StageTessControl, true},
		{"t.tese", StageTessEvaluation, true},
		{"r.rgen", StageRayGen, true},
		{"r.rchit", StageRayClosestHit, true},
		{"r.rmiss", StageRayMiss, true},
		{"m.mesh", StageMesh, true},
		{"m.task", StageTask, true},
		{"a.vert.spv", "", false},
		{"A.VERT", "", false},
		{"readme.md", "", false},
		{"frag", "", false},
	}
	for _, tc := range cases {
		got, ok := Match(tc.path)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Match(%q) = %q, %v; want %q, %v", tc.path, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOutputPath(t *testing.T) {
	e, ok := NewEntry(filepath.Join("shaders", "base", "mesh.vert"))
	if !ok {
		t.Fatalf("NewEntry rejected .vert")
	}
	want := filepath.Join("shaders", "base", "mesh.vert.spv")
	if e.Output != want {
		t.Fatalf("Output = %q, want %q", e.Output, want)
	}
}

func TestFlagsRayTracing(t *testing.T) {
	for _, name := range []string{"a.rgen", "a.rchit", "a.rmiss"} {
		for _, debug := range []bool{false, true} {
			e, _ := NewEntry(filepath.Join("raytracing", name))
			flags := Flags(e, debug)
			want := []string{flagTargetEnv, TargetEnvRayTracing}
			if debug {
				want = append([]string{flagDebug}, want...)
			}
			if !reflect.DeepEqual(flags, want) {
				t.Fatalf("Flags(%s, %v) = %v, want %v", name, debug, flags, want)
			}
		}
	}
}

func TestFlagsRayQueryFragment(t *testing.T) {
	e, _ := NewEntry(filepath.Join("shaders", RayQueryDir, "scene.frag"))
	flags := Flags(e, false)
	if !reflect.DeepEqual(flags, []string{flagTargetEnv, TargetEnvRayTracing}) {
		t.Fatalf("Flags = %v", flags)
	}

	// only an immediate parent named exactly rayquery counts
	for _, dir := range []string{
		filepath.Join(RayQueryDir, "sub"),
		"not" + RayQueryDir,
		RayQueryDir + "_old",
		"RayQuery",
	} {
		e, _ = NewEntry(filepath.Join("shaders", dir, "scene.frag"))
		if flags := Flags(e, false); len(flags) != 0 {
			t.Fatalf("fragment in %s got flags %v", dir, flags)
		}
	}

	// the sentinel applies to fragment shaders only
	e, _ = NewEntry(filepath.Join(RayQueryDir, "scene.vert"))
	if flags := Flags(e, false); len(flags) != 0 {
		t.Fatalf("vertex in rayquery got flags %v", flags)
	}
}

func TestFlagsMeshTask(t *testing.T) {
	for _, name := range []string{"a.mesh", "a.task"} {
		e, _ := NewEntry(filepath.Join(RayQueryDir, name))
		flags := Flags(e, true)
		want := []string{flagDebug, flagTargetEnv, TargetEnvMesh}
		if !reflect.DeepEqual(flags, want) {
			t.Fatalf("Flags(%s) = %v, want %v", name, flags, want)
		}
		if countEnv(flags) != 1 {
			t.Fatalf("Flags(%s) duplicated target env", name)
		}
	}
}

func TestFlagsPlainStages(t *testing.T) {
	for _, name := range []string{"a.vert", "a.frag", "a.comp", "a.geom", "a.tesc", "a.tese"} {
		e, _ := NewEntry(filepath.Join("base", name))
		if flags := Flags(e, false); len(flags) != 0 {
			t.Fatalf("Flags(%s) = %v, want none", name, flags)
		}
		if Describe(e) != "" {
			t.Fatalf("Describe(%s) not empty", name)
		}
	}
}

func TestAtMostOneTargetEnv(t *testing.T) {
	for _, st := range Stages {
		for _, dir := range []string{"base", RayQueryDir} {
			e, _ := NewEntry(filepath.Join(dir, "x"+string(st)))
			if n := countEnv(Flags(e, true)); n > 1 {
				t.Fatalf("%s in %s: %d target env flags", st, dir, n)
			}
		}
	}
}

func TestArgsOrder(t *testing.T) {
	e, _ := NewEntry(filepath.Join("dir with space", "a.mesh"))
	got := Args(e, true)
	want := []string{"-V", e.Input, "-o", e.Output, "-g", "--target-env", "spirv1.4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
}
