package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Job is one upload to process. Name is the path relative to the input root
// and decides the output location.
type Job struct {
	Name string
	Path string
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".webp": true, ".tif": true, ".tiff": true, ".tga": true,
}

// Discover returns the jobs for input: the file itself, or every image file
// below a directory. skipDir is not descended into (typically the output dir).
func Discover(input, skipDir string) ([]Job, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	if !info.IsDir() {
		return []Job{{Name: filepath.Base(input), Path: input}}, nil
	}

	skip, _ := filepath.Abs(skipDir)

	var jobs []Job
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); skipDir != "" && abs == skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(input, path)
		if err != nil {
			return nil
		}
		jobs = append(jobs, Job{Name: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", input, err)
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs, nil
}

// planOutputs assigns every job a distinct output name under the output
// directory. Uploads sharing a stem ("a.png", "a.gif") keep their source
// extension ("a.png.png", "a.gif.png"). Names compare case-insensitively and
// never take another upload's own name, which its fallback copy would use.
func planOutputs(jobs []Job, ext string) []string {
	stems := make(map[string]int, len(jobs))
	owners := make(map[string]int, len(jobs))
	for i, j := range jobs {
		stems[strings.ToLower(stem(j.Name))]++
		owners[strings.ToLower(j.Name)] = i
	}

	taken := make(map[string]bool, len(jobs))
	free := func(i int, name string) bool {
		key := strings.ToLower(name)
		if taken[key] {
			return false
		}
		owner, ok := owners[key]
		return !ok || owner == i
	}

	out := make([]string, len(jobs))
	for i, j := range jobs {
		base := stem(j.Name)
		if stems[strings.ToLower(base)] > 1 {
			base = j.Name
		}
		name := base + ext
		for n := 2; !free(i, name); n++ {
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		taken[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
