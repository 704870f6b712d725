package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/gridkz/pkg/gridmove"
)

// TemplateInfo describes a discovered template candidate.
type TemplateInfo struct {
	Path     string    // full path to the file
	Name     string    // base name shown in listings
	Size     int64     // file size in bytes
	ModTime  time.Time // last modification time
	Sections int       // section markers found by a quick parse, 0 if unreadable
}

// isTemplateFile reports whether name looks like a GridMove template.
func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ini", ".txt":
		return true
	}
	return false
}

// isConvertedOutput reports whether name is one of our own converted
// layouts. Discovery never offers those back as inputs.
func isConvertedOutput(name string) bool {
	return strings.HasSuffix(name, outputSuffix)
}

// discoverTemplates lists template candidates in dir, sorted by name.
// Files with a .ini or .txt extension are preferred; when there are none,
// any regular file is offered so oddly-named templates still show up.
// Dotfiles and previously converted layouts are always excluded.
func discoverTemplates(dir string) ([]TemplateInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var templates, others []TemplateInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || isConvertedOutput(name) {
			continue
		}
		info := templateInfo(filepath.Join(dir, name), entry)
		if isTemplateFile(name) {
			templates = append(templates, info)
		} else {
			others = append(others, info)
		}
	}

	result := templates
	if len(result) == 0 {
		result = others
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func templateInfo(path string, entry os.DirEntry) TemplateInfo {
	info := TemplateInfo{Path: path, Name: entry.Name()}
	if fi, err := entry.Info(); err == nil {
		info.Size = fi.Size()
		info.ModTime = fi.ModTime()
	}
	if data, err := os.ReadFile(path); err == nil {
		if tmpl, err := gridmove.ParseBytes(data); err == nil {
			info.Sections = len(tmpl.Sections) + tmpl.Incomplete()
		}
	}
	return info
}
