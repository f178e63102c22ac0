package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// windowsVar matches %NAME% references.
var windowsVar = regexp.MustCompile(`%([^%]+)%`)

// expandPath expands $VAR references (and %VAR% on Windows) and a leading
// ~ in p. Unknown %VAR% references are left as written.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsVar.ReplaceAllStringFunc(p, func(ref string) string {
			if v, ok := os.LookupEnv(strings.Trim(ref, "%")); ok {
				return v
			}
			return ref
		})
	}

	if p != "~" && !hasHomePrefix(p) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

func hasHomePrefix(p string) bool {
	if strings.HasPrefix(p, "~/") {
		return true
	}
	return runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)
}
