package placement

import (
	"fmt"
	"os"
	"path/filepath"

	"devx/internal/paths"
)

const utilsTS = `import { clsx, type ClassValue } from "clsx";
import { twMerge } from "tailwind-merge";

export function cn(...inputs: ClassValue[]) {
  return twMerge(clsx(inputs));
}
`

const utilsJS = `import { clsx } from "clsx";
import { twMerge } from "tailwind-merge";

export function cn(...inputs) {
  return twMerge(clsx(inputs));
}
`

// UtilsDir is the project-relative directory of the shared class-name helper.
var UtilsDir = filepath.Join("src", "lib")

// EnsureUtils writes src/lib/utils.ts (or .js) unless either variant already
// exists. It returns the created file path, or "" when nothing was written.
func (p *Placer) EnsureUtils(usesTypeScript bool) (string, error) {
	libDir := filepath.Join(p.Root, UtilsDir)

	for _, name := range []string{"utils.ts", "utils.js"} {
		exists, err := paths.FileExists(filepath.Join(libDir, name))
		if err != nil {
			return "", fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			return "", nil
		}
	}

	name, content := "utils.js", utilsJS
	if usesTypeScript {
		name, content = "utils.ts", utilsTS
	}

	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", libDir, err)
	}
	target := filepath.Join(libDir, name)
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return target, nil
}
