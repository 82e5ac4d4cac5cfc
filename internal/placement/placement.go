package placement

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

var (
	ErrResourceDirectoryMissing = errors.New("resource directory does not exist")
	ErrSourceFileMissing        = errors.New("source file does not exist")
	ErrCopyFailed               = errors.New("copy failed")
)

// Error ties a placement failure to the path involved. errors.Is matches Kind;
// errors.Unwrap returns the underlying cause, if any.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// Placer copies templates from Resources into the project rooted at Root.
type Placer struct {
	Resources fs.FS
	Root      string
}

// New returns a placer reading templates from resources.
func New(resources fs.FS, root string) *Placer {
	return &Placer{Resources: resources, Root: root}
}

// TemplateDir returns the template directory for a component inside Resources.
func TemplateDir(framework, component, theme string) string {
	return path.Join("components", framework, component, theme)
}

// Place copies <component>.<fileType> for the framework and theme into output
// and returns the written path. Relative outputs are resolved against Root.
func (p *Placer) Place(framework, component, theme, fileType, output string) (string, error) {
	dir := TemplateDir(framework, component, theme)
	info, err := fs.Stat(p.Resources, dir)
	if err != nil || !info.IsDir() {
		return "", &Error{Kind: ErrResourceDirectoryMissing, Path: dir}
	}

	fileName := component + "." + fileType
	source := path.Join(dir, fileName)
	info, err = fs.Stat(p.Resources, source)
	if err != nil || info.IsDir() {
		return "", &Error{Kind: ErrSourceFileMissing, Path: source}
	}

	destDir := p.resolve(output)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", &Error{Kind: ErrCopyFailed, Path: destDir, Err: err}
	}

	dest := filepath.Join(destDir, fileName)
	if err := copyFile(p.Resources, source, dest); err != nil {
		return "", &Error{Kind: ErrCopyFailed, Path: dest, Err: err}
	}
	return dest, nil
}

func (p *Placer) resolve(output string) string {
	if filepath.IsAbs(output) || p.Root == "" {
		return filepath.Clean(output)
	}
	return filepath.Join(p.Root, output)
}

func copyFile(fsys fs.FS, source, dest string) error {
	src, err := fsys.Open(source)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
