package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iw2rmb/orusplay/buffer"
)

const (
	// MainFile is the file every session starts with.
	MainFile = "main.orus"
	// FileExt is appended to new file names that lack it.
	FileExt = ".orus"
	// NewFileTemplate is the content of a freshly created file.
	NewFileTemplate = "// New Orus file\n\n"
	// DefaultCode is the program shown on start and after Reset.
	DefaultCode = "fn main() {\n    print(\"Hello\")\n}"
)

var (
	ErrNoSuchFile    = errors.New("no such file")
	ErrLastFile      = errors.New("cannot delete the last file")
	ErrEmptyFileName = errors.New("file name is empty")
	ErrNoSuchExample = errors.New("no such example")
)

// Session is the set of open files and the one being edited. Files keep their
// creation order.
type Session struct {
	names   []string
	code    map[string]string
	current string
}

// NewSession starts with MainFile holding code, or DefaultCode when code is
// empty.
func NewSession(code string) *Session {
	if code == "" {
		code = DefaultCode
	}
	return &Session{
		names:   []string{MainFile},
		code:    map[string]string{MainFile: buffer.Clean(code)},
		current: MainFile,
	}
}

// Files returns file names in creation order.
func (s *Session) Files() []string { return append([]string(nil), s.names...) }

func (s *Session) Current() string { return s.current }

// Code returns the content of the current file.
func (s *Session) Code() string { return s.code[s.current] }

// FileCode returns the content of name.
func (s *Session) FileCode(name string) (string, bool) {
	code, ok := s.code[name]
	return code, ok
}

// SetCode replaces the content of the current file.
func (s *Session) SetCode(code string) { s.code[s.current] = buffer.Clean(code) }

// NewFile switches to name, creating it from NewFileTemplate first when it
// does not exist. The extension is added when missing. It returns the
// normalized name.
func (s *Session) NewFile(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFileName
	}
	if !strings.HasSuffix(name, FileExt) {
		name += FileExt
	}
	if _, ok := s.code[name]; !ok {
		s.names = append(s.names, name)
		s.code[name] = NewFileTemplate
	}
	s.current = name
	return name, nil
}

// Switch makes name the current file.
func (s *Session) Switch(name string) error {
	if _, ok := s.code[name]; !ok {
		return fmt.Errorf("switch to %q: %w", name, ErrNoSuchFile)
	}
	s.current = name
	return nil
}

// Delete removes name. The last remaining file cannot be deleted. Deleting the
// current file switches to the first remaining one.
func (s *Session) Delete(name string) error {
	if _, ok := s.code[name]; !ok {
		return fmt.Errorf("delete %q: %w", name, ErrNoSuchFile)
	}
	if len(s.names) == 1 {
		return ErrLastFile
	}
	delete(s.code, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	if s.current == name {
		s.current = s.names[0]
	}
	return nil
}

// Reset puts DefaultCode into the current file.
func (s *Session) Reset() { s.code[s.current] = DefaultCode }

// LoadExample puts the built-in example titled title into the current file.
func (s *Session) LoadExample(title string) error {
	ex, ok := Example(title)
	if !ok {
		return fmt.Errorf("load example %q: %w", title, ErrNoSuchExample)
	}
	s.code[s.current] = buffer.Clean(ex.Code)
	return nil
}
