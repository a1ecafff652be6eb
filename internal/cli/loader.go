package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/schemacov/internal/cueschema"
)

// Error code constants, unified across commands.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeNotFound    = "E002" // schema file not found or unreadable
	ErrCodeBuildFailed = "E003" // CUE build failed
	ErrCodeCompile     = "E004" // schema compilation failed
)

// LoadError represents an error that occurred while loading a schema file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchemaFile reads and builds a single CUE schema document.
func LoadSchemaFile(path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("reading schema file: %v", err),
		}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: fmt.Sprintf("building CUE value: %v", err),
		}
	}
	return v, nil
}

// loadSchemas loads path and compiles every schema entry in the document.
func loadSchemas(path string) ([]cueschema.Named, error) {
	v, err := LoadSchemaFile(path)
	if err != nil {
		return nil, err
	}

	schemas, err := cueschema.CompileDocument(v)
	if err != nil {
		var compileErr *cueschema.CompileError
		if errors.As(err, &compileErr) {
			return nil, &LoadError{Code: ErrCodeCompile, Message: compileErr.Error()}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}
	return schemas, nil
}

// entryLocation converts a compiled schema's declaration position into a
// registration location, falling back to the file path when CUE carries no
// position.
func entryLocation(path string, s cueschema.Named) (string, int) {
	if s.Pos.Filename != "" {
		return s.Pos.Filename, s.Pos.Line
	}
	return path, 0
}
