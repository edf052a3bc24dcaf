package loader

import (
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// DotenvEnviron reads the dotenv file at path and returns an environ
// function for WithEnviron. Variables already set in the process
// environment take precedence over the file.
func DotenvEnviron(path string) (func() []string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	fromFile := make([]string, 0, len(names))
	for _, name := range names {
		fromFile = append(fromFile, name+"="+vars[name])
	}
	return func() []string {
		return append(append([]string(nil), fromFile...), os.Environ()...)
	}, nil
}
