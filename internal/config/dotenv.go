package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadDotEnv loads the nearest .env file, walking up from the working
// directory until the module root. Variables already present in the
// process environment win over the file.
func loadDotEnv() {
	dotEnvPath, ok := findDotEnvPath()
	if !ok {
		return
	}
	_ = godotenv.Load(dotEnvPath)
}

func findDotEnvPath() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	for dir := cwd; dir != ""; {
		path := filepath.Join(dir, ".env")
		if isRegularFile(path) {
			return path, true
		}

		if isRegularFile(filepath.Join(dir, "go.mod")) || isDir(filepath.Join(dir, ".git")) {
			return "", false
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false
}

func isRegularFile(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return st.Mode().IsRegular()
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return st.IsDir()
}
