// Package config resolves the database path for the mem CLI.
//
// Resolution priority:
//  1. explicit --db flag
//  2. MEM_DB environment variable
//  3. --global flag, forcing ~/.mem/
//  4. a .mem/ directory in the current working directory
//  5. fallback to global ~/.mem/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rcliao/mem/internal/memerr"
)

const (
	dirName  = ".mem"
	fileName = "memory.db"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("MEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("db")
	return v
}

// GlobalDBPath returns ~/.mem/memory.db.
func GlobalDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", memerr.Wrapf(err, memerr.CodeConfigResolve, "resolve home dir")
	}
	return filepath.Join(home, dirName, fileName), nil
}

// LocalDBPath returns CWD/.mem/memory.db.
func LocalDBPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", memerr.Wrapf(err, memerr.CodeConfigResolve, "resolve working dir")
	}
	return filepath.Join(cwd, dirName, fileName), nil
}

// HasLocalDB reports whether a .mem/ directory exists in the current
// working directory.
func HasLocalDB() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(cwd, dirName))
	return err == nil && info.IsDir()
}

// ResolveDBPath resolves the database path from an explicit override and
// the --global flag, consulting the MEM_DB environment variable in between.
func ResolveDBPath(override string, useGlobal bool) (string, error) {
	if override != "" {
		return absPath(override)
	}

	if env := newViper().GetString("db"); env != "" {
		return absPath(env)
	}

	if useGlobal {
		return GlobalDBPath()
	}

	if HasLocalDB() {
		return LocalDBPath()
	}

	return GlobalDBPath()
}

// EnsureDBDir creates the parent directory for the database file.
func EnsureDBDir(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return memerr.Wrapf(err, memerr.CodeConfigResolve, "create db dir")
	}
	return nil
}

func absPath(p string) (string, error) {
	if strings.HasPrefix(p, "~"+string(os.PathSeparator)) || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", memerr.Wrapf(err, memerr.CodeConfigResolve, "expand %q", p)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", memerr.Wrapf(err, memerr.CodeConfigResolve, "resolve %q", p)
	}
	return abs, nil
}
