package file

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the pda home directory.
const HomeEnv = "PDA_HOME"

// HomeDir returns the directory holding config.toml and prompts/.
// PDA_HOME wins over ~/.pda.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pda"), nil
}
