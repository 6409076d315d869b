package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// LoadHighScore reads the all-time best score kept next to the board.
// A missing file means no high score yet.
func LoadHighScore(path string) (int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard: read high score: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: high score %q", ErrCorrupt, strings.TrimSpace(string(data)))
	}
	return max(score, 0), nil
}

// SaveHighScore overwrites the high score file.
func SaveHighScore(path string, score int) error {
	return writeFileAtomic(path, []byte(strconv.Itoa(score)))
}
