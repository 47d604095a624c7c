package tickers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

// Load reads the watch-list: a JSON array of ticker symbols. Hand-edited
// lists with minor syntax damage (trailing commas, single quotes) are
// repaired and used with a warning; anything irreparable is an error, as is
// an empty list. Callers treat every error as fatal for the run.
func Load(path string, logger *zap.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ticker file %s: %w", path, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		repaired, repErr := jsonrepair.JSONRepair(string(data))
		if repErr != nil {
			return nil, fmt.Errorf("parsing ticker file %s: %w", path, err)
		}
		if jsonErr := json.Unmarshal([]byte(repaired), &list); jsonErr != nil {
			return nil, fmt.Errorf("parsing ticker file %s: %w", path, err)
		}
		logger.Warn("ticker file needed repair", zap.String("path", path))
	}

	out := make([]string, 0, len(list))
	for _, t := range list {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ticker file %s contains no tickers", path)
	}
	return out, nil
}
