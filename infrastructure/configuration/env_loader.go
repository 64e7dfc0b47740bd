package configuration

import (
	"bufio"
	"os"
	"strings"

	"video-stats-updater/infrastructure/logger"
)

// EnvFiles are read before the config file so their values feed the
// environment overrides.
var EnvFiles = []string{"config.env", ".env"}

// LoadEnvFromFile exports KEY=VALUE pairs from the given files and returns how
// many variables it set. Variables already present in the process
// environment win. Blank lines, # comments and an optional "export " prefix
// are accepted; missing files are skipped.
func LoadEnvFromFile(paths ...string) int {
	set := 0
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); exists {
				continue
			}
			if err := os.Setenv(key, val); err == nil {
				set++
			}
		}
		if err := scanner.Err(); err != nil {
			logger.GetLogger().WithField("file", p).WithField("error", err).Warn("Failed to read env file")
		}
		_ = f.Close()
	}
	return set
}

func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, val, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	val = strings.TrimSpace(val)
	if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') && val[len(val)-1] == val[0] {
		val = val[1 : len(val)-1]
	}
	return key, val, true
}
