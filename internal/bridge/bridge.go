// Package bridge locates and talks to the local lodestar companion apps
// (calendar bridge, notification scheduler) over their loopback webhooks. A
// companion app advertises itself through a lockfile containing
// "port|pid|secret"; the pid is checked against the process table before any
// request is sent.
package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/kestrelapps/lodestar/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Endpoint is a validated connection to a running companion app.
type Endpoint struct {
	port   string
	secret string
}

// ConfigDir returns the configuration directory shared with the companion
// apps, honoring a custom lockfile directory from their settings file.
func ConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	appConfigDir := filepath.Join(configDir, constants.BridgeAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(appConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return appConfigDir, nil
}

// Connect reads the named lockfile and validates that the companion process
// it advertises is still running.
func Connect(lockfileName, processName string) (*Endpoint, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(dir, lockfileName))
	if err != nil {
		return nil, fmt.Errorf("%s is not running", processName)
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return nil, errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return nil, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return nil, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return nil, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return nil, fmt.Errorf("%s process not running", processName)
	}

	if !strings.HasPrefix(process.Executable(), processName) {
		return nil, fmt.Errorf("process with PID %d is not %s (is %s)", pid, processName, process.Executable())
	}

	return &Endpoint{port: port, secret: secret}, nil
}

// Post sends a JSON payload to the companion app and decodes the response
// body into out when out is non-nil.
func (e *Endpoint) Post(path string, payload any, out any) error {
	url := fmt.Sprintf("http://127.0.0.1:%s%s", e.port, path)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Lodestar-Secret", e.secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("bridge request failed with status %d: %s", res.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode bridge response: %w", err)
		}
	}
	return nil
}
