package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// WriteToFile writes the given lines to a file, one per line,
// creating parent directories as needed
func WriteToFile(savePath string, content ...string) error {
	if err := EnsureDir(filepath.Dir(savePath)); err != nil {
		return err
	}
	return os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0644)
}

// AppendToFile appends the given lines to a file, one per line
func AppendToFile(savePath string, content ...string) error {
	if err := EnsureDir(filepath.Dir(savePath)); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates the directory if it does not exist
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return os.MkdirAll(dir, os.ModePerm)
	}
	return nil
}

// SaveJSON marshals v and writes it to the given path
func SaveJSON(savePath string, v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(savePath)); err != nil {
		return err
	}
	return os.WriteFile(savePath, bs, 0644)
}

// LoadJSON reads the file at the given path and unmarshals it into v
func LoadJSON(loadPath string, v interface{}) error {
	bs, err := os.ReadFile(loadPath)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, v)
}
