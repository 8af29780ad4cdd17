package cart

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileStore mirrors cart state to a JSONL file, one session per line.
// It stands in for the browser session storage of the web storefront.
type fileStore struct {
	path string
}

func newFileStore() (*fileStore, error) {
	dir := "data"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &fileStore{path: filepath.Join(dir, "carts.jsonl")}, nil
}

func (f *fileStore) load() (map[string][]Line, error) {
	carts := make(map[string][]Line)

	file, err := os.OpenFile(f.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item jsonLineItem
		if err = json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("failed to parse cart line: %w", err)
		}

		carts[item.Session] = item.Items
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading cart file: %w", err)
	}

	return carts, nil
}

func (f *fileStore) save(carts map[string][]Line) error {
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open cart file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	for session, items := range carts {
		data, err := json.Marshal(jsonLineItem{
			Session: session,
			Items:   items,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal cart: %w", err)
		}

		if _, err = writer.WriteString(string(data) + "\n"); err != nil {
			return fmt.Errorf("failed to write cart: %w", err)
		}
	}

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
