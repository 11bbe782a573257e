// Package saves stores serialized games as slot files under the user's
// XDG data directory. The rules core only deals in byte blobs; this is
// the shell-side home for them.
package saves

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const appDir = "sumzero"

// Path resolves the file for a named slot, creating the data directory
// on first use.
func Path(slot string) (string, error) {
	if err := validSlot(slot); err != nil {
		return "", err
	}
	return xdg.DataFile(filepath.Join(appDir, slot+".json"))
}

// Write stores a serialized game into a slot, replacing any previous
// save there.
func Write(slot string, doc []byte) error {
	path, err := Path(slot)
	if err != nil {
		return err
	}
	return os.WriteFile(path, doc, 0o644)
}

// Read loads the document from a slot.
func Read(slot string) ([]byte, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}
	path, err := xdg.SearchDataFile(filepath.Join(appDir, slot+".json"))
	if err != nil {
		return nil, fmt.Errorf("save slot %q not found: %w", slot, err)
	}
	return os.ReadFile(path)
}

// List returns the slot names that currently hold a save.
func List() ([]string, error) {
	dir := filepath.Join(xdg.DataHome, appDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, ".json"))
	}
	return slots, nil
}

// Delete removes a slot. Deleting a missing slot is not an error.
func Delete(slot string) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	path := filepath.Join(xdg.DataHome, appDir, slot+".json")
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// reload re-reads the XDG environment, for tests that override it.
func reload() {
	xdg.Reload()
}

func validSlot(slot string) error {
	if slot == "" || strings.ContainsAny(slot, `/\.`) {
		return fmt.Errorf("invalid save slot name %q", slot)
	}
	return nil
}
