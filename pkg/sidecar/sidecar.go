// Package sidecar loads the metadata sidecar files described in §6.4: a
// per-file `{file}.metadata` or a directory-level `meta.json`, each
// holding a `qualified_name -> {element_id}` map that lets minted element
// ids survive across parser runs. Grounded on
// gnana997-uispec/pkg/catalog's LoadFromFile/LoadFromBytes JSON-loading
// shape.
package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is the value side of the sidecar map (§6.4: "stable key ordering"
// refers to the JSON object's own key order on disk, which
// encoding/json's map marshaling does not control — callers that write
// sidecars should marshal from an ordered structure if reproducing the
// file byte-for-byte matters; reading tolerates any key order).
type Entry struct {
	ElementID string `json:"element_id"`
}

// File is the decoded shape of one sidecar document: qualified_name ->
// element_id.
type File map[string]Entry

// LoadFile reads and decodes a single `{file}.metadata` sidecar.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata sidecar: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes raw sidecar JSON.
func LoadBytes(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse metadata sidecar: %w", err)
	}
	return f, nil
}

// ElementIDs flattens a sidecar File into the qualified_name -> element_id
// map pkg/index.AddExternalIDs expects.
func (f File) ElementIDs() map[string]string {
	out := make(map[string]string, len(f))
	for qname, entry := range f {
		if entry.ElementID != "" {
			out[qname] = entry.ElementID
		}
	}
	return out
}

// PathForSource returns the conventional sidecar path for a source file:
// `{file}.metadata` alongside it.
func PathForSource(sourcePath string) string {
	return sourcePath + ".metadata"
}

// LoadDirectoryManifest loads a directory-level `meta.json`, applying the
// same qualified_name -> element_id shape workspace-wide instead of
// per-file (§6.4).
func LoadDirectoryManifest(dirPath string) (File, error) {
	return LoadFile(dirPath + "/meta.json")
}
