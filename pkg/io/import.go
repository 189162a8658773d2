package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphsig/pkg/graph"
)

// ReadGraph decodes a graph in format f from r. ReadGraph does not close r.
func ReadGraph(r io.Reader, f Format) (*graph.Graph, error) {
	doc, err := ReadDocument(r, f)
	if err != nil {
		return nil, err
	}
	return graph.FromDocument(doc)
}

// ReadDocument decodes the raw node-link document without building a graph.
func ReadDocument(r io.Reader, f Format) (graph.Document, error) {
	var doc graph.Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return doc, fmt.Errorf("unsupported graph format %q", f)
	}
	if err != nil {
		return doc, fmt.Errorf("decode %s: %w", f, err)
	}
	return doc, nil
}

// ImportFile reads the graph at path, choosing the format by extension.
func ImportFile(path string) (*graph.Graph, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	g, err := ReadGraph(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
