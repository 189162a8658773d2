package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	errs "github.com/matzehuels/graphsig/pkg/errors"
	"github.com/matzehuels/graphsig/pkg/graph"
	pkgio "github.com/matzehuels/graphsig/pkg/io"
)

// stdinArg names standard input as a command argument.
const stdinArg = "-"

// loadGraph reads a graph file, or node-link JSON from stdin for "-".
func loadGraph(path string, stdin io.Reader) (*graph.Graph, error) {
	if path == stdinArg {
		g, err := pkgio.ReadGraph(stdin, pkgio.FormatJSON)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "read graph from stdin")
		}
		return g, nil
	}
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "%s: no such file", path)
	}
	g, err := pkgio.ImportFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "load graph")
	}
	return g, nil
}

// readSignatureArg returns arg, or the trimmed contents of stdin for "-".
func readSignatureArg(arg string, stdin io.Reader) (string, error) {
	if arg != stdinArg {
		return arg, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read signature from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
