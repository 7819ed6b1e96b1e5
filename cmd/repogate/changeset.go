package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/repogate/repogate/internal/errx"
	"github.com/repogate/repogate/pkg/api"
)

// loadChangeset reads a JSON changeset from the given file, or from stdin
// when path is "-" or empty. Hook scripts pipe the server's change
// description straight in.
func loadChangeset(path string) (*api.Changeset, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errx.Wrap(ErrReadChangeset, err)
	}

	var cs api.Changeset
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, errx.Wrap(ErrReadChangeset, err)
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return &cs, nil
}
