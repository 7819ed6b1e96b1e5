package main

import "errors"

var (
	ErrBadLogLevel   = errors.New("invalid log level")
	ErrReadConfig    = errors.New("read config")
	ErrParseConfig   = errors.New("parse config")
	ErrReadChangeset = errors.New("read changeset")
	ErrNoStructure   = errors.New("no structure spec configured")
	ErrCommitDenied  = errors.New("commit rejected")
	ErrNoRunStore    = errors.New("run history not configured, set --state-db")
)
