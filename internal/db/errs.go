package db

import "errors"

var (
	// database errs.
	ErrDBNotFound  = errors.New("database not found")
	ErrDBCorrupted = errors.New("database corrupted")
)

var (
	// records errs.
	ErrURLEmpty       = errors.New("url is empty")
	ErrRecordNotFound = errors.New("no record found")
	ErrRecordScan     = errors.New("scan record")
	ErrInvalidLimit   = errors.New("invalid limit")
)

var (
	// backups errs.
	ErrBackupExists = errors.New("backup already exists")
)
