// Package osutil holds the platform constants shared by podium's packages
package osutil

import "io/fs"

const Windows = "windows"

const (
	// DirPermission is used for the directories podium creates
	DirPermission fs.FileMode = 0o755
	// FilePermission is used for files only podium reads
	FilePermission fs.FileMode = 0o600
	// SharedFilePermission is used for files the user is expected to edit
	SharedFilePermission fs.FileMode = 0o644
)
