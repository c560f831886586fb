// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides attachment staging for the chatbot TUI.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPrepareDelay is the minimum time attachment preparation appears to
// take. Staging a small file is nearly instant; the floor keeps the
// preparing indicator visible long enough to register.
const MinPrepareDelay = 500 * time.Millisecond

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotAFile        = errors.New("attachment source is not a regular file")
	ErrUnsupportedType = errors.New("unsupported attachment type")
)

// imageExtensions are the file types the backend accepts for image sends.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// IsImagePath reports whether the file extension is an accepted image type.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// =============================================================================
// STAGED ATTACHMENT
// =============================================================================

// Staged describes a file copied into the staging directory, ready to be
// sent.
type Staged struct {
	// Path is the staged copy, stable until Discard.
	Path string
	// Name is the original base name, for display.
	Name string
	// Size of the staged copy in bytes.
	Size int64
}

// =============================================================================
// ATTACHMENT STORE
// =============================================================================

// AttachmentStore stages files selected for sending. Copying into a private
// directory decouples the send from the original file: the user can move or
// delete the source after picking it.
type AttachmentStore struct {
	// BaseDir is the staging directory.
	// Default: ~/.chatbot/attachments/
	BaseDir string
}

// NewAttachmentStore creates a store rooted at ~/.chatbot/attachments.
func NewAttachmentStore() (*AttachmentStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not determine home directory: %w", err)
	}
	return &AttachmentStore{
		BaseDir: filepath.Join(home, ".chatbot", "attachments"),
	}, nil
}

// Stage copies src into the staging directory under a fresh name, keeping
// the source's extension so the upload content type stays inferable.
func (s *AttachmentStore) Stage(src string) (*Staged, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotAFile
	}
	if !IsImagePath(src) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(src))
	}

	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(s.BaseDir, uuid.NewString()+strings.ToLower(filepath.Ext(src)))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged copy: %w", err)
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("failed to copy attachment: %w", err)
	}

	return &Staged{
		Path: dst,
		Name: filepath.Base(src),
		Size: n,
	}, nil
}

// Discard removes a staged copy. A missing file is not an error.
func (s *AttachmentStore) Discard(staged *Staged) error {
	if staged == nil {
		return nil
	}
	// Never follow a path outside the staging directory.
	if filepath.Dir(staged.Path) != filepath.Clean(s.BaseDir) {
		return fmt.Errorf("refusing to remove file outside staging directory: %s", staged.Path)
	}
	err := os.Remove(staged.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clean removes all staged files, typically at startup. Leftovers exist when
// a previous run exited between staging and sending.
func (s *AttachmentStore) Clean() error {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.BaseDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
