// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Attachment limits and supported types.
const (
	// MaxPDFSize is the hard ceiling for a single PDF attachment.
	MaxPDFSize = 20 * 1024 * 1024
)

// ErrUnsupportedAttachment indicates a file type outside the supported set.
var ErrUnsupportedAttachment = errors.New("unsupported attachment type")

// buildAttachmentParts validates every attachment up front and converts them
// to request parts. All failures are collected into a single error so the
// caller sees the full list; nothing is sent remotely when any file is bad.
//
// Supported: .pdf (inline binary, capped at MaxPDFSize) and .txt (decoded
// as UTF-8, invalid bytes replaced rather than rejected).
func buildAttachmentParts(paths []string) ([]part, []string, error) {
	var parts []part
	var labels []string
	var errs []error

	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			p, label, err := loadPDF(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			parts = append(parts, p)
			labels = append(labels, label)
		case ".txt":
			p, label, err := loadText(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			parts = append(parts, p)
			labels = append(labels, label)
		default:
			errs = append(errs, fmt.Errorf("%w: %s (only .pdf and .txt are supported)",
				ErrUnsupportedAttachment, filepath.Base(path)))
		}
	}

	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("attachment validation failed: %w", errors.Join(errs...))
	}
	return parts, labels, nil
}

// loadPDF reads a PDF attachment as inline binary data. The size check runs
// on file metadata before any bytes are read.
func loadPDF(path string) (part, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return part{}, "", fmt.Errorf("cannot read attachment %s: %w", filepath.Base(path), err)
	}
	if info.Size() > MaxPDFSize {
		return part{}, "", fmt.Errorf("PDF attachment %s is %d bytes, exceeds %d byte limit",
			filepath.Base(path), info.Size(), MaxPDFSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return part{}, "", fmt.Errorf("cannot read attachment %s: %w", filepath.Base(path), err)
	}

	return part{
		InlineData: &blob{MimeType: "application/pdf", Data: data},
	}, filepath.Base(path) + " (PDF)", nil
}

// loadText reads a text attachment. Bytes that are not valid UTF-8 are
// replaced with the replacement character so a stray binary run never sinks
// the whole request.
func loadText(path string) (part, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return part{}, "", fmt.Errorf("cannot read attachment %s: %w", filepath.Base(path), err)
	}

	text := strings.ToValidUTF8(string(data), "�")
	return part{Text: text}, filepath.Base(path) + " (Text)", nil
}
